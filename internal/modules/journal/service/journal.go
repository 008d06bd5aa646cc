package service

import (
	"context"
	"time"

	"signal_bot/internal/models"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const createTable = `
CREATE TABLE IF NOT EXISTS signals (
	id          BIGSERIAL PRIMARY KEY,
	pair        TEXT        NOT NULL,
	direction   TEXT        NOT NULL,
	confidence  DOUBLE PRECISION NOT NULL,
	strategy    TEXT        NOT NULL,
	reasoning   TEXT        NOT NULL,
	expiry      TEXT        NOT NULL,
	degraded    BOOLEAN     NOT NULL DEFAULT FALSE,
	values_json JSONB       NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL,
	entry_at    TIMESTAMPTZ NOT NULL
)`

// Journal — журнал выданных сигналов в Postgres. Пул nil, когда DSN
// не задан: запись на дефолтах просто выключена.
type Journal struct {
	pool *pgxpool.Pool
}

func NewJournal(pool *pgxpool.Pool) *Journal {
	return &Journal{pool: pool}
}

func (j *Journal) Enabled() bool { return j != nil && j.pool != nil }

// Init создаёт таблицу. Зовётся один раз на старте.
func (j *Journal) Init(ctx context.Context) error {
	if !j.Enabled() {
		return nil
	}
	_, err := j.pool.Exec(ctx, createTable)
	return errors.Wrap(err, "journal init")
}

func (j *Journal) Record(ctx context.Context, sig models.Signal) error {
	if !j.Enabled() {
		return nil
	}

	values, err := sonic.Marshal(sig.Values)
	if err != nil {
		values = []byte("{}")
	}

	_, err = j.pool.Exec(ctx, `
		INSERT INTO signals (pair, direction, confidence, strategy, reasoning, expiry, degraded, values_json, created_at, entry_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		sig.Pair, string(sig.Direction), sig.Confidence, sig.Strategy,
		sig.Reasoning, sig.Expiry, sig.Degraded, values, sig.CreatedAt, sig.EntryAt,
	)
	return errors.Wrapf(err, "journal record %s", sig.Pair)
}

// Recent — последние сигналы, новые первыми.
func (j *Journal) Recent(ctx context.Context, limit int) ([]models.Signal, error) {
	if !j.Enabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.pool.Query(ctx, `
		SELECT pair, direction, confidence, strategy, reasoning, expiry, degraded, values_json, created_at, entry_at
		FROM signals ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "journal recent")
	}
	defer rows.Close()

	var out []models.Signal
	for rows.Next() {
		var (
			sig       models.Signal
			direction string
			values    []byte
			createdAt time.Time
			entryAt   time.Time
		)
		if err := rows.Scan(&sig.Pair, &direction, &sig.Confidence, &sig.Strategy,
			&sig.Reasoning, &sig.Expiry, &sig.Degraded, &values, &createdAt, &entryAt); err != nil {
			return nil, errors.Wrap(err, "journal scan")
		}
		sig.Direction = models.Direction(direction)
		sig.CreatedAt = createdAt
		sig.EntryAt = entryAt
		_ = sonic.Unmarshal(values, &sig.Values)
		out = append(out, sig)
	}
	return out, rows.Err()
}
