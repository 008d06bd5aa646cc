package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB     string `yaml:"db_dsn"`
	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	Feeds FeedsConfig `yaml:"feeds"`
	Scan  ScanConfig  `yaml:"scan"`
}

type FeedsConfig struct {
	GenericWSURL   string `yaml:"generic_ws_url"`
	GenericHTTPURL string `yaml:"generic_http_url"`
	CryptoWSURL    string `yaml:"crypto_ws_url"`
	CryptoHTTPURL  string `yaml:"crypto_http_url"`

	// Ретраи generic-сокета до ухода в поллинг
	MaxWSRetries int `yaml:"max_ws_retries"`

	PollInterval time.Duration `yaml:"poll_interval"`
	// Жёсткий таймаут на одиночный fetch
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	ReconnectBase time.Duration `yaml:"reconnect_base"`
	ReconnectMax  time.Duration `yaml:"reconnect_max"`
}

type ScanConfig struct {
	BatchSize   int           `yaml:"batch_size"`
	BatchPause  time.Duration `yaml:"batch_pause"`
	CandleCount int           `yaml:"candle_count"`
	// 0 = периодический авто-скан выключен
	Interval       time.Duration `yaml:"interval"`
	Market         string        `yaml:"market"` // OTC | REAL
	Watchlist      []string      `yaml:"watchlist"`
	RequestsPerSec int           `yaml:"requests_per_sec"`
}

func NewConfig() (*Config, error) {
	config := Config{
		Feeds: FeedsConfig{
			GenericWSURL:   getenvDefault("GENERIC_WS_URL", "wss://candledata.bdtraderpro.xyz/socket"),
			GenericHTTPURL: getenvDefault("GENERIC_HTTP_URL", "https://candledata.bdtraderpro.xyz/bd/Quotex.php"),
			CryptoWSURL:    getenvDefault("CRYPTO_WS_URL", "wss://stream.binance.com:9443/ws/!miniTicker@arr"),
			CryptoHTTPURL:  getenvDefault("CRYPTO_HTTP_URL", "https://api.binance.com/api/v3/klines"),
			MaxWSRetries:   intFromEnv("MAX_WS_RETRIES", 5),
			PollInterval:   durationFromEnv("POLL_INTERVAL", "3s"),
			FetchTimeout:   durationFromEnv("FETCH_TIMEOUT", "5s"),
			ReconnectBase:  durationFromEnv("RECONNECT_BASE", "1s"),
			ReconnectMax:   durationFromEnv("RECONNECT_MAX", "30s"),
		},
		Scan: ScanConfig{
			BatchSize:      intFromEnv("SCAN_BATCH_SIZE", 3),
			BatchPause:     durationFromEnv("SCAN_BATCH_PAUSE", "800ms"),
			CandleCount:    intFromEnv("SCAN_CANDLE_COUNT", 100),
			Interval:       durationFromEnv("SCAN_INTERVAL", "0s"),
			Market:         getenvDefault("SCAN_MARKET", "OTC"),
			RequestsPerSec: intFromEnv("SCAN_RPS", 5),
		},
	}

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		// без файла живём на дефолтах + env
		log.Printf("[CONFIG] no config file (%v), using defaults", err)
	} else {
		defer func() {
			_ = file.Close()
		}()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			log.Fatalf("Failed to decode config file: %v", err)
		}
	}

	token := os.Getenv(tokenTelegramENV)
	if token != "" {
		config.Telegram.Token = token
	}

	dsn := os.Getenv(databaseDSN)
	if dsn != "" {
		config.DB = dsn
	}

	return &config, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func durationFromEnv(key string, def string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		raw = def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		dd, _ := time.ParseDuration(def)
		return dd
	}
	return d
}
