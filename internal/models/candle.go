package models

import "time"

type Candle struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
	Start  time.Time
	End    time.Time
}

// Window — окно M1 свечей одного инструмента, oldest-first.
// Владеет окном тот, кто его собрал (скан или буфер фида); в движок
// передаём копию, общего мутабельного состояния нет.
type Window struct {
	Pair    string
	Candles []Candle
	Cap     int // 0 = без ограничения
}

func NewWindow(pair string, cap int) *Window {
	return &Window{Pair: pair, Cap: cap}
}

func (w *Window) Len() int { return len(w.Candles) }

// Append добавляет свечу, вытесняя самую старую при переполнении.
func (w *Window) Append(c Candle) {
	w.Candles = append(w.Candles, c)
	if w.Cap > 0 && len(w.Candles) > w.Cap {
		w.Candles = w.Candles[len(w.Candles)-w.Cap:]
	}
}

func (w *Window) Last() Candle {
	if len(w.Candles) == 0 {
		return Candle{}
	}
	return w.Candles[len(w.Candles)-1]
}

func (w *Window) Closes() []float64 {
	out := make([]float64, len(w.Candles))
	for i, c := range w.Candles {
		out[i] = c.Close
	}
	return out
}

func (w *Window) Opens() []float64 {
	out := make([]float64, len(w.Candles))
	for i, c := range w.Candles {
		out[i] = c.Open
	}
	return out
}

func (w *Window) Highs() []float64 {
	out := make([]float64, len(w.Candles))
	for i, c := range w.Candles {
		out[i] = c.High
	}
	return out
}

func (w *Window) Lows() []float64 {
	out := make([]float64, len(w.Candles))
	for i, c := range w.Candles {
		out[i] = c.Low
	}
	return out
}

func (w *Window) Volumes() []float64 {
	out := make([]float64, len(w.Candles))
	for i, c := range w.Candles {
		out[i] = c.Volume
	}
	return out
}

func (w *Window) Clone() *Window {
	cp := &Window{Pair: w.Pair, Cap: w.Cap}
	cp.Candles = append([]Candle(nil), w.Candles...)
	return cp
}
