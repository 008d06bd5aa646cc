package service

import "math"

type Patterns struct {
	Hammer       bool
	ShootingStar bool
	Engulfing    bool
	Doji         bool
	Marubozu     bool

	MorningStar   bool
	EveningStar   bool
	ThreeSoldiers bool
	ThreeCrows    bool

	// направление последней свечи — различает бычье/медвежье поглощение
	LastBull bool
}

// DetectPatterns — свечные паттерны по последним 1-3 свечам.
// Пороговые коэффициенты (2x фитиль, 0.6 тело, 0.4 звезда и т.д.)
// завязаны на выбор имени паттерна дальше по конвейеру — не менять.
func DetectPatterns(opens, highs, lows, closes []float64) Patterns {
	var p Patterns
	i := len(closes) - 1
	if i < 1 {
		return p
	}

	o, h, l, c := opens[i], highs[i], lows[i], closes[i]
	prevO, prevC := opens[i-1], closes[i-1]

	isBull := c > o
	isPrevBull := prevC > prevO
	p.LastBull = isBull
	body := math.Abs(c - o)
	wickTop := h - math.Max(o, c)
	wickBot := math.Min(o, c) - l

	p.Hammer = wickBot > body*2 && wickTop < body*0.5
	p.ShootingStar = wickTop > body*2 && wickBot < body*0.5
	p.Doji = body < (h-l)*0.1
	p.Marubozu = body > (h-l)*0.8
	p.Engulfing = isBull != isPrevBull &&
		math.Abs(c-o) > math.Abs(prevC-prevO) &&
		((isBull && c > prevO && o < prevC) || (!isBull && c < prevO && o > prevC))

	if i < 2 {
		return p
	}

	body3 := func(idx int) float64 { return math.Abs(closes[idx] - opens[idx]) }
	bull := func(idx int) bool { return closes[idx] > opens[idx] }
	bear := func(idx int) bool { return closes[idx] < opens[idx] }

	// Morning star: большая медвежья, маленькая середина, бычья с закрытием
	// выше половины первой
	p.MorningStar = bear(i-2) &&
		body3(i-2) > (highs[i-2]-lows[i-2])*0.6 &&
		body3(i-1) < body3(i-2)*0.4 &&
		bull(i) && closes[i] > (opens[i-2]+closes[i-2])/2

	p.EveningStar = bull(i-2) &&
		body3(i-2) > (highs[i-2]-lows[i-2])*0.6 &&
		body3(i-1) < body3(i-2)*0.4 &&
		bear(i) && closes[i] < (opens[i-2]+closes[i-2])/2

	p.ThreeSoldiers = bull(i-2) && bull(i-1) && bull(i) &&
		closes[i] > closes[i-1] && closes[i-1] > closes[i-2] &&
		opens[i] > opens[i-1] && opens[i-1] > opens[i-2] &&
		body3(i) > (highs[i]-lows[i])*0.6

	p.ThreeCrows = bear(i-2) && bear(i-1) && bear(i) &&
		closes[i] < closes[i-1] && closes[i-1] < closes[i-2] &&
		opens[i] < opens[i-1] && opens[i-1] < opens[i-2] &&
		body3(i) > (highs[i]-lows[i])*0.6

	return p
}

// Name выбирает имя для отображения по фикс-приоритету.
func (p Patterns) Name() string {
	switch {
	case p.MorningStar:
		return "M-STAR"
	case p.EveningStar:
		return "E-STAR"
	case p.ThreeSoldiers:
		return "3-SOLDIERS"
	case p.ThreeCrows:
		return "3-CROWS"
	case p.Hammer:
		return "HAMMER"
	case p.ShootingStar:
		return "S-STAR"
	case p.Engulfing:
		return "ENGULFING"
	default:
		return "NEUTRAL"
	}
}
