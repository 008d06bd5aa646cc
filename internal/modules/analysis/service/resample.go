package service

// ResampleM5 группирует M1 по 5 свечей в синтетические M5: open первой,
// close последней, max(high), min(low). Группы выравниваются по концу окна,
// неполный остаток в начале отбрасывается.
func ResampleM5(opens, highs, lows, closes []float64) (o, h, l, c []float64) {
	n := len(closes)
	groups := n / 5
	if groups == 0 {
		return nil, nil, nil, nil
	}
	o = make([]float64, groups)
	h = make([]float64, groups)
	l = make([]float64, groups)
	c = make([]float64, groups)

	for g := groups - 1; g >= 0; g-- {
		end := n - (groups-1-g)*5
		start := end - 5

		o[g] = opens[start]
		c[g] = closes[end-1]
		hh := highs[start]
		ll := lows[start]
		for i := start + 1; i < end; i++ {
			if highs[i] > hh {
				hh = highs[i]
			}
			if lows[i] < ll {
				ll = lows[i]
			}
		}
		h[g] = hh
		l[g] = ll
	}
	return o, h, l, c
}
