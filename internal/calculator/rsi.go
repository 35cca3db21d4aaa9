package calculator

// RSI computes the Relative Strength Index over the given window using
// simple-moving-average smoothing of daily gains and losses. It needs a full
// window of day-over-day deltas, i.e. at least window+1 closing prices; ok is
// false when the input is too short or the window is not positive.
func RSI(closes []float64, window int) (rsi float64, ok bool) {
	if window <= 0 || len(closes) < window+1 {
		return 0, false
	}

	// Average gain/loss over the trailing `window` deltas.
	var avgGain, avgLoss float64
	for i := len(closes) - window; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)

	if avgLoss == 0 {
		return 100.0, true
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs), true
}
