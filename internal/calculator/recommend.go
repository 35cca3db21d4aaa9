package calculator

import (
	"strings"

	"stockpulse/internal/model"
)

// Score thresholds for the heuristic recommendation.
const (
	oversoldRSI     = 30
	nearOversoldRSI = 40
	lowPE           = 20
	highPledgePct   = 25
	veryHighPledge  = 50
	buyScore        = 3
)

// Recommend derives a buy/avoid signal from RSI, trailing P/E and promoter
// pledge percentage. Nil inputs mean the metric is unavailable and its
// factor is skipped.
func Recommend(rsi, pe, pledge *float64) model.Recommendation {
	score := 0
	var reasons []string

	if rsi != nil {
		switch {
		case *rsi < oversoldRSI:
			score += 3
			reasons = append(reasons, "Oversold (RSI < 30)")
		case *rsi < nearOversoldRSI:
			score++
			reasons = append(reasons, "Approaching Oversold")
		}
	}

	if pe != nil {
		switch {
		case *pe > 0 && *pe < lowPE:
			score += 2
			reasons = append(reasons, "Low P/E (< 20)")
		case *pe < 0:
			score--
			reasons = append(reasons, "Negative P/E")
		}
	}

	if pledge != nil {
		switch {
		case *pledge > highPledgePct:
			score -= 2
			reasons = append(reasons, "High Pledge (> 25%)")
		case *pledge > veryHighPledge:
			score -= 4
			reasons = append(reasons, "Very High Pledge (> 50%)")
		}
	}

	signal := "No"
	if score >= buyScore {
		signal = "Yes"
	}
	reason := strings.Join(reasons, ", ")
	if reason == "" {
		reason = "Neutral or Unfavorable"
	}
	return model.Recommendation{Signal: signal, Reason: reason}
}
