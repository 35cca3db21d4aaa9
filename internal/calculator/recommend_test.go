package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func TestRecommend_OversoldCheapStock(t *testing.T) {
	rec := Recommend(fp(25), fp(15), fp(10))
	assert.Equal(t, "Yes", rec.Signal)
	assert.Contains(t, rec.Reason, "Oversold (RSI < 30)")
	assert.Contains(t, rec.Reason, "Low P/E (< 20)")
}

func TestRecommend_HighPledgeOnly(t *testing.T) {
	rec := Recommend(fp(50), fp(25), fp(60))
	assert.Equal(t, "No", rec.Signal)
	assert.Equal(t, "High Pledge (> 25%)", rec.Reason)
}

func TestRecommend_AllAbsent(t *testing.T) {
	rec := Recommend(nil, nil, nil)
	assert.Equal(t, "No", rec.Signal)
	assert.Equal(t, "Neutral or Unfavorable", rec.Reason)
}

func TestRecommend_ApproachingOversold(t *testing.T) {
	rec := Recommend(fp(35), nil, nil)
	assert.Equal(t, "No", rec.Signal)
	assert.Equal(t, "Approaching Oversold", rec.Reason)
}

func TestRecommend_OversoldBranchWinsOverApproaching(t *testing.T) {
	// RSI below 30 also satisfies "< 40" but only the stricter branch fires.
	rec := Recommend(fp(10), nil, nil)
	assert.Equal(t, "Yes", rec.Signal)
	assert.Equal(t, "Oversold (RSI < 30)", rec.Reason)
}

func TestRecommend_NegativePE(t *testing.T) {
	rec := Recommend(fp(25), fp(-5), nil)
	assert.Equal(t, "No", rec.Signal) // 3 - 1 = 2, below the buy threshold
	assert.Contains(t, rec.Reason, "Negative P/E")
}

func TestRecommend_PledgePenaltyDoesNotBlockStrongSignal(t *testing.T) {
	rec := Recommend(fp(25), fp(15), fp(20))
	assert.Equal(t, "Yes", rec.Signal)
	assert.NotContains(t, rec.Reason, "Pledge")
}
