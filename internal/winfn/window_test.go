package winfn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSincAtZeroIsOne(t *testing.T) {
	assert.Equal(t, 1.0, Sinc(0))
}

func TestSincAtIntegerIsZero(t *testing.T) {
	assert.InDelta(t, 0, Sinc(1), 1e-9)
	assert.InDelta(t, 0, Sinc(2), 1e-9)
}

func TestValueHammingEndpointsAreSymmetric(t *testing.T) {
	const n = 9
	first := Value(Hamming, n, 0, 0)
	last := Value(Hamming, n, n-1, 0)
	assert.InDelta(t, first, last, 1e-9)
}

func TestValueKaiserPeaksAtCenter(t *testing.T) {
	const n = 15
	beta := KaiserBeta(60)
	center := Value(Kaiser, n, n/2, beta)
	edge := Value(Kaiser, n, 0, beta)
	assert.InDelta(t, 1.0, center, 1e-9)
	assert.Less(t, edge, center)
}

func TestValueTruncatedIsUnity(t *testing.T) {
	assert.Equal(t, 1.0, Value(Truncated, 10, 3, 0))
}

func TestKaiserBetaBelowThresholdIsZero(t *testing.T) {
	assert.Equal(t, 0.0, KaiserBeta(10))
}

func TestKaiserBetaMidRangeMatchesFormula(t *testing.T) {
	want := 0.5842*math.Pow(30-21, 0.4) + 0.07886*(30-21)
	assert.InDelta(t, want, KaiserBeta(30), 1e-9)
}

func TestKaiserBetaHighRangeMatchesFormula(t *testing.T) {
	want := 0.1102 * (80 - 8.7)
	assert.InDelta(t, want, KaiserBeta(80), 1e-9)
}

func TestKaiserLengthIsOdd(t *testing.T) {
	n := KaiserLength(60, 0.05)
	assert.Equal(t, 1, n%2)
	assert.Greater(t, n, 0)
}

func TestKaiserLengthGrowsWithNarrowerTransition(t *testing.T) {
	wide := KaiserLength(60, 0.2)
	narrow := KaiserLength(60, 0.01)
	assert.Greater(t, narrow, wide)
}
