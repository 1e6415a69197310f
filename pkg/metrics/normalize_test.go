package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDisplayNumber(t *testing.T) {
	v := ToDisplayNumber(Some(12.3456), 2)
	f, ok := v.Float64()
	require.True(t, ok)
	assert.Equal(t, 12.35, f)

	v = ToDisplayNumber(Some(12.3456), 0)
	f, _ = v.Float64()
	assert.Equal(t, 12.0, f)

	assert.False(t, ToDisplayNumber(None(), 2).Available())
	assert.False(t, ToDisplayNumber(Coerce(nil), 2).Available())
	assert.False(t, ToDisplayNumber(Coerce("n/a"), 3).Available())
}

func TestSafeRatioFallsBackToZero(t *testing.T) {
	assert.Equal(t, 0.0, SafeRatio(Some(10), Some(0)))
	assert.Equal(t, 0.0, SafeRatio(Some(10), None()))
	assert.Equal(t, 0.0, SafeRatio(None(), Some(2)))
	assert.Equal(t, 5.0, SafeRatio(Some(10), Some(2)))

	// Division whose result would be non-finite still yields zero.
	assert.Equal(t, 0.0, SafeRatio(Some(math.MaxFloat64), Some(1e-310)))
}

func TestToChartValue(t *testing.T) {
	assert.Nil(t, ToChartValue(None()))
	assert.Nil(t, ToChartValue(Coerce("not a number")))

	p := ToChartValue(Some(3.75))
	require.NotNil(t, p)
	// Value is passed through unchanged, not rounded.
	assert.Equal(t, 3.75, *p)

	z := ToChartValue(Some(0))
	require.NotNil(t, z)
	assert.Equal(t, 0.0, *z)
}
