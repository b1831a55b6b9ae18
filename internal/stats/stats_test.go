package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

func TestSum_IgnoresMissing(t *testing.T) {
	assert.Equal(t, 6.0, Sum([]float64{1, nan, 2, 3}))
	assert.Equal(t, 0.0, Sum([]float64{nan, nan}))
	assert.Equal(t, 0.0, Sum(nil))
}

func TestMean_IgnoresMissing(t *testing.T) {
	m, ok := Mean([]float64{100, nan, 200, 301})
	require.True(t, ok)
	assert.InDelta(t, 200.333333, m, 1e-5)
	assert.Equal(t, int64(200), Floor(m))

	_, ok = Mean([]float64{nan, nan})
	assert.False(t, ok)
}

func TestMaxMin(t *testing.T) {
	xs := []float64{nan, 412, 97, nan, 650.5}

	hi, ok := Max(xs)
	require.True(t, ok)
	assert.Equal(t, 650.5, hi)

	lo, ok := Min(xs)
	require.True(t, ok)
	assert.Equal(t, 97.0, lo)

	_, ok = Max([]float64{nan})
	assert.False(t, ok)
	_, ok = Min(nil)
	assert.False(t, ok)
}

func TestMedian(t *testing.T) {
	testCases := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"single value", []float64{612}, 612},
		{"odd count unsorted", []float64{700, 510, 605}, 605},
		{"even count averages middle pair", []float64{501, 700, 520, 650}, 585},
		{"missing skipped", []float64{nan, 540, nan, 560}, 550},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Median(tc.xs)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	_, ok := Median([]float64{nan})
	assert.False(t, ok)
}

func TestReductions_AllMissing(t *testing.T) {
	for name, f := range map[string]func([]float64) (float64, bool){
		"mean":   Mean,
		"max":    Max,
		"min":    Min,
		"median": Median,
	} {
		t.Run(name, func(t *testing.T) {
			for _, xs := range [][]float64{nil, {}, {nan, nan, nan}} {
				v, ok := f(xs)
				assert.False(t, ok)
				assert.Zero(t, v)
			}
		})
	}
}

func TestMedian_DoesNotReorderInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	_, _ = Median(xs)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}

func TestAbove(t *testing.T) {
	got := Above([]float64{500, 501, nan, 499, 800}, 500)
	assert.Equal(t, []float64{501, 800}, got)
	assert.Empty(t, Above([]float64{100, 500}, 500))
}

func TestFloor_TowardNegativeInfinity(t *testing.T) {
	assert.Equal(t, int64(2), Floor(2.9))
	assert.Equal(t, int64(-3), Floor(-2.1))
	assert.Equal(t, int64(5), Floor(5))
}
