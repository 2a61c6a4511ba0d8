package classer

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationSelfMatch(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		b := bordered(t, randomBitmap(t, r, 3+r.Intn(15), 3+r.Intn(15)))
		area := b.CountPixels()

		score, err := CorrelationScore(b, b, area, area, 0, 0, MaxDiffWidth, MaxDiffHeight)
		require.NoError(t, err)
		assert.Equal(t, 1.0, score)

		for _, threshold := range []float64{0.4, 0.8, 0.98, 1.0} {
			match, err := CorrelationScoreThresholded(b, b, area, area, 0, 0, MaxDiffWidth, MaxDiffHeight, nil, threshold)
			require.NoError(t, err)
			assert.True(t, match, "threshold: %v", threshold)
		}
	}
}

func TestCorrelationScore(t *testing.T) {
	// 4 of 6 instance pixels overlap the 4 pixel template
	inst := bordered(t, fromRows(t,
		"111",
		"111",
	))
	tmpl := bordered(t, fromRows(t,
		"110",
		"110",
	))

	score, err := CorrelationScore(inst, tmpl, 6, 4, 0, 0, MaxDiffWidth, MaxDiffHeight)
	require.NoError(t, err)
	assert.InDelta(t, 16.0/24.0, score, 1e-12)

	// shifted right by one the template still overlaps with 4 pixels
	score, err = CorrelationScore(inst, tmpl, 6, 4, 1, 0, MaxDiffWidth, MaxDiffHeight)
	require.NoError(t, err)
	assert.InDelta(t, 16.0/24.0, score, 1e-12)

	// shifted down by one only the bottom row overlaps
	score, err = CorrelationScore(inst, tmpl, 6, 4, 0, 1, MaxDiffWidth, MaxDiffHeight)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/24.0, score, 1e-12)

	match, err := CorrelationScoreThresholded(inst, tmpl, 6, 4, 0, 0, MaxDiffWidth, MaxDiffHeight, nil, 0.66)
	require.NoError(t, err)
	assert.True(t, match)
	match, err = CorrelationScoreThresholded(inst, tmpl, 6, 4, 0, 0, MaxDiffWidth, MaxDiffHeight, nil, 0.67)
	require.NoError(t, err)
	assert.False(t, match)

	t.Run("InvalidDowncount", func(t *testing.T) {
		_, err := CorrelationScoreThresholded(inst, tmpl, 6, 4, 0, 0, MaxDiffWidth, MaxDiffHeight, []int{1, 2}, 0.5)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})

	t.Run("Nil", func(t *testing.T) {
		_, err := CorrelationScore(nil, tmpl, 6, 4, 0, 0, MaxDiffWidth, MaxDiffHeight)
		assert.True(t, errors.Is(err, ErrInvalidInput))
		_, err = CorrelationScoreThresholded(inst, nil, 6, 4, 0, 0, MaxDiffWidth, MaxDiffHeight, nil, 0.5)
		assert.True(t, errors.Is(err, ErrInvalidInput))
	})
}

func TestCorrelationPruning(t *testing.T) {
	// the early exit changes only the speed, never the result
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 300; i++ {
		w, h := 3+r.Intn(10), 3+r.Intn(10)
		b1 := bordered(t, randomBitmap(t, r, w, h))
		b2 := bordered(t, randomBitmap(t, r, w+r.Intn(5)-2, h+r.Intn(5)-2))
		a1, a2 := b1.CountPixels(), b2.CountPixels()
		delX, delY := r.Float64()*4-2, r.Float64()*4-2
		threshold := 0.2 + r.Float64()*0.8

		score, err := CorrelationScore(b1, b2, a1, a2, delX, delY, MaxDiffWidth, MaxDiffHeight)
		require.NoError(t, err)
		match, err := CorrelationScoreThresholded(b1, b2, a1, a2, delX, delY, MaxDiffWidth, MaxDiffHeight, DownCounts(b1), threshold)
		require.NoError(t, err)
		if a1 == 0 || a2 == 0 {
			continue
		}
		assert.Equal(t, score >= threshold, match, "case: %d, score: %v, threshold: %v", i, score, threshold)
	}
}

func TestEffectiveThreshold(t *testing.T) {
	for _, area := range []int{1, 10, 50, 100} {
		assert.Equal(t, 0.8, EffectiveThreshold(0.8, 0, area, 100))
	}
	assert.InDelta(t, 0.85, EffectiveThreshold(0.8, 0.5, 50, 100), 1e-12)
	assert.InDelta(t, 1.0, EffectiveThreshold(0.8, 1.0, 100, 100), 1e-12)
	assert.Equal(t, 0.8, EffectiveThreshold(0.8, 0.5, 50, 0))
}

func TestDownCounts(t *testing.T) {
	b := fromRows(t,
		"110",
		"000",
		"111",
	)
	assert.Equal(t, []int{5, 3, 3, 0}, DownCounts(b))
}

func TestCorrelationEmpty(t *testing.T) {
	empty := bordered(t, fromRows(t, "000"))
	match, err := CorrelationScoreThresholded(empty, empty, 0, 0, 0, 0, MaxDiffWidth, MaxDiffHeight, nil, 0.9)
	require.NoError(t, err)
	assert.True(t, match)

	full := bordered(t, fromRows(t, "111"))
	match, err = CorrelationScoreThresholded(empty, full, 0, 3, 0, 0, MaxDiffWidth, MaxDiffHeight, nil, 0.4)
	require.NoError(t, err)
	assert.False(t, match)
}
