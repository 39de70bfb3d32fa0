package glrm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEVESHTARASIA/h2o-3/pkg/errors"
)

func TestQuadraticRegularizer(t *testing.T) {
	r, err := NewRegularizer(RegularizerL2)
	require.NoError(t, err)

	assert.InDelta(t, 14.0, r.Penalty([]float64{1, 2, 3}), 1e-12)

	v := r.Prox([]float64{2, -4}, 0.5, 1, nil)
	// Shrinkage by 1/(1+2*alpha*gamma) = 1/2.
	assert.InDelta(t, 1.0, v[0], 1e-12)
	assert.InDelta(t, -2.0, v[1], 1e-12)
}

func TestAbsoluteRegularizer(t *testing.T) {
	r, err := NewRegularizer(RegularizerL1)
	require.NoError(t, err)

	assert.InDelta(t, 6.0, r.Penalty([]float64{1, -2, 3}), 1e-12)

	// Soft threshold at alpha*gamma = 0.5.
	v := r.Prox([]float64{2, -1.2, 0.3}, 0.5, 1, nil)
	assert.InDelta(t, 1.5, v[0], 1e-12)
	assert.InDelta(t, -0.7, v[1], 1e-12)
	assert.InDelta(t, 0.0, v[2], 1e-12)
}

func TestNonNegativeRegularizer(t *testing.T) {
	r, err := NewRegularizer(RegularizerNonNegative)
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.Penalty([]float64{0, 1, 2}))
	assert.True(t, math.IsInf(r.Penalty([]float64{0, -1e-9, 2}), 1))

	v := r.Prox([]float64{1.5, -2, 0}, 1, 1, nil)
	assert.Equal(t, []float64{1.5, 0, 0}, v)
	// Nonnegative entries pass through unchanged.
	assert.Equal(t, []float64{3, 0.5}, r.Prox([]float64{3, 0.5}, 1, 1, nil))
}

func TestOneSparseRegularizer(t *testing.T) {
	r, err := NewRegularizer(RegularizerOneSparse)
	require.NoError(t, err)

	// A negative entry violates the constraint before projection.
	u := []float64{0.1, 0.9, -0.2}
	assert.True(t, math.IsInf(r.Penalty(u), 1))

	rng := rand.New(rand.NewSource(42))
	v := r.Prox(u, 1, 1, rng)
	assert.Equal(t, []float64{0, 0.9, 0}, v)
	assert.Equal(t, 0.0, r.Penalty(v))

	// An all-nonpositive input still comes out exactly-one-positive.
	v = r.Prox([]float64{-3, -1, -2}, 1, 1, rng)
	assert.Equal(t, []float64{0, 1e-6, 0}, v)
	assert.Equal(t, 0.0, r.Penalty(v))

	assert.True(t, math.IsInf(r.Penalty([]float64{0.5, 0.5}), 1), "two positives")
	assert.True(t, math.IsInf(r.Penalty([]float64{0, 0}), 1), "no positives")
}

func TestUnitOneSparseRegularizer(t *testing.T) {
	r, err := NewRegularizer(RegularizerUnitOneSparse)
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.Penalty([]float64{0, 1, 0}))
	assert.True(t, math.IsInf(r.Penalty([]float64{0, 0.5, 0}), 1))
	assert.True(t, math.IsInf(r.Penalty([]float64{1, 1, 0}), 1))

	rng := rand.New(rand.NewSource(7))
	v := r.Prox([]float64{0.2, 3, 0.1}, 1, 1, rng)
	assert.Equal(t, []float64{0, 1, 0}, v)
	assert.Equal(t, 0.0, r.Penalty(v))
}

func TestOneSparseTieBreakReproducible(t *testing.T) {
	r, err := NewRegularizer(RegularizerUnitOneSparse)
	require.NoError(t, err)

	u := []float64{1, 1, 1, 1}
	first := r.Prox(u, 1, 1, rand.New(rand.NewSource(123)))
	second := r.Prox(u, 1, 1, rand.New(rand.NewSource(123)))
	assert.Equal(t, first, second, "same seed must choose the same tie")

	// Different seeds eventually pick different indices.
	seen := map[int]bool{}
	for seed := int64(0); seed < 64; seed++ {
		v := r.Prox(u, 1, 1, rand.New(rand.NewSource(seed)))
		for i, x := range v {
			if x == 1 {
				seen[i] = true
			}
		}
	}
	assert.Greater(t, len(seen), 1, "random tie-break should spread across indices")
}

func TestSimplexRegularizer(t *testing.T) {
	r, err := NewRegularizer(RegularizerSimplex)
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.Penalty([]float64{0.5, 0.2, 0.3}))
	assert.True(t, math.IsInf(r.Penalty([]float64{0.5, 0.6}), 1))
	assert.True(t, math.IsInf(r.Penalty([]float64{1.5, -0.5}), 1))

	// A point already on the simplex projects to itself.
	u := []float64{0.5, 0.2, 0.3}
	v := r.Prox(u, 1, 1, nil)
	for i := range u {
		assert.InDelta(t, u[i], v[i], 1e-9)
	}
}

func TestSimplexProxFeasibility(t *testing.T) {
	r, err := NewRegularizer(RegularizerSimplex)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(99))
	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(8)
		u := make([]float64, n)
		for i := range u {
			u[i] = rng.NormFloat64() * 10
		}

		v := r.Prox(u, 1, 1, nil)
		require.Len(t, v, n)

		sum := 0.0
		for _, x := range v {
			require.GreaterOrEqual(t, x, 0.0)
			sum += x
		}
		require.InDelta(t, 1.0, sum, 1e-9)
	}
}

// Hard-constraint regularizers: penalty is 0 exactly when prox is a
// fixed point.
func TestHardConstraintFixedPoints(t *testing.T) {
	kinds := []RegularizerKind{
		RegularizerNonNegative, RegularizerOneSparse,
		RegularizerUnitOneSparse, RegularizerSimplex,
	}
	feasible := map[RegularizerKind][]float64{
		RegularizerNonNegative:   {0.5, 0, 2},
		RegularizerOneSparse:     {0, 0.7, 0},
		RegularizerUnitOneSparse: {0, 1, 0},
		RegularizerSimplex:       {0.25, 0.25, 0.5},
	}
	infeasible := map[RegularizerKind][]float64{
		RegularizerNonNegative:   {0.5, -1, 2},
		RegularizerOneSparse:     {0.3, 0.7, 0},
		RegularizerUnitOneSparse: {0, 0.9, 0},
		RegularizerSimplex:       {2, 0.5, 0},
	}

	for _, kind := range kinds {
		r, err := NewRegularizer(kind)
		require.NoError(t, err)
		rng := rand.New(rand.NewSource(1))

		u := feasible[kind]
		require.Equal(t, 0.0, r.Penalty(u), "%s: feasible point", kind)
		v := r.Prox(u, 1, 1, rng)
		assert.Equal(t, u, v, "%s: prox must fix a feasible point", kind)

		w := infeasible[kind]
		require.True(t, math.IsInf(r.Penalty(w), 1), "%s: infeasible point", kind)
		proj := r.Prox(w, 1, 1, rng)
		assert.Equal(t, 0.0, r.Penalty(proj), "%s: prox output must be feasible", kind)
	}
}

func TestProxIdentityCases(t *testing.T) {
	for _, kind := range []RegularizerKind{
		RegularizerL2, RegularizerL1, RegularizerNonNegative,
		RegularizerOneSparse, RegularizerUnitOneSparse, RegularizerSimplex,
	} {
		r, err := NewRegularizer(kind)
		require.NoError(t, err)

		u := []float64{0.5, -1, 2}
		assert.Equal(t, u, r.Prox(u, 0, 1, nil), "%s: alpha=0", kind)
		assert.Equal(t, u, r.Prox(u, 1, 0, nil), "%s: gamma=0", kind)
		assert.Empty(t, r.Prox(nil, 1, 1, nil), "%s: empty input", kind)
	}
}

func TestPenaltySumShortCircuit(t *testing.T) {
	r, err := NewRegularizer(RegularizerNonNegative)
	require.NoError(t, err)

	rows := [][]float64{
		{1, 2},
		{0, -1}, // infinite from here on
		{3, 4},
	}
	assert.True(t, math.IsInf(PenaltySum(r, rows), 1))

	l2, err := NewRegularizer(RegularizerL2)
	require.NoError(t, err)
	assert.InDelta(t, 1+4+1+9+16, PenaltySum(l2, rows), 1e-12)
}

func TestNewRegularizerUnknownKind(t *testing.T) {
	_, err := NewRegularizer(RegularizerKind("elastic_net"))
	require.Error(t, err)
	var cfgErr *errors.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "regularizer", cfgErr.Component)
}
