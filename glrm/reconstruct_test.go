package glrm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/DEVESHTARASIA/h2o-3/pkg/errors"
)

func numericSchema(t *testing.T, cols int) *Schema {
	t.Helper()
	s, err := NewSchema(nil, cols)
	require.NoError(t, err)
	return s
}

func TestScoreNumericReconstruction(t *testing.T) {
	// k=1, Y = [2 -1], X rows [1] and [0.5]: xy rows are [2 -1] and
	// [1 -0.5]; quadratic-loss imputation is the identity.
	schema := numericSchema(t, 2)
	scorer, err := NewScorer(NewParameters(), schema)
	require.NoError(t, err)

	y := mat.NewDense(1, 2, []float64{2, -1})
	part := NewPartition(0, mat.NewDense(2, 1, []float64{1, 0.5}))

	res, err := scorer.Score(y, []*Partition{part})
	require.NoError(t, err)

	want := [][]float64{{2, -1}, {1, -0.5}}
	for i, row := range want {
		for j, v := range row {
			assert.InDelta(t, v, res.Predictions.At(i, j), 1e-12, "row %d col %d", i, j)
		}
	}
	assert.Equal(t, 0, res.Observations)
	assert.Equal(t, 0.0, res.SSE)
}

func TestScoreMultiplePartitions(t *testing.T) {
	schema := numericSchema(t, 2)
	scorer, err := NewScorer(NewParameters(), schema)
	require.NoError(t, err)

	y := mat.NewDense(1, 2, []float64{2, -1})
	parts := []*Partition{
		NewPartition(0, mat.NewDense(2, 1, []float64{1, 0.5})),
		NewPartition(2, mat.NewDense(1, 1, []float64{-1})),
		NewPartition(3, mat.NewDense(3, 1, []float64{0, 2, 3})),
	}

	res, err := scorer.Score(y, parts)
	require.NoError(t, err)

	r, c := res.Predictions.Dims()
	assert.Equal(t, 6, r)
	assert.Equal(t, 2, c)
	// Partition boundaries stay in slice order.
	assert.InDelta(t, -2.0, res.Predictions.At(2, 0), 1e-12)
	assert.InDelta(t, 6.0, res.Predictions.At(5, 0), 1e-12)

	// Per-partition views expose the same block.
	p1 := parts[1].Predictions()
	require.NotNil(t, p1)
	assert.InDelta(t, 1.0, p1.At(0, 1), 1e-12)
}

func TestScoreCategoricalImputation(t *testing.T) {
	// One categorical feature with 3 levels, one numeric column.
	schema, err := NewSchema([]int{3}, 1)
	require.NoError(t, err)
	scorer, err := NewScorer(NewParameters(), schema)
	require.NoError(t, err)

	y := mat.NewDense(1, 4, []float64{-1, 1, -1, 2})
	part := NewPartition(0, mat.NewDense(1, 1, []float64{1}))

	res, err := scorer.Score(y, []*Partition{part})
	require.NoError(t, err)

	// The categorical block [-1 1 -1] favors level 1; the numeric
	// column reconstructs 2.
	assert.Equal(t, 1.0, res.Predictions.At(0, 0))
	assert.InDelta(t, 2.0, res.Predictions.At(0, 1), 1e-12)
}

func TestScorePropagatesInfiniteImputation(t *testing.T) {
	schema := numericSchema(t, 2)
	params := NewParameters()
	params.Loss = LossLogistic
	scorer, err := NewScorer(params, schema)
	require.NoError(t, err)

	y := mat.NewDense(1, 2, []float64{1, -1})
	part := NewPartition(0, mat.NewDense(2, 1, []float64{1, 0}))

	res, err := scorer.Score(y, []*Partition{part})
	require.NoError(t, err)

	// xy row 0 = [1 -1]: logistic imputation diverges by sign.
	assert.True(t, math.IsInf(res.Predictions.At(0, 0), 1))
	assert.True(t, math.IsInf(res.Predictions.At(0, 1), -1))
	// xy row 1 = [0 0]: any finite value minimizes, 0 by convention.
	assert.Equal(t, 0.0, res.Predictions.At(1, 0))
}

func TestScoreSSESkipsMissing(t *testing.T) {
	schema := numericSchema(t, 2)
	scorer, err := NewScorer(NewParameters(), schema)
	require.NoError(t, err)

	y := mat.NewDense(1, 2, []float64{2, -1})
	part := NewPartition(0, mat.NewDense(2, 1, []float64{1, 0.5}))
	part.Observed = mat.NewDense(2, 2, []float64{
		2.5, math.NaN(), // only the first entry contributes
		1, -1,
	})

	res, err := scorer.Score(y, []*Partition{part})
	require.NoError(t, err)

	// Imputed rows are [2 -1] and [1 -0.5]:
	// (2.5-2)^2 + (1-1)^2 + (-1-(-0.5))^2 = 0.25 + 0 + 0.25.
	assert.Equal(t, 3, res.Observations)
	assert.InDelta(t, 0.5, res.SSE, 1e-12)
}

func TestScoreShapeMismatch(t *testing.T) {
	schema := numericSchema(t, 2)
	scorer, err := NewScorer(NewParameters(), schema)
	require.NoError(t, err)

	t.Run("y columns disagree with schema", func(t *testing.T) {
		y := mat.NewDense(1, 3, []float64{1, 2, 3})
		part := NewPartition(0, mat.NewDense(2, 1, []float64{1, 0.5}))
		_, err := scorer.Score(y, []*Partition{part})
		require.Error(t, err)
		var shapeErr *errors.ShapeMismatchError
		require.True(t, errors.As(err, &shapeErr))
		// Failed before dispatch: no output columns were appended.
		assert.Nil(t, part.Predictions())
	})

	t.Run("partition k disagrees with y rows", func(t *testing.T) {
		y := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
		part := NewPartition(0, mat.NewDense(2, 1, []float64{1, 0.5}))
		_, err := scorer.Score(y, []*Partition{part})
		require.Error(t, err)
		var shapeErr *errors.ShapeMismatchError
		require.True(t, errors.As(err, &shapeErr))
		assert.Nil(t, part.Predictions())
	})

	t.Run("observed columns disagree with schema", func(t *testing.T) {
		y := mat.NewDense(1, 2, []float64{2, -1})
		part := NewPartition(0, mat.NewDense(2, 1, []float64{1, 0.5}))
		part.Observed = mat.NewDense(2, 3, nil)
		_, err := scorer.Score(y, []*Partition{part})
		require.Error(t, err)
		var shapeErr *errors.ShapeMismatchError
		require.True(t, errors.As(err, &shapeErr))
	})

	t.Run("no partitions", func(t *testing.T) {
		y := mat.NewDense(1, 2, []float64{2, -1})
		_, err := scorer.Score(y, nil)
		require.Error(t, err)
	})
}

func TestScoreDeterministicAcrossRuns(t *testing.T) {
	schema, err := NewSchema([]int{4}, 3)
	require.NoError(t, err)
	scorer, err := NewScorer(NewParameters(), schema)
	require.NoError(t, err)

	k := 2
	y := mat.NewDense(k, schema.ExpandedWidth(), []float64{
		0.3, -1.2, 0.8, 0.1, 2, -0.5, 0.7,
		-0.4, 0.9, -0.3, 1.1, -1, 0.6, 0.2,
	})

	run := func() *mat.Dense {
		parts := []*Partition{
			NewPartition(0, mat.NewDense(3, k, []float64{1, 0, 0.5, -1, 2, 0.25})),
			NewPartition(3, mat.NewDense(2, k, []float64{-0.5, 0.5, 1, 1})),
		}
		res, err := scorer.Score(y, parts)
		require.NoError(t, err)
		return res.Predictions
	}

	first, second := run(), run()
	assert.True(t, mat.Equal(first, second), "scoring must be deterministic")
}

func TestScoreRerunSamePartitions(t *testing.T) {
	// Re-scoring the same partitions must reset the prediction block
	// rather than growing it again.
	schema := numericSchema(t, 2)
	scorer, err := NewScorer(NewParameters(), schema)
	require.NoError(t, err)

	y := mat.NewDense(1, 2, []float64{2, -1})
	part := NewPartition(0, mat.NewDense(2, 1, []float64{1, 0.5}))

	_, err = scorer.Score(y, []*Partition{part})
	require.NoError(t, err)
	res, err := scorer.Score(y, []*Partition{part})
	require.NoError(t, err)

	r, c := res.Predictions.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.InDelta(t, 2.0, res.Predictions.At(0, 0), 1e-12)
}
