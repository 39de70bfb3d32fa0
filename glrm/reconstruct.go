package glrm

import (
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/DEVESHTARASIA/h2o-3/core/parallel"
	"github.com/DEVESHTARASIA/h2o-3/metrics"
	"github.com/DEVESHTARASIA/h2o-3/pkg/errors"
	"github.com/DEVESHTARASIA/h2o-3/pkg/log"
)

// Partition is one ordered, disjoint row-wise slice of the dataset.
// It owns its rows of the loading matrix X and, once a scoring pass
// has run, its block of prediction columns. Partitions never read or
// write each other's rows, so a scoring pass can process them in
// parallel without locking.
type Partition struct {
	// Start is the global index of the partition's first row. It only
	// orders partitions when the output table is assembled; the
	// scoring pass itself ignores it.
	Start int

	// Observed optionally holds the original-feature values for the
	// partition's rows (one column per non-expanded feature,
	// categorical levels as indices, NaN for missing). When present it
	// feeds the reconstruction-error metric.
	Observed *mat.Dense

	data *mat.Dense // rows × k before scoring, rows × (k+m) after
	k    int

	sse  float64
	nObs int
}

// NewPartition wraps rows of the loading matrix X (rows × k) as a
// partition starting at global row index start.
func NewPartition(start int, x *mat.Dense) *Partition {
	_, k := x.Dims()
	return &Partition{Start: start, data: x, k: k}
}

// Rows returns the number of rows in the partition.
func (p *Partition) Rows() int {
	r, _ := p.data.Dims()
	return r
}

// Loadings returns the partition's X rows (rows × k view).
func (p *Partition) Loadings() mat.Matrix {
	r, _ := p.data.Dims()
	return p.data.Slice(0, r, 0, p.k)
}

// Predictions returns the partition's prediction block (rows × m view)
// filled by the last scoring pass, or nil before any pass has run.
func (p *Partition) Predictions() mat.Matrix {
	r, c := p.data.Dims()
	if c == p.k {
		return nil
	}
	return p.data.Slice(0, r, p.k, c)
}

// appendPredictionColumns grows the partition by m zero-initialized
// output columns. All growing happens before the parallel phase; the
// task only overwrites the new columns afterwards.
func (p *Partition) appendPredictionColumns(m int) {
	r, c := p.data.Dims()
	if c > p.k {
		// A previous pass already appended; reset to the loadings.
		p.data = mat.DenseCopyOf(p.data.Slice(0, r, 0, p.k))
	}
	p.data = p.data.Grow(0, m).(*mat.Dense)
}

// ScoreResult is the assembled output of a scoring pass: one
// prediction column per original feature (categorical columns hold the
// imputed level index), plus the sum-of-squared-error of the imputed
// values against the observed non-missing entries.
type ScoreResult struct {
	// Predictions has one row per dataset row (partitions stacked in
	// slice order) and one column per original feature.
	Predictions *mat.Dense

	// SSE is the reconstruction sum of squared errors over the
	// Observations non-missing observed entries.
	SSE          float64
	Observations int
}

// Scorer runs the reconstruction/imputation pass: it applies fitted
// X·Y factors back onto the partitioned dataset, imputing one value
// per original feature per row. Y and the resolved loss configuration
// are broadcast read-only; each partition writes only its own block.
type Scorer struct {
	fns    *Functions
	schema *Schema
	logger zerolog.Logger
}

// NewScorer resolves the configuration and binds it to the expanded
// column schema.
func NewScorer(params Parameters, schema *Schema) (*Scorer, error) {
	fns, err := params.Resolve()
	if err != nil {
		return nil, err
	}
	return &Scorer{
		fns:    fns,
		schema: schema,
		logger: log.GetLoggerWithName("glrm.scorer"),
	}, nil
}

// Score reconstructs every partition against the archetype matrix y
// (k × m_expanded) and assembles the prediction table. All shape
// checks run before any partition work is dispatched; a failure during
// the parallel phase aborts the whole pass and no partial result is
// returned.
func (s *Scorer) Score(y mat.Matrix, parts []*Partition) (*ScoreResult, error) {
	if len(parts) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Scorer.Score")
	}
	k, mExp := y.Dims()
	if mExp == 0 {
		return nil, errors.NewShapeMismatchError("Scorer.Score", s.schema.ExpandedWidth(), 0, 1)
	}
	if mExp != s.schema.ExpandedWidth() {
		return nil, errors.NewShapeMismatchError("Scorer.Score", s.schema.ExpandedWidth(), mExp, 1)
	}
	m := s.schema.Features()
	for _, p := range parts {
		if p.k != k {
			return nil, errors.NewShapeMismatchError("Scorer.Score", k, p.k, 1)
		}
		if p.Observed != nil {
			or, oc := p.Observed.Dims()
			if or != p.Rows() {
				return nil, errors.NewShapeMismatchError("Scorer.Score", p.Rows(), or, 0)
			}
			if oc != m {
				return nil, errors.NewShapeMismatchError("Scorer.Score", m, oc, 1)
			}
		}
	}

	// Output columns are appended up front so the parallel phase never
	// resizes anything.
	for _, p := range parts {
		p.appendPredictionColumns(m)
	}

	start := time.Now()
	s.logger.Debug().
		Int("partitions", len(parts)).
		Int("k", k).
		Int("expanded_columns", mExp).
		Msg("scoring pass started")

	err := parallel.ParallelizeWithError(len(parts), func(i int) error {
		return s.reconstructPartition(parts[i], y)
	})
	if err != nil {
		log.ErrObject(s.logger.Error(), err).Msg("scoring pass aborted")
		return nil, err
	}

	// Associative, commutative merge of the per-partition accumulators.
	res := &ScoreResult{}
	rows := 0
	for _, p := range parts {
		res.SSE += p.sse
		res.Observations += p.nObs
		rows += p.Rows()
	}

	res.Predictions = mat.NewDense(rows, m, nil)
	at := 0
	for _, p := range parts {
		r := p.Rows()
		res.Predictions.Slice(at, at+r, 0, m).(*mat.Dense).Copy(p.Predictions())
		at += r
	}

	s.logger.Info().
		Int("rows", rows).
		Int("observations", res.Observations).
		Float64("sse", res.SSE).
		Dur("elapsed", time.Since(start)).
		Msg("scoring pass finished")
	return res, nil
}

// reconstructPartition scores one partition's rows sequentially. Each
// row costs O(k * m_expanded): the reconstructed vector xy = x·Y is
// formed, then every original feature imputes its prediction from its
// slice of xy. ±Inf imputations propagate into the output unchanged.
func (s *Scorer) reconstructPartition(p *Partition, y mat.Matrix) error {
	rows := p.Rows()
	k := p.k
	mExp := s.schema.ExpandedWidth()
	cats := s.schema.Cats()

	xy := make([]float64, mExp)
	for row := 0; row < rows; row++ {
		for d := 0; d < mExp; d++ {
			acc := 0.0
			for kk := 0; kk < k; kk++ {
				acc += p.data.At(row, kk) * y.At(kk, d)
			}
			xy[d] = acc
		}

		// Categorical features impute a level index from their
		// expanded block, numeric features a value from their single
		// expanded column.
		for j := 0; j < cats; j++ {
			off := s.schema.CatOffset(j)
			level := s.fns.MultiLoss.Impute(xy[off : off+s.schema.Levels(j)])
			p.data.Set(row, k+j, float64(level))
		}
		for i := 0; i < s.schema.Nums(); i++ {
			v := s.fns.Loss.Impute(xy[s.schema.NumOffset(i)])
			p.data.Set(row, k+cats+i, v)
		}
	}

	p.sse, p.nObs = 0, 0
	if p.Observed != nil {
		sse, n, err := metrics.ReconstructionSSE(p.Observed, p.Predictions())
		if err != nil {
			return err
		}
		p.sse, p.nObs = sse, n
	}
	return nil
}
