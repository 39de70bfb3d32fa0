package glrm

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/DEVESHTARASIA/h2o-3/pkg/errors"
)

// Model holds the fitted artifacts of a GLRM: the archetype matrix Y
// (k × m_expanded) together with the configuration and schema it was
// fitted under, plus the bookkeeping the training driver fills in.
// The model is read-only during scoring.
type Model struct {
	Params Parameters
	Schema *Schema

	// Archetypes is Y, set by the training driver at convergence.
	Archetypes *mat.Dense

	// Driver bookkeeping.
	Iterations     int
	ObjectiveValue float64
	AvgChangeObj   float64
	StepSize       float64

	scorer *Scorer
}

// NewModel resolves the configuration against the schema. The model is
// not usable for prediction until SetArchetypes has been called.
func NewModel(params Parameters, schema *Schema) (*Model, error) {
	scorer, err := NewScorer(params, schema)
	if err != nil {
		return nil, err
	}
	return &Model{Params: params, Schema: schema, scorer: scorer}, nil
}

// SetArchetypes installs the fitted Y factors.
func (m *Model) SetArchetypes(y *mat.Dense) { m.Archetypes = y }

// Predict runs the reconstruction/imputation pass over the partitions'
// X rows and returns the assembled prediction table. Predicting before
// the archetypes are set fails with NotFittedError.
func (m *Model) Predict(parts []*Partition) (*ScoreResult, error) {
	if m.Archetypes == nil {
		return nil, errors.NewNotFittedError("GLRM", "Predict")
	}
	return m.scorer.Score(m.Archetypes, parts)
}

// Objective evaluates the full GLRM objective at the current factors:
// the per-entry loss over all observed entries plus the gamma-weighted
// regularization penalties on the X rows and Y columns. Observed NaN
// entries contribute no loss. The result may be +Inf when a hard
// constraint is violated.
func (m *Model) Objective(parts []*Partition) (float64, error) {
	if m.Archetypes == nil {
		return 0, errors.NewNotFittedError("GLRM", "Objective")
	}
	k, mExp := m.Archetypes.Dims()
	if mExp != m.Schema.ExpandedWidth() {
		return 0, errors.NewShapeMismatchError("Model.Objective", m.Schema.ExpandedWidth(), mExp, 1)
	}

	fns := m.scorer.fns
	cats := m.Schema.Cats()
	total := 0.0

	xy := make([]float64, mExp)
	for _, p := range parts {
		if p.k != k {
			return 0, errors.NewShapeMismatchError("Model.Objective", k, p.k, 1)
		}
		if p.Observed == nil {
			continue
		}
		rows := p.Rows()
		for row := 0; row < rows; row++ {
			for d := 0; d < mExp; d++ {
				acc := 0.0
				for kk := 0; kk < k; kk++ {
					acc += p.data.At(row, kk) * m.Archetypes.At(kk, d)
				}
				xy[d] = acc
			}
			for j := 0; j < cats; j++ {
				a := p.Observed.At(row, j)
				if math.IsNaN(a) {
					continue
				}
				off := m.Schema.CatOffset(j)
				l, err := fns.MultiLoss.Loss(xy[off:off+m.Schema.Levels(j)], int(a))
				if err != nil {
					return 0, err
				}
				total += l
			}
			for i := 0; i < m.Schema.Nums(); i++ {
				a := p.Observed.At(row, cats+i)
				if math.IsNaN(a) {
					continue
				}
				total += fns.Loss.Loss(xy[m.Schema.NumOffset(i)], a)
			}
		}
	}

	if fns.GammaX > 0 {
		total += fns.GammaX * PenaltySum(fns.RegX, loadingRows(parts, k))
		if math.IsInf(total, 1) {
			return total, nil
		}
	}
	if fns.GammaY > 0 {
		total += fns.GammaY * PenaltySum(fns.RegY, archetypeColumns(m.Archetypes))
	}
	return total, nil
}

// loadingRows flattens the partitions' X rows into row vectors.
func loadingRows(parts []*Partition, k int) [][]float64 {
	var rows [][]float64
	for _, p := range parts {
		n := p.Rows()
		for row := 0; row < n; row++ {
			x := make([]float64, k)
			for kk := 0; kk < k; kk++ {
				x[kk] = p.data.At(row, kk)
			}
			rows = append(rows, x)
		}
	}
	return rows
}

// archetypeColumns extracts the columns of Y as k-vectors.
func archetypeColumns(y *mat.Dense) [][]float64 {
	k, mExp := y.Dims()
	cols := make([][]float64, mExp)
	for d := 0; d < mExp; d++ {
		col := make([]float64, k)
		mat.Col(col, d, y)
		cols[d] = col
	}
	return cols
}
