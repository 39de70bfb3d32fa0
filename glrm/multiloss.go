package glrm

import (
	"github.com/DEVESHTARASIA/h2o-3/pkg/errors"
)

// MultiLossKind identifies a loss function for categorical columns
// operating on the expanded one-hot/ordinal encoding.
type MultiLossKind string

const (
	MultiLossCategorical MultiLossKind = "categorical"
	MultiLossOrdinal     MultiLossKind = "ordinal"
)

// ParseMultiLossKind maps an identifier to a MultiLossKind.
func ParseMultiLossKind(s string) (MultiLossKind, error) {
	switch MultiLossKind(s) {
	case MultiLossCategorical, MultiLossOrdinal:
		return MultiLossKind(s), nil
	default:
		return "", errors.NewConfigurationError("multi_loss", s)
	}
}

// MultiLoss is a stateless loss for one categorical entry. u is the
// slice of model estimates for the feature's expanded columns (one per
// level) and a is the observed level index in [0, len(u)-1]. An index
// outside that range is a caller bug and fails with
// InvalidArgumentError.
type MultiLoss interface {
	// Loss evaluates L(u, a).
	Loss(u []float64, a int) (float64, error)

	// Gradient evaluates the gradient of L with respect to u. The
	// returned slice always has len(u) entries.
	Gradient(u []float64, a int) ([]float64, error)

	// Impute returns the level index minimizing Loss(u, a) over all
	// levels, scanning exhaustively; ties go to the lowest index.
	Impute(u []float64) int

	// Name returns the canonical identifier of the multi-loss.
	Name() string
}

// NewMultiLoss constructs the multi-loss for the given kind.
func NewMultiLoss(kind MultiLossKind) (MultiLoss, error) {
	switch kind {
	case MultiLossCategorical:
		return CategoricalLoss{}, nil
	case MultiLossOrdinal:
		return OrdinalLoss{}, nil
	default:
		return nil, errors.NewConfigurationError("multi_loss", string(kind))
	}
}

func checkLevel(op string, u []float64, a int) error {
	if a < 0 || a > len(u)-1 {
		return errors.NewInvalidArgumentError(op, "a", "level index must be within the feature's domain", a)
	}
	return nil
}

// CategoricalLoss is a one-vs-rest hinge over the expanded levels. The
// sum applies max(1+u[i], 0) to every level including the true one,
// then corrects the self-term so the true level contributes the margin
// form max(1-u[a], 0) instead.
type CategoricalLoss struct{}

func (CategoricalLoss) Loss(u []float64, a int) (float64, error) {
	if err := checkLevel("CategoricalLoss.Loss", u, a); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range u {
		sum += max0(1 + u[i])
	}
	sum += max0(1-u[a]) - max0(1+u[a])
	return sum, nil
}

func (CategoricalLoss) Gradient(u []float64, a int) ([]float64, error) {
	if err := checkLevel("CategoricalLoss.Gradient", u, a); err != nil {
		return nil, err
	}
	grad := make([]float64, len(u))
	for i := range u {
		if 1+u[i] > 0 {
			grad[i] = 1
		}
	}
	if 1-u[a] > 0 {
		grad[a] = -1
	} else {
		grad[a] = 0
	}
	return grad, nil
}

func (l CategoricalLoss) Impute(u []float64) int { return argminLoss(l, u) }
func (CategoricalLoss) Name() string             { return string(MultiLossCategorical) }

// OrdinalLoss penalizes every threshold i < a whose margin 1-u[i] is
// violated, and charges a unit for thresholds at or above a. The last
// expanded column never contributes.
type OrdinalLoss struct{}

func (OrdinalLoss) Loss(u []float64, a int) (float64, error) {
	if err := checkLevel("OrdinalLoss.Loss", u, a); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := 0; i < len(u)-1; i++ {
		if a > i {
			sum += max0(1 - u[i])
		} else {
			sum += 1
		}
	}
	return sum, nil
}

func (OrdinalLoss) Gradient(u []float64, a int) ([]float64, error) {
	if err := checkLevel("OrdinalLoss.Gradient", u, a); err != nil {
		return nil, err
	}
	grad := make([]float64, len(u))
	for i := 0; i < len(u)-1; i++ {
		if a > i && 1-u[i] > 0 {
			grad[i] = -1
		}
	}
	return grad, nil
}

func (l OrdinalLoss) Impute(u []float64) int { return argminLoss(l, u) }
func (OrdinalLoss) Name() string             { return string(MultiLossOrdinal) }

// argminLoss scans every level and returns the first index attaining
// the minimum loss. The loss evaluations cannot fail here since every
// scanned index is in range.
func argminLoss(l MultiLoss, u []float64) int {
	best := 0
	bestLoss, _ := l.Loss(u, 0)
	for a := 1; a < len(u); a++ {
		cand, _ := l.Loss(u, a)
		if cand < bestLoss {
			best, bestLoss = a, cand
		}
	}
	return best
}

func max0(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}
