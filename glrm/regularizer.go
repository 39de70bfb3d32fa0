package glrm

import (
	"math"
	"math/rand"

	"github.com/DEVESHTARASIA/h2o-3/pkg/errors"
)

// RegularizerKind identifies a penalty on rows of X or columns of Y.
type RegularizerKind string

const (
	RegularizerL2            RegularizerKind = "l2"
	RegularizerL1            RegularizerKind = "l1"
	RegularizerNonNegative   RegularizerKind = "non_negative"
	RegularizerOneSparse     RegularizerKind = "one_sparse"
	RegularizerUnitOneSparse RegularizerKind = "unit_one_sparse"
	RegularizerSimplex       RegularizerKind = "simplex"
)

// ParseRegularizerKind maps an identifier to a RegularizerKind.
func ParseRegularizerKind(s string) (RegularizerKind, error) {
	switch RegularizerKind(s) {
	case RegularizerL2, RegularizerL1, RegularizerNonNegative,
		RegularizerOneSparse, RegularizerUnitOneSparse, RegularizerSimplex:
		return RegularizerKind(s), nil
	default:
		return "", errors.NewConfigurationError("regularizer", s)
	}
}

// Regularizer is a stateless penalty and proximal-operator policy for
// one real vector (a row of X or a column of Y).
//
// Penalty returns a value in [0, +Inf]; +Inf is the hard-constraint
// sentinel meaning the vector violates the constraint, never a soft
// cost. Prox evaluates the proximal operator of alpha*gamma*Penalty at
// u. Prox returns u unchanged when alpha == 0, gamma == 0 or u is
// empty. rng is only consulted by the kinds that break argmax ties at
// random (OneSparse, UnitOneSparse); it is injected rather than
// ambient so a fixed seed reproduces results and parallel callers do
// not race on a shared generator.
type Regularizer interface {
	Penalty(u []float64) float64
	Prox(u []float64, alpha, gamma float64, rng *rand.Rand) []float64
	Name() string
}

// NewRegularizer constructs the regularizer for the given kind.
func NewRegularizer(kind RegularizerKind) (Regularizer, error) {
	switch kind {
	case RegularizerL2:
		return QuadraticRegularizer{}, nil
	case RegularizerL1:
		return AbsoluteRegularizer{}, nil
	case RegularizerNonNegative:
		return NonNegativeRegularizer{}, nil
	case RegularizerOneSparse:
		return OneSparseRegularizer{}, nil
	case RegularizerUnitOneSparse:
		return UnitOneSparseRegularizer{}, nil
	case RegularizerSimplex:
		return SimplexRegularizer{}, nil
	default:
		return nil, errors.NewConfigurationError("regularizer", string(kind))
	}
}

// PenaltySum sums Penalty over the rows of u, short-circuiting to +Inf
// as soon as any row is infinite. With hard constraints and large k
// the early exit matters: one violated row decides the total.
func PenaltySum(r Regularizer, u [][]float64) float64 {
	sum := 0.0
	for _, row := range u {
		sum += r.Penalty(row)
		if math.IsInf(sum, 1) {
			return sum
		}
	}
	return sum
}

func proxIdentity(u []float64, alpha, gamma float64) bool {
	return len(u) == 0 || alpha == 0 || gamma == 0
}

// QuadraticRegularizer is the squared L2 penalty Σ u[i]^2.
type QuadraticRegularizer struct{}

func (QuadraticRegularizer) Penalty(u []float64) float64 {
	sum := 0.0
	for _, v := range u {
		sum += v * v
	}
	return sum
}

func (QuadraticRegularizer) Prox(u []float64, alpha, gamma float64, _ *rand.Rand) []float64 {
	if proxIdentity(u, alpha, gamma) {
		return u
	}
	v := make([]float64, len(u))
	for i := range u {
		v[i] = u[i] / (1 + 2*alpha*gamma)
	}
	return v
}

func (QuadraticRegularizer) Name() string { return string(RegularizerL2) }

// AbsoluteRegularizer is the L1 penalty Σ |u[i]|; its proximal
// operator is the soft-threshold.
type AbsoluteRegularizer struct{}

func (AbsoluteRegularizer) Penalty(u []float64) float64 {
	sum := 0.0
	for _, v := range u {
		sum += math.Abs(v)
	}
	return sum
}

func (AbsoluteRegularizer) Prox(u []float64, alpha, gamma float64, _ *rand.Rand) []float64 {
	if proxIdentity(u, alpha, gamma) {
		return u
	}
	t := alpha * gamma
	v := make([]float64, len(u))
	for i := range u {
		v[i] = math.Max(u[i]-t, 0) + math.Min(u[i]+t, 0)
	}
	return v
}

func (AbsoluteRegularizer) Name() string { return string(RegularizerL1) }

// NonNegativeRegularizer is the indicator of the nonnegative orthant.
type NonNegativeRegularizer struct{}

func (NonNegativeRegularizer) Penalty(u []float64) float64 {
	for _, v := range u {
		if v < 0 {
			return math.Inf(1)
		}
	}
	return 0
}

func (NonNegativeRegularizer) Prox(u []float64, alpha, gamma float64, _ *rand.Rand) []float64 {
	if proxIdentity(u, alpha, gamma) {
		return u
	}
	v := make([]float64, len(u))
	for i := range u {
		v[i] = math.Max(u[i], 0)
	}
	return v
}

func (NonNegativeRegularizer) Name() string { return string(RegularizerNonNegative) }

// OneSparseRegularizer is the indicator of vectors with exactly one
// strictly positive entry and no negative entries.
type OneSparseRegularizer struct{}

func (OneSparseRegularizer) Penalty(u []float64) float64 {
	card := 0
	for _, v := range u {
		if v < 0 {
			return math.Inf(1)
		}
		if v > 0 {
			card++
		}
	}
	if card == 1 {
		return 0
	}
	return math.Inf(1)
}

// Prox pushes u to an exactly-one-nonzero vector: every entry except
// the argmax (ties broken at random) becomes 0, and the argmax becomes
// max(u[argmax], 1e-6) so the surviving entry is strictly positive.
func (OneSparseRegularizer) Prox(u []float64, alpha, gamma float64, rng *rand.Rand) []float64 {
	if proxIdentity(u, alpha, gamma) {
		return u
	}
	v := make([]float64, len(u))
	idx := maxIndex(u, rng)
	if u[idx] > 0 {
		v[idx] = u[idx]
	} else {
		v[idx] = 1e-6
	}
	return v
}

func (OneSparseRegularizer) Name() string { return string(RegularizerOneSparse) }

// UnitOneSparseRegularizer is the indicator of unit one-hot vectors:
// exactly one entry equal to 1 and all others equal to 0.
type UnitOneSparseRegularizer struct{}

func (UnitOneSparseRegularizer) Penalty(u []float64) float64 {
	ones, zeros := 0, 0
	for _, v := range u {
		switch v {
		case 1:
			ones++
		case 0:
			zeros++
		default:
			return math.Inf(1)
		}
	}
	if ones == 1 && zeros == len(u)-1 {
		return 0
	}
	return math.Inf(1)
}

func (UnitOneSparseRegularizer) Prox(u []float64, alpha, gamma float64, rng *rand.Rand) []float64 {
	if proxIdentity(u, alpha, gamma) {
		return u
	}
	v := make([]float64, len(u))
	v[maxIndex(u, rng)] = 1
	return v
}

func (UnitOneSparseRegularizer) Name() string { return string(RegularizerUnitOneSparse) }

// SimplexRegularizer is the indicator of the probability simplex:
// all entries nonnegative and summing to 1.
type SimplexRegularizer struct{}

func (SimplexRegularizer) Penalty(u []float64) float64 {
	sum := 0.0
	for _, v := range u {
		if v < 0 {
			return math.Inf(1)
		}
		sum += v
	}
	if sum == 1 {
		return 0
	}
	return math.Inf(1)
}

func (SimplexRegularizer) Prox(u []float64, alpha, gamma float64, _ *rand.Rand) []float64 {
	if proxIdentity(u, alpha, gamma) {
		return u
	}
	return projectSimplex(u)
}

func (SimplexRegularizer) Name() string { return string(RegularizerSimplex) }

// maxIndex returns the index of the maximum entry of u, choosing
// uniformly at random among ties. rng must be non-nil when ties are
// possible; with a nil rng the first maximal index wins.
func maxIndex(u []float64, rng *rand.Rand) int {
	best := 0
	ties := 1
	for i := 1; i < len(u); i++ {
		switch {
		case u[i] > u[best]:
			best = i
			ties = 1
		case u[i] == u[best]:
			ties++
			if rng != nil && rng.Intn(ties) == 0 {
				best = i
			}
		}
	}
	return best
}
