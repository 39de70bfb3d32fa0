package glrm

import (
	"math/rand"

	"github.com/DEVESHTARASIA/h2o-3/pkg/errors"
)

// Parameters is the immutable configuration surface of a GLRM. It is
// fixed when a model configuration is built; the optimizer and the
// scoring pass only read it.
type Parameters struct {
	K               int             // rank of the XY factorization
	Loss            LossKind        // loss for numeric columns
	MultiLoss       MultiLossKind   // loss for categorical columns
	Period          int             // period when Loss == LossPeriodic
	RegularizationX RegularizerKind // penalty on rows of X
	RegularizationY RegularizerKind // penalty on columns of Y
	GammaX          float64         // weight of the X penalty
	GammaY          float64         // weight of the Y penalty
	MaxIterations   int
	InitStepSize    float64
	MinStepSize     float64
	Seed            int64
}

// NewParameters returns the default configuration: rank 1, quadratic
// losses and regularizers, regularization switched off.
func NewParameters() Parameters {
	return Parameters{
		K:               1,
		Loss:            LossL2,
		MultiLoss:       MultiLossCategorical,
		Period:          1,
		RegularizationX: RegularizerL2,
		RegularizationY: RegularizerL2,
		MaxIterations:   1000,
		InitStepSize:    1.0,
		MinStepSize:     1e-4,
	}
}

// Validate checks the parameter ranges without resolving the kinds.
func (p Parameters) Validate() error {
	if p.K < 1 {
		return errors.NewValueError("Parameters.Validate", "rank k must be at least 1")
	}
	if p.GammaX < 0 || p.GammaY < 0 {
		return errors.NewValueError("Parameters.Validate", "regularization weights must be nonnegative")
	}
	if p.Loss == LossPeriodic && p.Period < 1 {
		return errors.NewValueError("Parameters.Validate", "periodic loss requires a positive integer period")
	}
	return nil
}

// HasClosedForm reports whether each alternating subproblem has a
// closed-form solution: quadratic loss with quadratic (or switched
// off) regularization on both factors.
func (p Parameters) HasClosedForm() bool {
	return p.Loss == LossL2 &&
		(p.GammaX == 0 || p.RegularizationX == RegularizerL2) &&
		(p.GammaY == 0 || p.RegularizationY == RegularizerL2)
}

// Functions is the resolved form of Parameters: every kind looked up
// once, ready for the optimizer and the scoring pass. All members are
// stateless and safe to share across goroutines.
type Functions struct {
	Loss      Loss
	MultiLoss MultiLoss
	RegX      Regularizer
	RegY      Regularizer
	GammaX    float64
	GammaY    float64
}

// Resolve validates p and looks up its loss, multi-loss and
// regularizer kinds. An unknown kind fails with ConfigurationError.
func (p Parameters) Resolve() (*Functions, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	loss, err := NewLoss(p.Loss, p.Period)
	if err != nil {
		return nil, err
	}
	mloss, err := NewMultiLoss(p.MultiLoss)
	if err != nil {
		return nil, err
	}
	regX, err := NewRegularizer(p.RegularizationX)
	if err != nil {
		return nil, err
	}
	regY, err := NewRegularizer(p.RegularizationY)
	if err != nil {
		return nil, err
	}
	return &Functions{
		Loss:      loss,
		MultiLoss: mloss,
		RegX:      regX,
		RegY:      regY,
		GammaX:    p.GammaX,
		GammaY:    p.GammaY,
	}, nil
}

// RegularizeX evaluates the unweighted X penalty on one row of X.
func (f *Functions) RegularizeX(u []float64) float64 { return f.RegX.Penalty(u) }

// RegularizeY evaluates the unweighted Y penalty on one column of Y.
func (f *Functions) RegularizeY(u []float64) float64 { return f.RegY.Penalty(u) }

// RegularizeXMatrix sums the X penalty over rows, short-circuiting on +Inf.
func (f *Functions) RegularizeXMatrix(u [][]float64) float64 { return PenaltySum(f.RegX, u) }

// RegularizeYMatrix sums the Y penalty over columns, short-circuiting on +Inf.
func (f *Functions) RegularizeYMatrix(u [][]float64) float64 { return PenaltySum(f.RegY, u) }

// ProxX applies the proximal step of alpha*GammaX*RegX at u.
func (f *Functions) ProxX(u []float64, alpha float64, rng *rand.Rand) []float64 {
	return f.RegX.Prox(u, alpha, f.GammaX, rng)
}

// ProxY applies the proximal step of alpha*GammaY*RegY at u.
func (f *Functions) ProxY(u []float64, alpha float64, rng *rand.Rand) []float64 {
	return f.RegY.Prox(u, alpha, f.GammaY, rng)
}
