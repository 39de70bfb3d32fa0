package glrm

import (
	"math"

	"github.com/DEVESHTARASIA/h2o-3/pkg/errors"
)

// LossKind identifies a scalar loss function for numeric columns.
type LossKind string

const (
	LossL2       LossKind = "l2"
	LossL1       LossKind = "l1"
	LossHuber    LossKind = "huber"
	LossPoisson  LossKind = "poisson"
	LossHinge    LossKind = "hinge"
	LossLogistic LossKind = "logistic"
	LossPeriodic LossKind = "periodic"
)

// ParseLossKind maps an identifier to a LossKind, accepting the
// canonical lowercase form.
func ParseLossKind(s string) (LossKind, error) {
	switch LossKind(s) {
	case LossL2, LossL1, LossHuber, LossPoisson, LossHinge, LossLogistic, LossPeriodic:
		return LossKind(s), nil
	default:
		return "", errors.NewConfigurationError("loss", s)
	}
}

// Loss is a stateless scalar loss for one numeric entry. u is the
// current model estimate x·y for the entry and a is the observed value.
// Loss and Gradient are pure; Impute returns the value of a minimizing
// Loss(u, a), which may legitimately be ±Inf.
type Loss interface {
	// Loss evaluates L(u, a).
	Loss(u, a float64) float64

	// Gradient evaluates dL/du at (u, a).
	Gradient(u, a float64) float64

	// Impute returns argmin over a of L(u, a).
	Impute(u float64) float64

	// Name returns the canonical identifier of the loss.
	Name() string
}

// NewLoss constructs the loss for the given kind. period is only
// consulted for LossPeriodic and must be a positive integer there.
func NewLoss(kind LossKind, period int) (Loss, error) {
	switch kind {
	case LossL2:
		return QuadraticLoss{}, nil
	case LossL1:
		return AbsoluteLoss{}, nil
	case LossHuber:
		return HuberLoss{}, nil
	case LossPoisson:
		return PoissonLoss{}, nil
	case LossHinge:
		return HingeLoss{}, nil
	case LossLogistic:
		return LogisticLoss{}, nil
	case LossPeriodic:
		if period < 1 {
			return nil, errors.NewValueError("NewLoss", "periodic loss requires a positive integer period")
		}
		return PeriodicLoss{Period: period}, nil
	default:
		return nil, errors.NewConfigurationError("loss", string(kind))
	}
}

// QuadraticLoss is the squared error (u-a)^2.
type QuadraticLoss struct{}

func (QuadraticLoss) Loss(u, a float64) float64     { return (u - a) * (u - a) }
func (QuadraticLoss) Gradient(u, a float64) float64 { return 2 * (u - a) }
func (QuadraticLoss) Impute(u float64) float64      { return u }
func (QuadraticLoss) Name() string                  { return string(LossL2) }

// AbsoluteLoss is the absolute error |u-a|.
type AbsoluteLoss struct{}

func (AbsoluteLoss) Loss(u, a float64) float64 { return math.Abs(u - a) }

// Gradient returns sign(u-a); zero at the non-differentiable point.
func (AbsoluteLoss) Gradient(u, a float64) float64 { return sign(u - a) }
func (AbsoluteLoss) Impute(u float64) float64      { return u }
func (AbsoluteLoss) Name() string                  { return string(LossL1) }

// HuberLoss is quadratic within unit distance of the target and linear
// beyond it.
type HuberLoss struct{}

func (HuberLoss) Loss(u, a float64) float64 {
	if math.Abs(u-a) <= 1 {
		return 0.5 * (u - a) * (u - a)
	}
	return math.Abs(u-a) - 0.5
}

func (HuberLoss) Gradient(u, a float64) float64 {
	if math.Abs(u-a) <= 1 {
		return u - a
	}
	return sign(u - a)
}

func (HuberLoss) Impute(u float64) float64 { return u }
func (HuberLoss) Name() string             { return string(LossHuber) }

// PoissonLoss is the Poisson deviance e^u - a*u + a*ln(a) - a. The
// observed value a must be nonnegative; a*ln(a) is taken as 0 at a=0.
type PoissonLoss struct{}

func (PoissonLoss) Loss(u, a float64) float64 {
	alog := 0.0
	if a > 0 {
		alog = a * math.Log(a)
	}
	return math.Exp(u) - a*u + alog - a
}

func (PoissonLoss) Gradient(u, a float64) float64 { return math.Exp(u) - a }
func (PoissonLoss) Impute(u float64) float64      { return math.Exp(u) - 1 }
func (PoissonLoss) Name() string                  { return string(LossPoisson) }

// HingeLoss is max(1 - a*u, 0) for targets encoded in {-1, 1}.
type HingeLoss struct{}

func (HingeLoss) Loss(u, a float64) float64 { return math.Max(1-a*u, 0) }

func (HingeLoss) Gradient(u, a float64) float64 {
	if a*u <= 1 {
		return -a
	}
	return 0
}

// Impute returns 1/u. At u=0 this follows IEEE division and yields
// +Inf, the same "minimizer at infinity" sentinel the logistic loss
// uses; the reference leaves u=0 unguarded.
func (HingeLoss) Impute(u float64) float64 { return 1 / u }
func (HingeLoss) Name() string             { return string(LossHinge) }

// LogisticLoss is ln(1 + e^{-a*u}) for targets encoded in {-1, 1}.
type LogisticLoss struct{}

func (LogisticLoss) Loss(u, a float64) float64     { return math.Log(1 + math.Exp(-a*u)) }
func (LogisticLoss) Gradient(u, a float64) float64 { return -a / (1 + math.Exp(a*u)) }

// Impute returns 0 at u=0 (any finite value is a minimizer there) and
// ±Inf by the sign of u otherwise. The infinities are valid outputs
// indicating a degenerate fit, not errors.
func (LogisticLoss) Impute(u float64) float64 {
	if u == 0 {
		return 0
	}
	if u > 0 {
		return math.Inf(1)
	}
	return math.Inf(-1)
}

func (LogisticLoss) Name() string { return string(LossLogistic) }

// PeriodicLoss is 1 - cos((a-u)*2π/p) for data with period p.
type PeriodicLoss struct {
	Period int
}

func (l PeriodicLoss) Loss(u, a float64) float64 {
	return 1 - math.Cos((a-u)*(2*math.Pi)/float64(l.Period))
}

func (l PeriodicLoss) Gradient(u, a float64) float64 {
	f := (2 * math.Pi) / float64(l.Period)
	return f * math.Sin((a-u)*f)
}

func (l PeriodicLoss) Impute(u float64) float64 { return u }
func (l PeriodicLoss) Name() string             { return string(LossPeriodic) }

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
