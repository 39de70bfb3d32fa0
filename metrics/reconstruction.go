// Package metrics provides reconstruction-quality metrics for low rank
// models.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/DEVESHTARASIA/h2o-3/pkg/errors"
)

// ReconstructionSSE sums the squared differences between observed and
// imputed entries. Observed entries that are NaN count as missing and
// contribute nothing; the second return value is the number of
// non-missing entries that did contribute. Infinite imputed values are
// legal inputs and propagate into the sum.
func ReconstructionSSE(observed, imputed mat.Matrix) (float64, int, error) {
	r, c := observed.Dims()
	ri, ci := imputed.Dims()

	if r == 0 || c == 0 {
		return 0, 0, errors.Wrap(errors.ErrEmptyData, "ReconstructionSSE")
	}
	if r != ri {
		return 0, 0, errors.NewShapeMismatchError("ReconstructionSSE", r, ri, 0)
	}
	if c != ci {
		return 0, 0, errors.NewShapeMismatchError("ReconstructionSSE", c, ci, 1)
	}

	var sse float64
	var n int
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			a := observed.At(i, j)
			if math.IsNaN(a) {
				continue
			}
			diff := a - imputed.At(i, j)
			sse += diff * diff
			n++
		}
	}
	return sse, n, nil
}

// ReconstructionMSE is ReconstructionSSE averaged over the non-missing
// entries. With no non-missing entries the mean is NaN.
func ReconstructionMSE(observed, imputed mat.Matrix) (float64, error) {
	sse, n, err := ReconstructionSSE(observed, imputed)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return math.NaN(), nil
	}
	return sse / float64(n), nil
}
