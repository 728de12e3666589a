package hac

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mcmc-tools/go-nse/series"
)

// Prewhiten fits a VAR(1) to the centered series by least squares and returns
// the residual series together with the row-convention coefficient matrix B,
// where y_t ≈ y_{t-1}·B. Filtering out the first-order dependence before the
// kernel summation reduces small-sample bias; Recolor undoes the filter.
func Prewhiten(s *series.Series) (*series.Series, *mat.Dense, error) {
	n, d := s.Len(), s.Dim()
	if n-1 <= d {
		return nil, nil, fmt.Errorf("%w: %d observations cannot identify a VAR(1) in %d dimensions", series.ErrInvalidSize, n, d)
	}
	c := s.Centered()

	x := mat.NewDense(n-1, d, nil)
	y := mat.NewDense(n-1, d, nil)
	for t := 1; t < n; t++ {
		for j := 0; j < d; j++ {
			x.Set(t-1, j, c.At(t-1, j))
			y.Set(t-1, j, c.At(t, j))
		}
	}

	var coef mat.Dense
	if err := coef.Solve(x, y); err != nil {
		return nil, nil, fmt.Errorf("prewhitening VAR(1) fit failed: %w", err)
	}

	var fitted mat.Dense
	fitted.Mul(x, &coef)
	var resid mat.Dense
	resid.Sub(y, &fitted)

	rs, err := series.FromMatrix(&resid)
	if err != nil {
		return nil, nil, err
	}
	return rs, &coef, nil
}

// Recolor maps the residual long-run covariance back through the VAR(1)
// filter: Ω = (I-A)⁻¹·Ω_resid·(I-A)⁻ᵀ with A the conventional column-form
// coefficient matrix, i.e. the transpose of the row-form matrix from
// Prewhiten.
func Recolor(omega *mat.SymDense, coef *mat.Dense) (*mat.SymDense, error) {
	d := omega.SymmetricDim()

	ia := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			v := -coef.At(j, i)
			if i == j {
				v++
			}
			ia.Set(i, j, v)
		}
	}

	var inv mat.Dense
	if err := inv.Inverse(ia); err != nil {
		return nil, fmt.Errorf("recoloring failed, I-A is singular: %w", err)
	}

	var tmp, full mat.Dense
	tmp.Mul(&inv, omega)
	full.Mul(&tmp, inv.T())

	out := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			out.SetSym(i, j, 0.5*(full.At(i, j)+full.At(j, i)))
		}
	}
	return out, nil
}
