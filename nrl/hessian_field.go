package nrl

import (
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
	"log"
)

//HessianField stores the Hessian evaluated over a batch of points as a 3-D
//tensor of shape (points, n, n). It is a diagnostic structure: scanning the
//condition numbers over a region shows where a Newton step can be trusted
//before an optimization run is started there.
type HessianField struct {
	Points *mat.Dense
	Raw    *tensor.Dense
}

//NewHessianField evaluates ddf at every row of points (one point per row) and
//stacks the results.
func NewHessianField(ddf F, points *mat.Dense) *HessianField {
	h, n := points.Dims()

	raw := tensor.New(tensor.WithShape(h, n, n), tensor.Of(tensor.Float64))
	x := mat.NewDense(n, 1, nil)
	for p := 0; p < h; p++ {
		for q := 0; q < n; q++ {
			x.Set(q, 0, points.At(p, q))
		}
		hess := ddf(x)
		hessH, hessW := hess.Dims()
		if hessH != n || hessW != n {
			log.Panicf("the Hessian shape %dx%d does not match the point length %d", hessH, hessW, n)
		}
		for q := 0; q < n; q++ {
			for r := 0; r < n; r++ {
				HandleError(raw.SetAt(hess.At(q, r), p, q, r))
			}
		}
	}

	return &HessianField{Points: points, Raw: raw}
}

//At extracts the Hessian at point index p as a dense matrix.
func (field *HessianField) At(p int) *mat.Dense {
	h, n := field.Points.Dims()
	if p < 0 || p >= h {
		log.Panicf("point index %d out of range [0, %d)", p, h)
	}
	hess := mat.NewDense(n, n, nil)
	for q := 0; q < n; q++ {
		for r := 0; r < n; r++ {
			element, err := field.Raw.At(p, q, r)
			HandleError(err)
			hess.Set(q, r, element.(float64))
		}
	}
	return hess
}

//ConditionNumbers returns the LU condition estimate of the Hessian at every
//point as a column vector. Singular Hessians map to +Inf.
func (field *HessianField) ConditionNumbers() *mat.Dense {
	h, _ := field.Points.Dims()
	conds := mat.NewDense(h, 1, nil)
	for p := 0; p < h; p++ {
		var lu mat.LU
		lu.Factorize(field.At(p))
		conds.Set(p, 0, lu.Cond())
	}
	return conds
}
