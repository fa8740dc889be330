package nrl

import (
	"fmt"
	"gonum.org/v1/gonum/mat"
)

//QuadraticForm describes the quadratic objective
//
//	f(x) = 1/2 x'Ax + b'x
//
//with closed-form gradient S·x + b and constant Hessian S, where S is the
//symmetrized 1/2(A + A') part of A. The symmetrization means a caller handing
//in a non-symmetric A still gets a mathematically consistent problem.
type QuadraticForm struct {
	A *mat.Dense
	B *mat.Dense
}

//NewQuadraticForm validates the shapes of the quadratic coefficients.
func NewQuadraticForm(a, b *mat.Dense) (QuadraticForm, error) {
	n, w := a.Dims()
	if n != w {
		return QuadraticForm{}, fmt.Errorf("quadratic matrix has to be square, got %dx%d", n, w)
	}
	bh, bw := b.Dims()
	if bh != n || bw != 1 {
		return QuadraticForm{}, fmt.Errorf("linear term has to be %dx1, got %dx%d", n, bh, bw)
	}
	return QuadraticForm{A: a, B: b}, nil
}

//symmetrized returns 1/2(A + A').
func (form QuadraticForm) symmetrized() *mat.Dense {
	n, _ := form.A.Dims()
	s := mat.NewDense(n, n, nil)
	s.Add(form.A, form.A.T())
	s.Scale(0.5, s)
	return s
}

//Value evaluates the objective at a point.
func (form QuadraticForm) Value(x *mat.Dense) float64 {
	var ax mat.Dense
	ax.Mul(form.A, x)
	var quad, lin mat.Dense
	quad.Mul(x.T(), &ax)
	lin.Mul(form.B.T(), x)
	return 0.5*quad.At(0, 0) + lin.At(0, 0)
}

//Gradient builds the gradient evaluator of the quadratic form.
func (form QuadraticForm) Gradient() F {
	s := form.symmetrized()
	return func(x *mat.Dense) *mat.Dense {
		d := mat.NewDense(Height(x), 1, nil)
		d.Mul(s, x)
		d.Add(d, form.B)
		return d
	}
}

//Hessian builds the Hessian evaluator of the quadratic form. The Hessian is
//constant, so the evaluator hands out a fresh copy of the symmetrized matrix.
func (form QuadraticForm) Hessian() F {
	s := form.symmetrized()
	return func(x *mat.Dense) *mat.Dense {
		return mat.DenseCopyOf(s)
	}
}
