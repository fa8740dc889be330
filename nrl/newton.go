//Package nrl implements a one-step multivariate Newton-Raphson optimization
//primitive over dense gonum matrices, together with the linear-algebra helpers
//it needs and small drivers (bounded minimization, multi-start) around it.
package nrl

import (
	"gonum.org/v1/gonum/mat"
	"log"
)

//F is an evaluator supplied by the caller: it maps a column-vector point to a
//vector (a gradient) or to a square matrix (a Hessian). Evaluators have to be
//pure; a step may call them more than once with the same point.
type F func(x *mat.Dense) *mat.Dense

//NewtonRaphson performs exactly one Newton update on the point x: it evaluates
//the gradient g = df(x) and the Hessian H = ddf(x), solves H·dx = -g and
//applies x <- x + dx in place. The stopping criterion belongs to the caller,
//which invokes the function repeatedly until its own convergence test is
//satisfied or the status is not StatusSuccess. Nothing inside bounds that
//loop: a threshold the gradient never reaches runs forever unless the caller
//counts iterations (Minimize is the packaged bounded variant).
//
//On any non-success status x is left unmodified. A gradient or Hessian whose
//shape does not match x is a contract violation and panics.
func NewtonRaphson(df, ddf F, x *mat.Dense) Status {
	grad := df(x)
	hess := ddf(x)
	n := validatedStepShapes(x, grad, hess)

	if !IsFinite(grad) || !IsFinite(hess) {
		return StatusNotFinite
	}

	rhs := mat.NewDense(n, 1, nil)
	rhs.Scale(-1.0, grad)

	delta, err := SolveLinearSystem(hess, rhs)
	if err != nil {
		return StatusSingularHessian
	}
	if !IsFinite(delta) {
		return StatusNotFinite
	}

	x.Add(x, delta)
	return StatusSuccess
}

//validatedStepShapes checks the consistency of the point, the gradient and the
//Hessian and returns the problem dimensionality.
func validatedStepShapes(x, grad, hess *mat.Dense) int {
	n, xw := x.Dims()
	if xw != 1 {
		log.Panicf("the point has to be a column vector, got width %d", xw)
	}
	gradH, gradW := grad.Dims()
	if gradH != n || gradW != 1 {
		log.Panicf("the gradient shape %dx%d does not match the point length %d", gradH, gradW, n)
	}
	hessH, hessW := hess.Dims()
	if hessH != n || hessW != n {
		log.Panicf("the Hessian shape %dx%d does not match the point length %d", hessH, hessW, n)
	}
	return n
}
