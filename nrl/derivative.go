package nrl

import (
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
)

//Objective is a scalar-valued function over a column-vector point.
type Objective func(x *mat.Dense) float64

//flattened copies a column vector into a plain slice for the fd package.
func flattened(x *mat.Dense) []float64 {
	n := Height(x)
	point := make([]float64, n)
	for p := 0; p < n; p++ {
		point[p] = x.At(p, 0)
	}
	return point
}

//sliceObjective adapts an Objective to the slice signature the fd package
//expects.
func sliceObjective(f Objective) func(point []float64) float64 {
	return func(point []float64) float64 {
		data := make([]float64, len(point))
		copy(data, point)
		return f(mat.NewDense(len(point), 1, data))
	}
}

//NumericalGradient builds a gradient evaluator for an objective by central
//finite differences. Handy when only the objective itself has a closed form.
func NumericalGradient(f Objective) F {
	return func(x *mat.Dense) *mat.Dense {
		n := Height(x)
		grad := make([]float64, n)
		fd.Gradient(grad, sliceObjective(f), flattened(x), &fd.Settings{Formula: fd.Central})
		return mat.NewDense(n, 1, grad)
	}
}

//NumericalHessian builds a Hessian evaluator for an objective by finite
//differences. The result is symmetric by construction.
func NumericalHessian(f Objective) F {
	return func(x *mat.Dense) *mat.Dense {
		n := Height(x)
		hess := mat.NewSymDense(n, nil)
		fd.Hessian(hess, sliceObjective(f), flattened(x), nil)
		return mat.DenseCopyOf(hess)
	}
}
