package nrl

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func bowlObjective(x *mat.Dense) float64 {
	a := x.At(0, 0)
	b := x.At(1, 0)
	return a*a + b*b + 2*a + 8*b
}

func TestNumericalGradientMatchesClosedForm(t *testing.T) {
	df := NumericalGradient(bowlObjective)
	exact, _ := quadraticEvaluators()

	for _, point := range [][]float64{{-3, -2}, {0, 0}, {1.5, -7}} {
		x := mat.NewDense(2, 1, []float64{point[0], point[1]})
		approx := df(x)
		want := exact(x)
		for p := 0; p < 2; p++ {
			if math.Abs(approx.At(p, 0)-want.At(p, 0)) > 1e-5 {
				t.Fatalf("at %v grad[%d] = %.8f, want %.8f", point, p, approx.At(p, 0), want.At(p, 0))
			}
		}
	}
}

func TestNumericalHessianMatchesClosedForm(t *testing.T) {
	ddf := NumericalHessian(bowlObjective)

	x := mat.NewDense(2, 1, []float64{-3, -2})
	hess := ddf(x)
	want := [][]float64{{2, 0}, {0, 2}}
	for p := 0; p < 2; p++ {
		for q := 0; q < 2; q++ {
			if math.Abs(hess.At(p, q)-want[p][q]) > 1e-4 {
				t.Fatalf("hessian[%d][%d] = %.8f, want %.1f", p, q, hess.At(p, q), want[p][q])
			}
		}
	}
}

func TestMinimizeWithNumericalEvaluators(t *testing.T) {
	x := mat.NewDense(2, 1, []float64{-3, -2})

	trace := Minimize(NumericalGradient(bowlObjective), NumericalHessian(bowlObjective), x, MinimizeParams{GradTol: 1e-3, MaxIter: 25})
	if !trace.Converged() {
		t.Fatalf("status = %v", trace.Final)
	}
	if math.Abs(x.At(0, 0)+1) > 1e-3 || math.Abs(x.At(1, 0)+4) > 1e-3 {
		t.Fatalf("minimum at (%.6f, %.6f), want (-1, -4)", x.At(0, 0), x.At(1, 0))
	}
}
