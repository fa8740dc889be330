package nrl

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

//quadraticEvaluators builds the closed-form gradient and Hessian of
//f(x,y) = x^2 + y^2 + 2x + 8y, whose global minimum sits at (-1, -4).
func quadraticEvaluators() (df, ddf F) {
	df = func(x *mat.Dense) *mat.Dense {
		d := mat.NewDense(2, 1, nil)
		d.Set(0, 0, 2*x.At(0, 0)+2)
		d.Set(1, 0, 2*x.At(1, 0)+8)
		return d
	}
	ddf = func(x *mat.Dense) *mat.Dense {
		return mat.NewDense(2, 2, []float64{
			2, 0,
			0, 2,
		})
	}
	return
}

func TestNewtonSingleStepOnQuadratic(t *testing.T) {
	df, ddf := quadraticEvaluators()
	x := mat.NewDense(2, 1, []float64{-3, -2})

	status := NewtonRaphson(df, ddf, x)
	if status != StatusSuccess {
		t.Fatalf("status = %v, want %v", status, StatusSuccess)
	}
	if math.Abs(x.At(0, 0)+1) > 1e-3 || math.Abs(x.At(1, 0)+4) > 1e-3 {
		t.Fatalf("after one step x = (%.6f, %.6f), want (-1, -4)", x.At(0, 0), x.At(1, 0))
	}
}

func TestNewtonSingularHessianLeavesPointUntouched(t *testing.T) {
	df, _ := quadraticEvaluators()
	ddf := func(x *mat.Dense) *mat.Dense {
		return mat.NewDense(2, 2, nil)
	}
	x := mat.NewDense(2, 1, []float64{-3, -2})

	status := NewtonRaphson(df, ddf, x)
	if status != StatusSingularHessian {
		t.Fatalf("status = %v, want %v", status, StatusSingularHessian)
	}
	if x.At(0, 0) != -3 || x.At(1, 0) != -2 {
		t.Fatalf("point mutated on failure: (%.6f, %.6f)", x.At(0, 0), x.At(1, 0))
	}
}

func TestNewtonStepAtOptimumIsZeroUpdate(t *testing.T) {
	df, ddf := quadraticEvaluators()
	x := mat.NewDense(2, 1, []float64{-1, -4})

	status := NewtonRaphson(df, ddf, x)
	if status != StatusSuccess {
		t.Fatalf("status = %v, want %v", status, StatusSuccess)
	}
	if math.Abs(x.At(0, 0)+1) > 1e-12 || math.Abs(x.At(1, 0)+4) > 1e-12 {
		t.Fatalf("step at the optimum moved the point to (%.15f, %.15f)", x.At(0, 0), x.At(1, 0))
	}
}

func TestNewtonNotFiniteGradient(t *testing.T) {
	_, ddf := quadraticEvaluators()
	df := func(x *mat.Dense) *mat.Dense {
		return mat.NewDense(2, 1, []float64{math.NaN(), 0})
	}
	x := mat.NewDense(2, 1, []float64{-3, -2})

	status := NewtonRaphson(df, ddf, x)
	if status != StatusNotFinite {
		t.Fatalf("status = %v, want %v", status, StatusNotFinite)
	}
	if x.At(0, 0) != -3 || x.At(1, 0) != -2 {
		t.Fatalf("point mutated on failure: (%.6f, %.6f)", x.At(0, 0), x.At(1, 0))
	}
}

func TestNewtonShapeMismatchPanics(t *testing.T) {
	_, ddf := quadraticEvaluators()
	df := func(x *mat.Dense) *mat.Dense {
		return mat.NewDense(3, 1, nil)
	}
	x := mat.NewDense(2, 1, []float64{-3, -2})

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on a gradient shape mismatch")
		}
	}()
	NewtonRaphson(df, ddf, x)
}

func TestMinimizeQuadraticTakesOneStep(t *testing.T) {
	df, ddf := quadraticEvaluators()
	x := mat.NewDense(2, 1, []float64{-3, -2})

	trace := Minimize(df, ddf, x, MinimizeParams{GradTol: 1e-3, MaxIter: 25})
	if !trace.Converged() {
		t.Fatalf("status = %v, want %v", trace.Final, StatusSuccess)
	}
	if trace.Iterations() != 1 {
		t.Fatalf("iterations = %d, want 1 (a quadratic converges in a single Newton step)", trace.Iterations())
	}
	if math.Abs(x.At(0, 0)+1) > 1e-3 || math.Abs(x.At(1, 0)+4) > 1e-3 {
		t.Fatalf("minimum at (%.6f, %.6f), want (-1, -4)", x.At(0, 0), x.At(1, 0))
	}
	if len(trace.Steps) != 2 {
		t.Fatalf("trace has %d steps, want 2", len(trace.Steps))
	}
	if trace.Steps[0].Point.At(0, 0) != -3 || trace.Steps[0].Point.At(1, 0) != -2 {
		t.Fatal("trace does not start at the initial point")
	}
}

func TestMinimizeReportsMaxIterations(t *testing.T) {
	// The gradient evaluator lies: it never drops below any tolerance, so the
	// bounded driver has to give up after MaxIter steps.
	df := func(x *mat.Dense) *mat.Dense {
		return mat.NewDense(1, 1, []float64{1})
	}
	ddf := func(x *mat.Dense) *mat.Dense {
		return mat.NewDense(1, 1, []float64{1})
	}
	x := mat.NewDense(1, 1, []float64{0})

	trace := Minimize(df, ddf, x, MinimizeParams{GradTol: 1e-6, MaxIter: 7})
	if trace.Final != StatusMaxIterations {
		t.Fatalf("status = %v, want %v", trace.Final, StatusMaxIterations)
	}
	if trace.Iterations() != 7 {
		t.Fatalf("iterations = %d, want 7", trace.Iterations())
	}
}

func TestMinimizeStopsOnSingularHessian(t *testing.T) {
	df, _ := quadraticEvaluators()
	ddf := func(x *mat.Dense) *mat.Dense {
		return mat.NewDense(2, 2, nil)
	}
	x := mat.NewDense(2, 1, []float64{-3, -2})

	trace := Minimize(df, ddf, x, MinimizeParams{})
	if trace.Final != StatusSingularHessian {
		t.Fatalf("status = %v, want %v", trace.Final, StatusSingularHessian)
	}
	if trace.Iterations() != 0 {
		t.Fatalf("iterations = %d, want 0", trace.Iterations())
	}
}

func TestStatusStrings(t *testing.T) {
	if StatusSuccess.String() != "Success" {
		t.Fatalf("StatusSuccess.String() = %q", StatusSuccess.String())
	}
	if StatusSingularHessian.String() != "SingularHessian" {
		t.Fatalf("StatusSingularHessian.String() = %q", StatusSingularHessian.String())
	}
	if Status(99).String() != "UnregisteredStatus" {
		t.Fatalf("Status(99).String() = %q", Status(99).String())
	}
}
