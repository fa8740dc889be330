package nrl

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestHessianFieldStacksEvaluations(t *testing.T) {
	// A point-dependent Hessian, so every slice of the stack differs.
	ddf := func(x *mat.Dense) *mat.Dense {
		a := x.At(0, 0)
		b := x.At(1, 0)
		return mat.NewDense(2, 2, []float64{
			2 + a, 1,
			1, 2 + b,
		})
	}
	points := mat.NewDense(3, 2, []float64{
		0, 0,
		1, 2,
		-0.5, 4,
	})

	field := NewHessianField(ddf, points)

	shape := field.Raw.Shape()
	if shape[0] != 3 || shape[1] != 2 || shape[2] != 2 {
		t.Fatalf("raw shape = %v, want (3, 2, 2)", shape)
	}

	for p := 0; p < 3; p++ {
		x := mat.NewDense(2, 1, []float64{points.At(p, 0), points.At(p, 1)})
		want := ddf(x)
		got := field.At(p)
		if !mat.EqualApprox(got, want, 1e-12) {
			t.Fatalf("slice %d = %v, want %v", p, mat.Formatted(got), mat.Formatted(want))
		}
	}
}

func TestHessianFieldConditionNumbers(t *testing.T) {
	_, ddf := quadraticEvaluators()
	points := mat.NewDense(2, 2, []float64{
		0, 0,
		7, -3,
	})

	conds := NewHessianField(ddf, points).ConditionNumbers()
	for p := 0; p < 2; p++ {
		// 2·I has condition number exactly 1.
		if math.Abs(conds.At(p, 0)-1) > 1e-10 {
			t.Fatalf("cond[%d] = %f, want 1", p, conds.At(p, 0))
		}
	}
}

func TestHessianFieldSingularPoint(t *testing.T) {
	ddf := func(x *mat.Dense) *mat.Dense {
		if x.At(0, 0) == 0 {
			return mat.NewDense(2, 2, nil)
		}
		return mat.NewDense(2, 2, []float64{2, 0, 0, 2})
	}
	points := mat.NewDense(2, 2, []float64{
		0, 0,
		1, 1,
	})

	conds := NewHessianField(ddf, points).ConditionNumbers()
	if !math.IsInf(conds.At(0, 0), 1) {
		t.Fatalf("cond of the zero Hessian = %f, want +Inf", conds.At(0, 0))
	}
	if math.IsInf(conds.At(1, 0), 1) {
		t.Fatal("cond of a regular Hessian reported as +Inf")
	}
}
