package nrl

import (
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultGradTol = 1e-3
	DefaultMaxIter = 100
)

//MinimizeParams collect arguments of the bounded minimization driver.
type MinimizeParams struct {
	//GradTol, if > 0, is the gradient norm below which the run counts as
	//converged. Else DefaultGradTol is used.
	GradTol float64
	//MaxIter, if > 0, bounds the number of Newton steps. Else DefaultMaxIter
	//is used.
	MaxIter int
}

func (params MinimizeParams) withDefaults() MinimizeParams {
	if params.GradTol <= 0 {
		params.GradTol = DefaultGradTol
	}
	if params.MaxIter <= 0 {
		params.MaxIter = DefaultMaxIter
	}
	return params
}

//TraceStep is one recorded iterate of a minimization run.
type TraceStep struct {
	Point    *mat.Dense
	GradNorm float64
}

//Trace is the recorded history of a minimization run. Steps[0] is the start
//point; every following entry is the iterate after one Newton step.
type Trace struct {
	Steps []TraceStep
	Final Status
}

//Converged reports whether the run ended below the gradient tolerance.
func (trace Trace) Converged() bool {
	return trace.Final == StatusSuccess
}

//Iterations returns the number of Newton steps the run performed.
func (trace Trace) Iterations() int {
	if len(trace.Steps) == 0 {
		return 0
	}
	return len(trace.Steps) - 1
}

//Minimize is the packaged caller loop around NewtonRaphson: it steps the point
//x in place until the gradient norm drops below params.GradTol, a step fails,
//or params.MaxIter steps were taken (Final == StatusMaxIterations). The
//one-step core stays policy-free; this driver is merely one convenient policy.
func Minimize(df, ddf F, x *mat.Dense, params MinimizeParams) (trace Trace) {
	params = params.withDefaults()

	gradNorm := VecNorm(df(x))
	trace.Steps = append(trace.Steps, TraceStep{Point: mat.DenseCopyOf(x), GradNorm: gradNorm})

	for iter := 0; iter < params.MaxIter; iter++ {
		if gradNorm <= params.GradTol {
			trace.Final = StatusSuccess
			return
		}
		if status := NewtonRaphson(df, ddf, x); status != StatusSuccess {
			trace.Final = status
			return
		}
		gradNorm = VecNorm(df(x))
		trace.Steps = append(trace.Steps, TraceStep{Point: mat.DenseCopyOf(x), GradNorm: gradNorm})
	}

	if gradNorm <= params.GradTol {
		trace.Final = StatusSuccess
	} else {
		trace.Final = StatusMaxIterations
	}
	return
}
