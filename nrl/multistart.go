package nrl

import (
	"gonum.org/v1/gonum/mat"
)

//TaskMinimize runs one bounded minimization and stores its trace.
type TaskMinimize struct {
	result []Trace
	index  int
	run    func(int) Trace
}

func (task *TaskMinimize) Execute() {
	task.result[task.index] = task.run(task.index)
}

//MultiStart runs independent bounded minimizations from every row of starts
//(one start point per row) and returns their traces in row order. Each run
//owns its point and its transient matrices, so the runs need no coordination
//beyond the worker pool.
func MultiStart(df, ddf F, starts *mat.Dense, params MinimizeParams, threadsNum int) []Trace {
	h, n := starts.Dims()
	result := make([]Trace, h)

	runFunc := func(ind int) Trace {
		x := mat.NewDense(n, 1, nil)
		for q := 0; q < n; q++ {
			x.Set(q, 0, starts.At(ind, q))
		}
		return Minimize(df, ddf, x, params)
	}

	if threadsNum == 1 {
		for q := 0; q < h; q++ {
			result[q] = runFunc(q)
		}
	} else {
		taskPool := NewPool(threadsNum)
		for q := 0; q < h; q++ {
			taskPool.AddTask(&TaskMinimize{result, q, runFunc})
		}
		taskPool.Close()
		taskPool.WaitAll()
	}

	return result
}

//BestTrace selects the converged trace with the smallest final gradient norm.
//It returns nil when no run converged.
func BestTrace(traces []Trace) *Trace {
	bestNorm := 0.0
	bestIndex := 0
	firstTime := true

	for ind, currentTrace := range traces {
		if !currentTrace.Converged() || len(currentTrace.Steps) == 0 {
			continue
		}
		finalNorm := currentTrace.Steps[len(currentTrace.Steps)-1].GradNorm
		if firstTime || finalNorm < bestNorm {
			firstTime = false
			bestNorm = finalNorm
			bestIndex = ind
		}
	}

	if firstTime {
		return nil
	}
	return &traces[bestIndex]
}
