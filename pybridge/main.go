// SPDX-License-Identifier: Apache-2.0

package main

/*
#cgo CFLAGS: -I.
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/tarstars/newtopt/nrl"
	"gonum.org/v1/gonum/mat"
)

var (
	handleMu   sync.Mutex
	nextHandle uint64 = 1
	problems          = make(map[uint64]nrl.QuadraticForm)

	lastErrorMu sync.Mutex
	lastError   string
)

func setLastError(err error) {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	if err != nil {
		lastError = err.Error()
	} else {
		lastError = ""
	}
}

func storeProblem(form nrl.QuadraticForm) uint64 {
	handleMu.Lock()
	defer handleMu.Unlock()
	handle := nextHandle
	problems[handle] = form
	nextHandle++
	return handle
}

func fetchProblem(handle uint64) (nrl.QuadraticForm, error) {
	handleMu.Lock()
	defer handleMu.Unlock()
	form, ok := problems[handle]
	if !ok {
		return nrl.QuadraticForm{}, errors.New("invalid problem handle")
	}
	return form, nil
}

func copyFloatSlice(ptr *C.double, length int) ([]float64, error) {
	if length < 0 {
		return nil, errors.New("negative length")
	}
	if length == 0 {
		return nil, nil
	}
	if ptr == nil {
		return nil, errors.New("null pointer for non-empty slice")
	}
	src := unsafe.Slice((*float64)(unsafe.Pointer(ptr)), length)
	dst := make([]float64, length)
	copy(dst, src)
	return dst, nil
}

func buildDense(ptr *C.double, rows, cols C.int) (*mat.Dense, error) {
	r := int(rows)
	c := int(cols)
	if r < 1 || c < 1 {
		return nil, errors.New("invalid matrix dimensions")
	}
	data, err := copyFloatSlice(ptr, r*c)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(r, c, data), nil
}

//export NewQuadraticProblem
func NewQuadraticProblem(aPtr *C.double, bPtr *C.double, n C.int) C.ulonglong {
	a, err := buildDense(aPtr, n, n)
	if err != nil {
		setLastError(err)
		return 0
	}
	b, err := buildDense(bPtr, n, 1)
	if err != nil {
		setLastError(err)
		return 0
	}
	form, err := nrl.NewQuadraticForm(a, b)
	if err != nil {
		setLastError(err)
		return 0
	}
	setLastError(nil)
	return C.ulonglong(storeProblem(form))
}

//export FreeProblem
func FreeProblem(handle C.ulonglong) {
	handleMu.Lock()
	defer handleMu.Unlock()
	delete(problems, uint64(handle))
}

//MinimizeQuadratic runs a bounded Newton-Raphson minimization of the problem
//behind handle. xPtr points at the start point of length n and receives the
//final point in place. The return value is the final nrl.Status, or -1 when
//the bridge itself failed (consult LastErrorMessage then).
//
//export MinimizeQuadratic
func MinimizeQuadratic(handle C.ulonglong, xPtr *C.double, n C.int, gradTol C.double, maxIter C.int, itersOut *C.int) C.int {
	form, err := fetchProblem(uint64(handle))
	if err != nil {
		setLastError(err)
		return -1
	}
	start, err := copyFloatSlice(xPtr, int(n))
	if err != nil {
		setLastError(err)
		return -1
	}
	if len(start) == 0 {
		setLastError(errors.New("empty start point"))
		return -1
	}
	if len(start) != nrl.Height(form.B) {
		setLastError(errors.New("start point length does not match problem dimension"))
		return -1
	}

	x := mat.NewDense(len(start), 1, start)
	trace := nrl.Minimize(form.Gradient(), form.Hessian(), x, nrl.MinimizeParams{
		GradTol: float64(gradTol),
		MaxIter: int(maxIter),
	})

	out := unsafe.Slice((*float64)(unsafe.Pointer(xPtr)), len(start))
	for p := range out {
		out[p] = x.At(p, 0)
	}
	if itersOut != nil {
		*itersOut = C.int(trace.Iterations())
	}

	setLastError(nil)
	return C.int(trace.Final)
}

//export LastErrorMessage
func LastErrorMessage() *C.char {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return C.CString(lastError)
}

func main() {}
