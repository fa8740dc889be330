package nrl

import (
	"errors"
	"fmt"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
	"log"
	"math"
	"os"
)

//ErrSingularMatrix is returned by SolveLinearSystem when the system matrix is
//singular or too ill-conditioned to solve reliably.
var ErrSingularMatrix = errors.New("matrix is singular or ill-conditioned")

//MaxHessianCondition is the largest LU condition estimate SolveLinearSystem
//accepts before declaring the system matrix unusable. Near-singular matrices
//have unreliable determinants, so the cutoff is applied to the factorization's
//condition estimate instead. Tunable; gonum itself only complains above 1e16.
const MaxHessianCondition = 1e14

//HandleError interrupts the execution in the case of an error
func HandleError(err error) {
	if err != nil {
		log.Panic(err)
	}
}

//Height returns the number of rows of a dense matrix.
func Height(m *mat.Dense) int {
	h, _ := m.Dims()
	return h
}

//NewMatrix allocates a zero-initialized dense matrix. Both dimensions have to
//be positive. Element access on the result follows the gonum contract: indices
//out of range are a programming error and panic.
func NewMatrix(rows, cols int) (*mat.Dense, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("invalid matrix dimensions %dx%d", rows, cols)
	}
	return mat.NewDense(rows, cols, nil), nil
}

//NewVector allocates a column vector of the given length. When data is not nil
//its length has to match n.
func NewVector(n int, data []float64) (*mat.Dense, error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid vector length %d", n)
	}
	if data != nil && len(data) != n {
		return nil, fmt.Errorf("vector data length %d does not match length %d", len(data), n)
	}
	return mat.NewDense(n, 1, data), nil
}

//VecNorm returns the Euclidean norm of a column vector.
func VecNorm(v *mat.Dense) float64 {
	_, w := v.Dims()
	if w != 1 {
		log.Panicf("VecNorm expects a column vector, got width %d", w)
	}
	return mat.Norm(v.ColView(0), 2)
}

//Transpose returns the transpose of m as a fresh dense matrix. The input is
//not mutated.
func Transpose(m *mat.Dense) *mat.Dense {
	return mat.DenseCopyOf(m.T())
}

//SolveLinearSystem solves a*x = b for a square matrix a and a column vector b.
//The system is LU-factorized first and rejected with ErrSingularMatrix when
//the condition estimate exceeds MaxHessianCondition, so near-singular systems
//fail cleanly instead of producing garbage.
func SolveLinearSystem(a, b *mat.Dense) (*mat.Dense, error) {
	n, w := a.Dims()
	if n != w {
		log.Panicf("system matrix has to be square, got %dx%d", n, w)
	}
	bh, bw := b.Dims()
	if bh != n || bw != 1 {
		log.Panicf("right-hand side has to be %dx1, got %dx%d", n, bh, bw)
	}

	var lu mat.LU
	lu.Factorize(a)
	cond := lu.Cond()
	if math.IsNaN(cond) || cond > MaxHessianCondition {
		return nil, ErrSingularMatrix
	}

	var solution mat.VecDense
	if err := lu.SolveVecTo(&solution, false, b.ColView(0)); err != nil {
		return nil, ErrSingularMatrix
	}

	result := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		result.Set(i, 0, solution.AtVec(i))
	}
	return result, nil
}

//IsFinite reports whether every element of m is a finite number.
func IsFinite(m *mat.Dense) bool {
	h, w := m.Dims()
	for p := 0; p < h; p++ {
		for q := 0; q < w; q++ {
			val := m.At(p, q)
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return false
			}
		}
	}
	return true
}

//ReadNpy reads a dense matrix from an npy file
func ReadNpy(fileName string) (denseMat *mat.Dense) {
	f, err := os.Open(fileName)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { HandleError(f.Close()) }()

	r, err := npyio.NewReader(f)
	if err != nil {
		log.Fatal(err)
	}

	denseMat = &mat.Dense{}
	HandleError(r.Read(denseMat))
	return
}

//WriteNpy stores a dense matrix into an npy file
func WriteNpy(fileName string, m *mat.Dense) {
	dst, err := os.Create(fileName)
	HandleError(err)
	defer func() { HandleError(dst.Close()) }()

	HandleError(npyio.Write(dst, m))
}
