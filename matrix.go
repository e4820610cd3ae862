package qnotebook

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

var (
	PauliX   = mat.NewCDense(2, 2, []complex128{0, 1, 1, 0})
	PauliY   = mat.NewCDense(2, 2, []complex128{0, -1i, 1i, 0})
	PauliZ   = mat.NewCDense(2, 2, []complex128{1, 0, 0, -1})
	Hadamard = mat.NewCDense(2, 2, []complex128{
		complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0),
		complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0),
	})
)

// Phase is diag(1, e^{iθ}).
func Phase(theta float64) *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{1, 0, 0, cmplx.Exp(complex(0, theta))})
}

func Identity(n int) *mat.CDense {
	id := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}
	return id
}

/*
Dagger returns the conjugate transpose as a fresh dense matrix.
*/
func Dagger(m mat.CMatrix) *mat.CDense {
	return copyCDense(m.H())
}

/*
Mul computes a·b.
*/
func Mul(a, b mat.CMatrix) (*mat.CDense, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		return nil, fmt.Errorf("%w: cannot multiply %dx%d by %dx%d", ErrDimensionMismatch, ar, ac, br, bc)
	}

	out := mat.NewCDense(ar, bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < bc; j++ {
			var sum complex128
			for k := 0; k < ac; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			out.Set(i, j, sum)
		}
	}

	return out, nil
}

/*
Apply evolves a state vector under the matrix m.
*/
func Apply(m mat.CMatrix, sv StateVector) (StateVector, error) {
	r, c := m.Dims()
	if c != len(sv) {
		return nil, fmt.Errorf("%w: cannot apply %dx%d to vector of length %d", ErrDimensionMismatch, r, c, len(sv))
	}

	out := make(StateVector, r)
	for i := 0; i < r; i++ {
		for k := 0; k < c; k++ {
			out[i] += m.At(i, k) * sv[k]
		}
	}

	return out, nil
}

/*
IsUnitary checks U·U† = U†·U = I within tol.
*/
func IsUnitary(m mat.CMatrix, tol float64) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}

	left, err := Mul(m, m.H())
	if err != nil {
		return false
	}

	right, err := Mul(m.H(), m)
	if err != nil {
		return false
	}

	id := Identity(r)
	return EqualApprox(left, id, tol) && EqualApprox(right, id, tol)
}

// EqualApprox compares two complex matrices entry by entry.
func EqualApprox(a, b mat.CMatrix, tol float64) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}

	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if cmplx.Abs(a.At(i, j)-b.At(i, j)) > tol {
				return false
			}
		}
	}

	return true
}
