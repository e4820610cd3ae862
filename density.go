package qnotebook

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

/*
DensityMatrix is a square complex matrix describing a pure or mixed state.
A valid one is Hermitian, has unit trace and is positive semi-definite.
The zero value is the empty 0×0 matrix.
*/
type DensityMatrix struct {
	m *mat.CDense
}

/*
NewDensityMatrix wraps a copy of a square matrix.
*/
func NewDensityMatrix(m mat.CMatrix) (*DensityMatrix, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: density matrix must be square, got %dx%d", ErrDimensionMismatch, r, c)
	}

	if r == 0 {
		return &DensityMatrix{}, nil
	}

	return &DensityMatrix{m: copyCDense(m)}, nil
}

// Dims returns the side length of the matrix.
func (dm *DensityMatrix) Dims() int {
	if dm == nil || dm.m == nil {
		return 0
	}

	r, _ := dm.m.Dims()
	return r
}

func (dm *DensityMatrix) At(i, j int) complex128 {
	return dm.m.At(i, j)
}

/*
CMatrix exposes a copy of the underlying gonum matrix. It is nil for the
empty matrix.
*/
func (dm *DensityMatrix) CMatrix() *mat.CDense {
	if dm.m == nil {
		return nil
	}

	return copyCDense(dm.m)
}

func (dm *DensityMatrix) Trace() complex128 {
	var tr complex128
	for i := 0; i < dm.Dims(); i++ {
		tr += dm.m.At(i, i)
	}
	return tr
}

// Diagonal holds the populations of the computational basis states.
func (dm *DensityMatrix) Diagonal() []float64 {
	diag := make([]float64, dm.Dims())
	for i := range diag {
		diag[i] = real(dm.m.At(i, i))
	}
	return diag
}

/*
IsHermitian reports whether ρ equals its conjugate transpose within tol.
*/
func (dm *DensityMatrix) IsHermitian(tol float64) bool {
	if dm.m == nil {
		return true
	}

	return EqualApprox(dm.m, dm.m.H(), tol)
}

/*
Purity is Tr(ρ²): 1 for a pure state, 1/n for the maximally mixed state
of dimension n.
*/
func (dm *DensityMatrix) Purity() float64 {
	n := dm.Dims()

	// Tr(ρ²) = Σ_ij ρ_ij ρ_ji
	var purity complex128
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			purity += dm.m.At(i, j) * dm.m.At(j, i)
		}
	}

	return real(purity)
}

func (dm *DensityMatrix) EqualApprox(other *DensityMatrix, tol float64) bool {
	if dm == nil || other == nil {
		return dm == other
	}

	if dm.Dims() != other.Dims() {
		return false
	}

	if dm.Dims() == 0 {
		return true
	}

	return EqualApprox(dm.m, other.m, tol)
}

/*
String renders the matrix row by row, rounded to four decimals.
*/
func (dm *DensityMatrix) String() string {
	if dm.m == nil {
		return "[]\n"
	}

	return formatMatrix(dm.m)
}

func formatMatrix(m mat.CMatrix) string {
	var sb strings.Builder

	r, c := m.Dims()
	for i := 0; i < r; i++ {
		sb.WriteString("[")
		for j := 0; j < c; j++ {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(formatComplex(m.At(i, j)))
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

func formatComplex(v complex128) string {
	if math.Abs(imag(v)) < 1e-12 {
		return fmt.Sprintf("%.4f", real(v))
	}

	return fmt.Sprintf("%.4f%+.4fi", real(v), imag(v))
}

func copyCDense(m mat.CMatrix) *mat.CDense {
	r, c := m.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(i, j))
		}
	}
	return out
}
