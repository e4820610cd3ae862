package qnotebook

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
	"math/rand"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"
)

/*
StateVector is a column of complex amplitudes over the computational basis.
A register of d qubits has 2^d amplitudes. A physically valid pure state has
unit l2 norm, which is the caller's responsibility.
*/
type StateVector []complex128

// NewStateVector copies the given amplitudes into a fresh vector.
func NewStateVector(amplitudes ...complex128) StateVector {
	sv := make(StateVector, len(amplitudes))
	copy(sv, amplitudes)
	return sv
}

/*
BasisState returns |index⟩ for a register of the given number of qubits.
*/
func BasisState(qubits, index int) (StateVector, error) {
	if qubits < 0 || qubits > 30 {
		return nil, fmt.Errorf("%w: qubit count %d", ErrInvalidArgument, qubits)
	}

	n := 1 << qubits
	if index < 0 || index >= n {
		return nil, fmt.Errorf("%w: basis index %d outside [0,%d)", ErrInvalidArgument, index, n)
	}

	sv := make(StateVector, n)
	sv[index] = 1
	return sv, nil
}

func (sv StateVector) Len() int {
	return len(sv)
}

/*
Qubits returns d such that len(sv) == 2^d.
*/
func (sv StateVector) Qubits() (int, error) {
	n := len(sv)
	if n == 0 || n&(n-1) != 0 {
		return 0, fmt.Errorf("%w: length %d is not a power of two", ErrInvalidArgument, n)
	}

	return bits.TrailingZeros(uint(n)), nil
}

// Norm is the Euclidean norm of the amplitudes.
func (sv StateVector) Norm() float64 {
	if len(sv) == 0 {
		return 0
	}

	return cmplxs.Norm(sv, 2)
}

/*
Normalized returns a unit-norm copy. A zero vector is returned unchanged.
*/
func (sv StateVector) Normalized() StateVector {
	out := sv.Clone()

	norm := sv.Norm()
	if norm == 0 {
		return out
	}

	cmplxs.Scale(complex(1/norm, 0), out)
	return out
}

func (sv StateVector) Clone() StateVector {
	out := make(StateVector, len(sv))
	copy(out, sv)
	return out
}

// Probabilities are the squared moduli of the amplitudes.
func (sv StateVector) Probabilities() []float64 {
	probs := make([]float64, len(sv))
	for i, amplitude := range sv {
		probs[i] = real(amplitude * cmplx.Conj(amplitude))
	}
	return probs
}

/*
EqualApprox compares two vectors entry by entry within tol.
*/
func (sv StateVector) EqualApprox(other StateVector, tol float64) bool {
	if len(sv) != len(other) {
		return false
	}

	return cmplxs.EqualApprox(sv, other, tol)
}

/*
Outer returns the pure-state density matrix |ψ⟩⟨ψ|.
*/
func (sv StateVector) Outer() *DensityMatrix {
	n := len(sv)
	if n == 0 {
		return &DensityMatrix{}
	}

	m := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, sv[i]*cmplx.Conj(sv[j]))
		}
	}

	return &DensityMatrix{m: m}
}

/*
Measure samples a basis index with probability |amplitude|² and returns it
together with the collapsed state. The receiver is left untouched.
*/
func (sv StateVector) Measure(rng *rand.Rand) (int, StateVector) {
	n := len(sv)
	if n == 0 {
		return -1, nil
	}

	probs := sv.Probabilities()

	total := 0.0
	for _, p := range probs {
		total += p
	}

	if total == 0 {
		return -1, sv.Clone()
	}

	r := rng.Float64() * total

	measured := n - 1
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if r < cumulative {
			measured = i
			break
		}
	}

	collapsed := make(StateVector, n)
	collapsed[measured] = 1

	return measured, collapsed
}

func (sv StateVector) String() string {
	return fmt.Sprintf("%v", []complex128(sv))
}

func isUnitNorm(sv StateVector, tol float64) bool {
	return math.Abs(sv.Norm()-1) <= tol
}
