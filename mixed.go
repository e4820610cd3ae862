package qnotebook

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/mat"
)

/*
MixedStateBuilder blends a pure state with the maximally mixed state of the
same dimension. Visibility 1 keeps the pure state, visibility 0 leaves
nothing but the identity, which models the loss of coherence an open system
suffers when it leaks information into its environment.
*/
type MixedStateBuilder struct {
	config *Config
}

func NewMixedStateBuilder(config *Config) *MixedStateBuilder {
	if config == nil {
		config = NewConfig()
	}

	return &MixedStateBuilder{config: config}
}

/*
Build returns visibility·|ψ⟩⟨ψ| + (1-visibility)·I/n where n is the length
of the pure state. Inputs are not validated: a visibility outside [0,1] or
a non-unit state still produce a well-defined matrix, just not a physical
one. Use Validate or BuildChecked when that matters.
*/
func (builder *MixedStateBuilder) Build(pure StateVector, visibility float64) *DensityMatrix {
	n := len(pure)

	errnie.Info(
		"MixedStateBuilder.Build - dimension %d, qubits %v, visibility %v",
		n,
		qubitsOf(n),
		visibility,
	)

	if n == 0 {
		return &DensityMatrix{}
	}

	density := pure.Outer().m
	weight := complex(visibility, 0)
	background := complex((1-visibility)/float64(n), 0)

	out := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := weight * density.At(i, j)
			if i == j {
				v += background
			}
			out.Set(i, j, v)
		}
	}

	return &DensityMatrix{m: out}
}

/*
Validate checks the physical preconditions Build leaves to the caller.
*/
func (builder *MixedStateBuilder) Validate(pure StateVector, visibility float64) error {
	if _, err := pure.Qubits(); err != nil {
		return err
	}

	if math.IsNaN(visibility) || visibility < 0 || visibility > 1 {
		return fmt.Errorf("%w: visibility %v outside [0,1]", ErrInvalidArgument, visibility)
	}

	if !isUnitNorm(pure, builder.config.Tolerance) {
		return fmt.Errorf("%w: state norm %v is not 1", ErrInvalidArgument, pure.Norm())
	}

	return nil
}

// BuildChecked is Build guarded by Validate.
func (builder *MixedStateBuilder) BuildChecked(pure StateVector, visibility float64) (*DensityMatrix, error) {
	if err := builder.Validate(pure, visibility); err != nil {
		return nil, err
	}

	return builder.Build(pure, visibility), nil
}

/*
MaximallyMixed returns I/n, the state of complete ignorance.
*/
func MaximallyMixed(n int) *DensityMatrix {
	if n <= 0 {
		return &DensityMatrix{}
	}

	m := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, complex(1/float64(n), 0))
	}
	return &DensityMatrix{m: m}
}

// qubitsOf reports log2(n), or -1 when n is not a power of two.
func qubitsOf(n int) int {
	if n <= 0 || n&(n-1) != 0 {
		return -1
	}

	return bits.TrailingZeros(uint(n))
}
