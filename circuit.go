package qnotebook

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/mat"
)

// GateKind identifies the operation a Gate performs.
type GateKind int

const (
	GateH GateKind = iota
	GateX
	GateY
	GateZ
	GatePhase
	GateRZ
	GateCX
)

/*
Gate is one step of a Circuit. Control is only read for GateCX and Theta
only for the parameterised kinds.
*/
type Gate struct {
	Name    string
	Kind    GateKind
	Target  int
	Control int
	Theta   float64
}

/*
Adjoint returns the gate that undoes g.
*/
func (g Gate) Adjoint() Gate {
	switch g.Kind {
	case GatePhase, GateRZ:
		adj := g
		adj.Theta = -g.Theta
		adj.Name = daggerName(g.Name)
		return adj
	default:
		return g
	}
}

func (g Gate) String() string {
	switch g.Kind {
	case GateCX:
		return fmt.Sprintf("%s(%d,%d)", g.Name, g.Control, g.Target)
	case GatePhase, GateRZ:
		return fmt.Sprintf("%s(%.4f) q%d", g.Name, g.Theta, g.Target)
	default:
		return fmt.Sprintf("%s q%d", g.Name, g.Target)
	}
}

func daggerName(name string) string {
	if strings.HasSuffix(name, "†") {
		return strings.TrimSuffix(name, "†")
	}

	return name + "†"
}

/*
matrix is the 2x2 unitary of a single-qubit gate.
*/
func (g Gate) matrix() mat.CMatrix {
	switch g.Kind {
	case GateH:
		return Hadamard
	case GateX:
		return PauliX
	case GateY:
		return PauliY
	case GateZ:
		return PauliZ
	case GatePhase:
		return Phase(g.Theta)
	case GateRZ:
		return mat.NewCDense(2, 2, []complex128{
			cmplx.Exp(complex(0, -g.Theta/2)), 0,
			0, cmplx.Exp(complex(0, g.Theta/2)),
		})
	default:
		return nil
	}
}

/*
Circuit is an ordered list of gates on a fixed register. Qubit q maps to bit
q of the basis index, so qubit 0 is the least significant.
*/
type Circuit struct {
	Qubits int
	Gates  []Gate
}

func NewCircuit(qubits int) *Circuit {
	return &Circuit{Qubits: qubits}
}

func (c *Circuit) H(q int) *Circuit { return c.Append(Gate{Name: "H", Kind: GateH, Target: q}) }
func (c *Circuit) X(q int) *Circuit { return c.Append(Gate{Name: "X", Kind: GateX, Target: q}) }
func (c *Circuit) Y(q int) *Circuit { return c.Append(Gate{Name: "Y", Kind: GateY, Target: q}) }
func (c *Circuit) Z(q int) *Circuit { return c.Append(Gate{Name: "Z", Kind: GateZ, Target: q}) }
func (c *Circuit) S(q int) *Circuit { return c.Append(Gate{Name: "S", Kind: GatePhase, Target: q, Theta: math.Pi / 2}) }
func (c *Circuit) T(q int) *Circuit { return c.Append(Gate{Name: "T", Kind: GatePhase, Target: q, Theta: math.Pi / 4}) }
func (c *Circuit) CX(control, target int) *Circuit {
	return c.Append(Gate{Name: "CX", Kind: GateCX, Target: target, Control: control})
}

func (c *Circuit) RZ(q int, theta float64) *Circuit {
	return c.Append(Gate{Name: "RZ", Kind: GateRZ, Target: q, Theta: theta})
}

// Append adds gates in order and returns the circuit for chaining.
func (c *Circuit) Append(gates ...Gate) *Circuit {
	c.Gates = append(c.Gates, gates...)
	return c
}

/*
Inverse returns the circuit that undoes c: the gates in reverse order, each
replaced by its adjoint.
*/
func (c *Circuit) Inverse() *Circuit {
	inv := &Circuit{Qubits: c.Qubits, Gates: make([]Gate, 0, len(c.Gates))}

	for i := len(c.Gates) - 1; i >= 0; i-- {
		inv.Gates = append(inv.Gates, c.Gates[i].Adjoint())
	}

	return inv
}

/*
Run applies every gate to a copy of the input state.
*/
func (c *Circuit) Run(in StateVector) (StateVector, error) {
	if c.Qubits < 0 || c.Qubits > 30 {
		return nil, fmt.Errorf("%w: qubit count %d", ErrInvalidArgument, c.Qubits)
	}

	if len(in) != 1<<c.Qubits {
		return nil, fmt.Errorf(
			"%w: circuit on %d qubits needs %d amplitudes, got %d",
			ErrInvalidArgument, c.Qubits, 1<<c.Qubits, len(in),
		)
	}

	errnie.Info("Circuit.Run - qubits %d, gates %d", c.Qubits, len(c.Gates))

	state := in.Clone()
	for _, gate := range c.Gates {
		if err := c.check(gate); err != nil {
			return nil, err
		}

		if gate.Kind == GateCX {
			applyCX(state, gate.Control, gate.Target)
			continue
		}

		applySingle(state, gate.Target, gate.matrix())
	}

	return state, nil
}

func (c *Circuit) String() string {
	names := make([]string, len(c.Gates))
	for i, gate := range c.Gates {
		names[i] = gate.String()
	}
	return strings.Join(names, "; ")
}

func (c *Circuit) check(gate Gate) error {
	if gate.Target < 0 || gate.Target >= c.Qubits {
		return fmt.Errorf("%w: target qubit %d outside register of %d", ErrInvalidArgument, gate.Target, c.Qubits)
	}

	if gate.Kind != GateCX {
		return nil
	}

	if gate.Control < 0 || gate.Control >= c.Qubits || gate.Control == gate.Target {
		return fmt.Errorf("%w: control qubit %d invalid for target %d", ErrInvalidArgument, gate.Control, gate.Target)
	}

	return nil
}

func applySingle(state StateVector, q int, u mat.CMatrix) {
	bit := 1 << q
	u00, u01, u10, u11 := u.At(0, 0), u.At(0, 1), u.At(1, 0), u.At(1, 1)

	for i := range state {
		if i&bit != 0 {
			continue
		}

		j := i | bit
		a, b := state[i], state[j]
		state[i] = u00*a + u01*b
		state[j] = u10*a + u11*b
	}
}

func applyCX(state StateVector, control, target int) {
	cbit := 1 << control
	tbit := 1 << target

	for i := range state {
		if i&cbit != 0 && i&tbit == 0 {
			j := i | tbit
			state[i], state[j] = state[j], state[i]
		}
	}
}
