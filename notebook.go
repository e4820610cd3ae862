package qnotebook

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/mat"
)

/*
Result is what a notebook cell prints, plus whether the fact it
illustrates actually held.
*/
type Result struct {
	Name   string
	Lines  []string
	Passed bool
}

func (result *Result) printf(format string, args ...any) {
	result.Lines = append(result.Lines, fmt.Sprintf(format, args...))
}

func (result *Result) String() string {
	status := "ok"
	if !result.Passed {
		status = "FAILED"
	}

	return fmt.Sprintf("== %s [%s]\n%s\n", result.Name, status, strings.Join(result.Lines, "\n"))
}

// Cell is one self-contained demonstration.
type Cell func(nb *Notebook) (*Result, error)

/*
Notebook runs the demonstrations of unitary evolution in closed systems and
decoherence in open ones.
*/
type Notebook struct {
	config  *Config
	builder *MixedStateBuilder
	rng     *rand.Rand
	cells   map[string]Cell
}

func NewNotebook(config *Config) *Notebook {
	if config == nil {
		config = NewConfig()
	}

	return &Notebook{
		config:  config,
		builder: NewMixedStateBuilder(config),
		rng:     rand.New(rand.NewSource(config.Seed)),
		cells:   cellIndex(),
	}
}

type namedCell struct {
	name string
	cell Cell
}

// cells is the single, ordered registry RunAll walks.
var cells = []namedCell{
	{"unitarity", unitarityCell},
	{"norm", normCell},
	{"reverse", reverseCell},
	{"mixed", mixedCell},
	{"decohere", decohereCell},
	{"boltzmann", boltzmannCell},
}

func cellIndex() map[string]Cell {
	index := make(map[string]Cell, len(cells))
	for _, entry := range cells {
		index[entry.name] = entry.cell
	}
	return index
}

// CellNames lists the cells in the order RunAll executes them.
func CellNames() []string {
	names := make([]string, len(cells))
	for i, entry := range cells {
		names[i] = entry.name
	}
	return names
}

func (nb *Notebook) Config() *Config {
	return nb.config
}

func (nb *Notebook) Run(name string) (*Result, error) {
	cell, ok := nb.cells[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown cell %q", ErrInvalidArgument, name)
	}

	errnie.Info("Notebook.Run - cell %s", name)

	result, err := cell(nb)
	if err != nil {
		return nil, fmt.Errorf("cell %s: %w", name, err)
	}

	return result, nil
}

func (nb *Notebook) RunAll() ([]*Result, error) {
	results := make([]*Result, 0, len(nb.cells))

	for _, name := range CellNames() {
		result, err := nb.Run(name)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

/*
unitarityCell checks X·X† = X†·X = I for the Pauli X gate.
*/
func unitarityCell(nb *Notebook) (*Result, error) {
	result := &Result{Name: "unitarity"}

	left, err := Mul(PauliX, PauliX.H())
	if err != nil {
		return nil, err
	}

	right, err := Mul(PauliX.H(), PauliX)
	if err != nil {
		return nil, err
	}

	id := Identity(2)
	result.Passed = EqualApprox(left, id, 0) && EqualApprox(right, id, 0)

	result.printf("X·X† =\n%s", formatMatrix(left))
	result.printf("X†·X =\n%s", formatMatrix(right))
	result.printf("unitary: %v", result.Passed)

	return result, nil
}

/*
normCell evolves a superposition under a chain of gates and compares the
norm before and after.
*/
func normCell(nb *Notebook) (*Result, error) {
	result := &Result{Name: "norm"}

	state := NewStateVector(complex(0.6, 0), complex(0, 0.8))
	before := state.Norm()

	evolved := state
	for _, gate := range []mat.CMatrix{Hadamard, Phase(math.Pi / 3), PauliY} {
		next, err := Apply(gate, evolved)
		if err != nil {
			return nil, err
		}
		evolved = next
	}

	after := evolved.Norm()
	result.Passed = math.Abs(before-after) <= nb.config.Tolerance

	result.printf("state:   %v", state)
	result.printf("evolved: %v", evolved)
	result.printf("norm before %.12f, after %.12f", before, after)

	return result, nil
}

/*
reverseCell prepares a Bell state, runs the inverse circuit and expects to
land back on |00⟩.
*/
func reverseCell(nb *Notebook) (*Result, error) {
	result := &Result{Name: "reverse"}

	initial, err := BasisState(2, 0)
	if err != nil {
		return nil, err
	}

	circuit := NewCircuit(2).H(0).CX(0, 1).T(1).RZ(0, 0.7)

	forward, err := circuit.Run(initial)
	if err != nil {
		return nil, err
	}

	inverse := circuit.Inverse()

	back, err := inverse.Run(forward)
	if err != nil {
		return nil, err
	}

	result.Passed = back.EqualApprox(initial, nb.config.Tolerance)

	result.printf("circuit: %s", circuit)
	result.printf("forward: %v", forward)
	result.printf("inverse: %s", inverse)
	result.printf("back:    %v", back)

	return result, nil
}

/*
mixedCell builds the Bell state at the configured visibility and checks the
density matrix is a valid state.
*/
func mixedCell(nb *Notebook) (*Result, error) {
	result := &Result{Name: "mixed"}

	bell := NewStateVector(1, 0, 0, 1).Normalized()

	rho, err := nb.builder.BuildChecked(bell, nb.config.Visibility)
	if err != nil {
		return nil, err
	}

	trace := rho.Trace()
	result.Passed = math.Abs(real(trace)-1) <= nb.config.Tolerance &&
		math.Abs(imag(trace)) <= nb.config.Tolerance &&
		rho.IsHermitian(nb.config.Tolerance)

	result.printf("visibility %.3f", nb.config.Visibility)
	result.printf("ρ =\n%s", rho)
	result.printf("trace %.6f, purity %.6f, hermitian %v", real(trace), rho.Purity(), rho.IsHermitian(nb.config.Tolerance))

	return result, nil
}

/*
decohereCell leaves |+⟩ in contact with its environment and follows the
coherence term ρ01 as it decays.
*/
func decohereCell(nb *Notebook) (*Result, error) {
	result := &Result{Name: "decohere"}

	qubit := NewQubit(1, 0).WithDecoherenceRate(nb.config.DecoherenceRate)
	qubit.ApplyHadamard()

	result.Passed = true
	previous := math.Inf(1)

	for _, t := range []float64{0, 10, 50, 100, 500} {
		rho := qubit.Decohere(nb.builder, t)
		coherence := real(rho.At(0, 1))

		if coherence > previous {
			result.Passed = false
		}
		previous = coherence

		result.printf("t=%6.1f visibility %.4f ρ01 %.4f purity %.4f", t, qubit.Visibility(t), coherence, rho.Purity())
	}

	outcome, collapsed := qubit.State().Measure(nb.rng)
	result.printf("a projective measurement of |+⟩ gave |%d⟩, leaving %v", outcome, collapsed)

	return result, nil
}

/*
boltzmannCell tabulates the thermal populations over the configured
temperature range.
*/
func boltzmannCell(nb *Notebook) (*Result, error) {
	result := &Result{Name: "boltzmann"}

	curve, err := BoltzmannSeries(nb.config.Energies, nb.config.KTMin, nb.config.KTMax, nb.config.KTSteps)
	if err != nil {
		return nil, err
	}

	header := []string{"    kT"}
	for _, energy := range curve.Energies {
		header = append(header, fmt.Sprintf("E=%-6.2f", energy))
	}
	result.printf("%s", strings.Join(header, "  "))

	result.Passed = true

	for step, kT := range curve.KT {
		row := []string{fmt.Sprintf("%6.3f", kT)}
		sum := 0.0

		for level := range curve.Energies {
			p := curve.Populations[level][step]
			sum += p
			row = append(row, fmt.Sprintf("%-8.4f", p))
		}

		if math.Abs(sum-1) > 1e-9 {
			result.Passed = false
		}

		result.printf("%s", strings.Join(row, "  "))
	}

	return result, nil
}
