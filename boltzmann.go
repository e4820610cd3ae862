package qnotebook

import (
	"fmt"
	"math"

	"github.com/theapemachine/errnie"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

/*
Boltzmann returns the thermal populations exp(-E_i/kT)/Z of the given
energy levels. Energies are shifted by their minimum before exponentiating
so that large energies do not underflow every term to zero.
*/
func Boltzmann(energies []float64, kT float64) ([]float64, error) {
	if len(energies) == 0 {
		return nil, fmt.Errorf("%w: no energy levels", ErrInvalidArgument)
	}

	if !(kT > 0) || math.IsInf(kT, 1) {
		return nil, fmt.Errorf("%w: kT must be positive and finite, got %v", ErrInvalidArgument, kT)
	}

	ground := floats.Min(energies)

	populations := make([]float64, len(energies))
	for i, energy := range energies {
		populations[i] = math.Exp(-(energy - ground) / kT)
	}

	floats.Scale(1/floats.Sum(populations), populations)
	return populations, nil
}

/*
BoltzmannCurve is the population of every level over a temperature grid,
the data behind a distribution plot.
*/
type BoltzmannCurve struct {
	Energies    []float64
	KT          []float64
	Populations [][]float64 // Populations[level][step]
}

/*
BoltzmannSeries samples Boltzmann on steps evenly spaced kT values in
[kTMin, kTMax].
*/
func BoltzmannSeries(energies []float64, kTMin, kTMax float64, steps int) (*BoltzmannCurve, error) {
	if steps < 2 {
		return nil, fmt.Errorf("%w: need at least 2 steps, got %d", ErrInvalidArgument, steps)
	}

	if kTMax < kTMin {
		return nil, fmt.Errorf("%w: kT range [%v, %v] is reversed", ErrInvalidArgument, kTMin, kTMax)
	}

	errnie.Info("BoltzmannSeries - levels %d, kT [%v, %v], steps %d", len(energies), kTMin, kTMax, steps)

	curve := &BoltzmannCurve{
		Energies:    append([]float64(nil), energies...),
		KT:          floats.Span(make([]float64, steps), kTMin, kTMax),
		Populations: make([][]float64, len(energies)),
	}

	for level := range curve.Populations {
		curve.Populations[level] = make([]float64, steps)
	}

	for step, kT := range curve.KT {
		populations, err := Boltzmann(energies, kT)
		if err != nil {
			return nil, err
		}

		for level, p := range populations {
			curve.Populations[level][step] = p
		}
	}

	return curve, nil
}

/*
ThermalState is the diagonal density matrix of a system in equilibrium
with a bath at temperature kT. It carries no coherence at all.
*/
func ThermalState(energies []float64, kT float64) (*DensityMatrix, error) {
	populations, err := Boltzmann(energies, kT)
	if err != nil {
		return nil, err
	}

	n := len(populations)
	m := mat.NewCDense(n, n, nil)
	for i, p := range populations {
		m.Set(i, i, complex(p, 0))
	}

	return &DensityMatrix{m: m}, nil
}
