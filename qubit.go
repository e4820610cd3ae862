package qnotebook

import "math"

type Qubit struct {
	alpha           complex128 // |0⟩ amplitude
	beta            complex128 // |1⟩ amplitude
	decoherenceRate float64
}

func NewQubit(alpha, beta complex128) *Qubit {
	return &Qubit{
		alpha:           alpha,
		beta:            beta,
		decoherenceRate: 0.01,
	}
}

// WithDecoherenceRate sets the rate at which coherence leaks away per unit time.
func (q *Qubit) WithDecoherenceRate(rate float64) *Qubit {
	q.decoherenceRate = rate
	return q
}

func (q *Qubit) ApplyHadamard() {
	// H = 1/√2 * [1  1]
	//           [1 -1]
	newAlpha := (q.alpha + q.beta) / complex(math.Sqrt(2), 0)
	newBeta := (q.alpha - q.beta) / complex(math.Sqrt(2), 0)
	q.alpha = newAlpha
	q.beta = newBeta
}

func (q *Qubit) State() StateVector {
	return NewStateVector(q.alpha, q.beta)
}

/*
Visibility is the fraction of coherence left after time t, exp(-rate·t).
*/
func (q *Qubit) Visibility(t float64) float64 {
	return math.Exp(-q.decoherenceRate * t)
}

/*
Decohere returns the density matrix of the qubit after it has been left in
contact with its environment for time t.
*/
func (q *Qubit) Decohere(builder *MixedStateBuilder, t float64) *DensityMatrix {
	return builder.Build(q.State(), q.Visibility(t))
}
