// sample.go - Auswahl des naechsten Tokens aus einer Logit-Verteilung
// Enthaelt: Sampler-Interface und Greedy (Argmax ohne Sampling)
package sample

import "gonum.org/v1/gonum/floats"

// Sampler selects token ids from a logit distribution. The returned slice
// holds the selected ids as floats, one per draw.
type Sampler interface {
	Sample(logits []float64) ([]float64, error)
}

type greedy struct{}

// Greedy returns a sampler that always picks the id with the highest logit.
// Deterministic given identical inputs.
func Greedy() Sampler {
	return greedy{}
}

func (s greedy) Sample(t []float64) ([]float64, error) {
	return []float64{float64(floats.MaxIdx(t))}, nil
}
