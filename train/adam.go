// adam.go - Adam-Optimierer mit Schedule-Anbindung
//
// Dieses Modul enthaelt:
// - Adam: Momenten-Schaetzung erster und zweiter Ordnung
// - Step: ein Optimierer-Schritt ueber flache Parameter-Slices
// - ClipGradients: Begrenzung der globalen Gradienten-Norm
//
// Die Netzarchitektur selbst ist extern; der Optimierer arbeitet auf
// opaken Parameter- und Gradienten-Slices.
package train

import (
	"errors"
	"fmt"
	"math"
)

var ErrGradientMismatch = errors.New("train: parameter and gradient shapes differ")

// Adam implements the Adam update rule with bias correction. The learning
// rate comes from the configured schedule, advanced once per Step call.
type Adam struct {
	Beta1   float64
	Beta2   float64
	Epsilon float64

	schedule Schedule
	step     int
	m, v     [][]float64
}

// NewAdam returns an optimizer fed by schedule, using the hyperparameters
// of the Transformer paper (beta2 = 0.98, epsilon = 1e-9).
func NewAdam(schedule Schedule) *Adam {
	return &Adam{
		Beta1:    0.9,
		Beta2:    0.98,
		Epsilon:  1e-9,
		schedule: schedule,
	}
}

// Step applies one Adam update to params in place. The slices in grads
// must match params element for element. Moment buffers are allocated
// lazily on the first call.
func (opt *Adam) Step(params, grads [][]float32) error {
	if len(params) != len(grads) {
		return fmt.Errorf("%w: %d parameter groups, %d gradient groups", ErrGradientMismatch, len(params), len(grads))
	}

	if opt.m == nil {
		opt.m = make([][]float64, len(params))
		opt.v = make([][]float64, len(params))
		for i, p := range params {
			opt.m[i] = make([]float64, len(p))
			opt.v[i] = make([]float64, len(p))
		}
	}

	opt.step++
	lr := opt.schedule.At(opt.step)

	c1 := 1 - math.Pow(opt.Beta1, float64(opt.step))
	c2 := 1 - math.Pow(opt.Beta2, float64(opt.step))

	for i, p := range params {
		g := grads[i]
		if len(g) != len(p) {
			return fmt.Errorf("%w: group %d has %d parameters but %d gradients", ErrGradientMismatch, i, len(p), len(g))
		}

		for j := range p {
			gj := float64(g[j])

			opt.m[i][j] = opt.Beta1*opt.m[i][j] + (1-opt.Beta1)*gj
			opt.v[i][j] = opt.Beta2*opt.v[i][j] + (1-opt.Beta2)*gj*gj

			mHat := opt.m[i][j] / c1
			vHat := opt.v[i][j] / c2

			p[j] -= float32(lr * mHat / (math.Sqrt(vHat) + opt.Epsilon))
		}
	}

	return nil
}

// ClipGradients scales grads in place so their global L2 norm does not
// exceed maxNorm. Returns the norm before clipping.
func ClipGradients(grads [][]float32, maxNorm float64) float64 {
	var norm float64
	for _, g := range grads {
		for _, v := range g {
			norm += float64(v) * float64(v)
		}
	}
	norm = math.Sqrt(norm)

	if norm > maxNorm && norm > 0 {
		scale := float32(maxNorm / norm)
		for _, g := range grads {
			for j := range g {
				g[j] *= scale
			}
		}
	}

	return norm
}
