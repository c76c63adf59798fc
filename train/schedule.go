// schedule.go - Lernraten-Schedule fuer das Transformer-Training
//
// lr(step) = d_model^-0.5 * min(step^-0.5, step * warmup^-1.5)
//
// Linearer Warmup bis warmup_steps, danach inverse Wurzel-Abnahme;
// das Maximum liegt exakt bei step == warmup_steps.
package train

import "math"

// Schedule computes a step-dependent learning rate. Implementations must
// be stateless per call: the optimizer may invoke At from concurrent
// steps and expects identical output for identical input.
type Schedule interface {
	At(step int) float64
}

// Transformer is the warmup/inverse-square-root schedule from the
// Transformer paper. Both parameters are fixed at construction.
type Transformer struct {
	DModel      int
	WarmupSteps int
}

var _ Schedule = Transformer{}

// At returns the learning rate for a 1-based step counter. Step 0 would
// divide by zero under the inverse square root, so steps start at 1.
func (s Transformer) At(step int) float64 {
	if step < 1 || s.DModel <= 0 || s.WarmupSteps <= 0 {
		return 0
	}

	arg1 := 1 / math.Sqrt(float64(step))
	arg2 := float64(step) * math.Pow(float64(s.WarmupSteps), -1.5)

	return 1 / math.Sqrt(float64(s.DModel)) * math.Min(arg1, arg2)
}
