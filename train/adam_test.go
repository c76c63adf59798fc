// adam_test.go - Tests fuer Adam-Optimierer und Gradienten-Clipping
package train

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// constant schedule haelt die Lernrate fuer Test-Zwecke fest
type constant float64

func (c constant) At(int) float64 { return float64(c) }

func TestAdamStepMovesAgainstGradient(t *testing.T) {
	opt := NewAdam(constant(0.1))

	params := [][]float32{{1, -1}, {0.5}}
	grads := [][]float32{{1, -1}, {2}}

	require.NoError(t, opt.Step(params, grads))

	// Positive Gradienten verkleinern Parameter, negative vergroessern sie
	require.Less(t, params[0][0], float32(1))
	require.Greater(t, params[0][1], float32(-1))
	require.Less(t, params[1][0], float32(0.5))
}

func TestAdamGradientMismatch(t *testing.T) {
	opt := NewAdam(constant(0.1))

	err := opt.Step([][]float32{{1, 2}}, [][]float32{{1, 2}, {3}})
	require.ErrorIs(t, err, ErrGradientMismatch)

	err = opt.Step([][]float32{{1, 2}}, [][]float32{{1}})
	require.ErrorIs(t, err, ErrGradientMismatch)
}

func TestAdamUsesSchedule(t *testing.T) {
	// Schedule mit Lernrate 0: Parameter bleiben unveraendert
	opt := NewAdam(constant(0))

	params := [][]float32{{1, 2, 3}}
	grads := [][]float32{{1, 1, 1}}

	require.NoError(t, opt.Step(params, grads))
	require.Equal(t, [][]float32{{1, 2, 3}}, params)
}

func TestClipGradients(t *testing.T) {
	grads := [][]float32{{3}, {4}}

	norm := ClipGradients(grads, 1.0)
	require.InDelta(t, 5.0, norm, 1e-6)

	var clipped float64
	for _, g := range grads {
		for _, v := range g {
			clipped += float64(v) * float64(v)
		}
	}
	require.InDelta(t, 1.0, math.Sqrt(clipped), 1e-6)

	// Unterhalb der Schranke bleibt alles unveraendert
	grads = [][]float32{{0.3, 0.4}}
	ClipGradients(grads, 1.0)
	require.Equal(t, [][]float32{{0.3, 0.4}}, grads)
}
