// torch.go - Import von PyTorch-Checkpoints (Pickle-Format)
//
// Liest state_dicts aus .pt/.pth-Dateien und uebernimmt die Tensoren in
// das eigene Checkpoint-Format. Lineare Gewichte werden von (out, in)
// nach (in, out) umgepackt.
package checkpoint

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nlpodyssey/gopickle/pytorch"
	"github.com/nlpodyssey/gopickle/types"
	"github.com/pdevine/tensor"
	"github.com/pdevine/tensor/native"

	"github.com/7blacky7/uebersetzer/ml"
)

// ImportTorch loads a pickled PyTorch state_dict and returns its tensors
// keyed by parameter name. Half and bfloat16 storages are widened to
// float32; 2-d ".weight" tensors are transposed into (in, out) layout.
func ImportTorch(path string) (map[string]*ml.Tensor, error) {
	pt, err := pytorch.Load(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: unpickling %s: %w", path, err)
	}

	dict, ok := pt.(*types.Dict)
	if !ok {
		return nil, fmt.Errorf("checkpoint: %s: expected a state_dict, got %T", path, pt)
	}

	out := make(map[string]*ml.Tensor, dict.Len())
	for _, k := range dict.Keys() {
		name, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("checkpoint: non-string parameter name %v", k)
		}

		t, ok := dict.MustGet(k).(*pytorch.Tensor)
		if !ok {
			slog.Warn("skipping non-tensor entry", "name", name)
			continue
		}

		var shape []int
		for _, dim := range t.Size {
			shape = append(shape, dim)
		}

		var f32s []float32
		switch s := t.Source.(type) {
		case *pytorch.FloatStorage:
			f32s = s.Data
		case *pytorch.HalfStorage:
			f32s = s.Data
		case *pytorch.BFloat16Storage:
			f32s = s.Data
		case *pytorch.DoubleStorage:
			f32s = make([]float32, len(s.Data))
			for i, v := range s.Data {
				f32s[i] = float32(v)
			}
		default:
			return nil, fmt.Errorf("checkpoint: %s: unknown storage type %T", name, s)
		}

		n := 1
		for _, d := range shape {
			n *= d
		}
		if n > len(f32s) {
			return nil, fmt.Errorf("checkpoint: %s: storage too small for shape %v", name, shape)
		}
		f32s = f32s[:n]

		if len(shape) == 2 && strings.HasSuffix(name, ".weight") {
			f32s, err = transpose(f32s, shape)
			if err != nil {
				return nil, fmt.Errorf("checkpoint: repacking %s: %w", name, err)
			}
			shape[0], shape[1] = shape[1], shape[0]
		}

		mt, err := ml.FromSlice(f32s, shape...)
		if err != nil {
			return nil, fmt.Errorf("checkpoint: %s: %w", name, err)
		}

		out[name] = mt
		slog.Debug("imported tensor", "name", name, "shape", shape)
	}

	return out, nil
}

func transpose(data []float32, shape []int) ([]float32, error) {
	n := tensor.New(tensor.WithShape(shape...), tensor.WithBacking(data))
	if err := n.Transpose(); err != nil {
		return nil, err
	}

	ts, err := native.SelectF32(n, 1)
	if err != nil {
		return nil, err
	}

	var f32s []float32
	for _, t := range ts {
		f32s = append(f32s, t...)
	}

	return f32s, nil
}
