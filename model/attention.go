// attention.go - Benannte Attention-Gewichte eines Forward-Passes
//
// Die Gewichte werden pro Layer/Block unter einem festen Schluessel
// abgelegt (z.B. "decoder_layer4_block2") und nur fuer Inspektion und
// Heatmaps konsumiert, nie wieder in die Decode-Schleife eingespeist.
package model

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/7blacky7/uebersetzer/ml"
)

// AttentionWeights maps layer/block keys to per-head attention tensors of
// shape (1, heads, queryLen, keyLen). Iteration preserves insertion order
// so reports and plots are deterministic.
type AttentionWeights struct {
	m *orderedmap.OrderedMap[string, *ml.Tensor]
}

// NewAttentionWeights returns an empty map.
func NewAttentionWeights() *AttentionWeights {
	return &AttentionWeights{m: orderedmap.New[string, *ml.Tensor]()}
}

// Set stores the attention tensor for a layer/block key, replacing any
// previous value.
func (w *AttentionWeights) Set(key string, t *ml.Tensor) {
	w.m.Set(key, t)
}

// Get returns the attention tensor for a key.
func (w *AttentionWeights) Get(key string) (*ml.Tensor, bool) {
	return w.m.Get(key)
}

// Keys returns all layer/block keys in insertion order.
func (w *AttentionWeights) Keys() []string {
	keys := make([]string, 0, w.m.Len())
	for pair := w.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Len returns the number of stored layers/blocks.
func (w *AttentionWeights) Len() int {
	return w.m.Len()
}

// DecoderLayerKey returns the canonical key for a decoder layer and
// attention block, e.g. DecoderLayerKey(4, 2) == "decoder_layer4_block2".
// Block 1 is decoder self-attention, block 2 attends to encoder outputs.
func DecoderLayerKey(layer, block int) string {
	return fmt.Sprintf("decoder_layer%d_block%d", layer, block)
}
