// heatmap_test.go - Tests fuer Heatmap-Rendering und Datei-Sink
package plot

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/7blacky7/uebersetzer/ml"
	"github.com/7blacky7/uebersetzer/model"
)

func uniformAttention(t *testing.T, heads, queries, keys int) *ml.Tensor {
	t.Helper()
	tensor := ml.NewTensor(1, heads, queries, keys)
	data := tensor.Data()
	for i := range data {
		data[i] = 1 / float32(keys)
	}
	return tensor
}

func TestHeatmapRendersAllHeads(t *testing.T) {
	attention := model.NewAttentionWeights()
	attention.Set(model.DecoderLayerKey(2, 2), uniformAttention(t, 8, 3, 5))

	img, err := Heatmap(attention, model.DecoderLayerKey(2, 2),
		[]string{"<start>", "der", "Hund", "lief", "<end>"},
		[]string{"<start>", "the", "dog"})
	require.NoError(t, err)

	// 8 Koepfe in 4 Spalten ergeben zwei Panel-Zeilen
	bounds := img.Bounds()
	require.Equal(t, 4*(marginLeft+5*cellW+panelGapX), bounds.Dx())
	require.Equal(t, 2*(marginTop+3*cellH+marginBot+panelGapY), bounds.Dy())
}

func TestHeatmapUnknownLayer(t *testing.T) {
	attention := model.NewAttentionWeights()
	attention.Set(model.DecoderLayerKey(1, 2), uniformAttention(t, 2, 2, 2))

	_, err := Heatmap(attention, "decoder_layer9_block2", nil, nil)
	require.ErrorIs(t, err, ErrUnknownLayer)

	_, err = Heatmap(nil, "decoder_layer1_block2", nil, nil)
	require.ErrorIs(t, err, ErrUnknownLayer)
}

func TestHeatmapRejectsBadShape(t *testing.T) {
	attention := model.NewAttentionWeights()
	attention.Set("decoder_layer1_block2", ml.NewTensor(2, 3))

	_, err := Heatmap(attention, "decoder_layer1_block2", nil, nil)
	require.Error(t, err)
}

func TestViridisRange(t *testing.T) {
	require.Equal(t, viridisAnchors[0], viridis(-0.5))
	require.Equal(t, viridisAnchors[len(viridisAnchors)-1], viridis(1.5))

	mid := viridis(0.5)
	require.NotEqual(t, viridisAnchors[0], mid)
}

// labelTokenizer bildet ids auf "t<ID>" ab und zerlegt Saetze an Leerzeichen.
type labelTokenizer struct{ vocab int }

func (l labelTokenizer) Encode(s string) ([]int32, error) {
	ids := make([]int32, 0, 4)
	for i := range strings.Fields(s) {
		ids = append(ids, int32(i))
	}
	return ids, nil
}

func (l labelTokenizer) Decode(ids []int32) (string, error) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("t%d", id)
	}
	return strings.Join(parts, " "), nil
}

func (l labelTokenizer) VocabSize() int { return l.vocab }

func TestFileSinkWritesPNG(t *testing.T) {
	dir := t.TempDir()
	sink := &FileSink{
		Dir:    filepath.Join(dir, "attention"),
		Source: labelTokenizer{vocab: 100},
		Target: labelTokenizer{vocab: 100},
	}

	attention := model.NewAttentionWeights()
	attention.Set(model.DecoderLayerKey(1, 2), uniformAttention(t, 2, 3, 4))

	// Ergebnis enthaelt Start-Sentinel (100) und zwei normale Tokens
	err := sink.Render(attention, "zwei worte", []int32{100, 5, 7}, model.DecoderLayerKey(1, 2))
	require.NoError(t, err)

	entries, err := os.ReadDir(sink.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, strings.HasSuffix(entries[0].Name(), ".png"))

	f, err := os.Open(filepath.Join(sink.Dir, entries[0].Name()))
	require.NoError(t, err)
	defer f.Close()

	_, err = png.Decode(f)
	require.NoError(t, err)
}

func TestFileSinkUnknownLayer(t *testing.T) {
	sink := &FileSink{
		Dir:    t.TempDir(),
		Source: labelTokenizer{vocab: 100},
		Target: labelTokenizer{vocab: 100},
	}

	err := sink.Render(model.NewAttentionWeights(), "hallo", []int32{1}, "decoder_layer4_block2")
	require.ErrorIs(t, err, ErrUnknownLayer)
}
