// evaluate_test.go - Tests fuer die Decode-Schleife
// Stub-Modelle decken Ende-Sentinel, Truncation und Determinismus ab
package translate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/7blacky7/uebersetzer/ml"
	"github.com/7blacky7/uebersetzer/model"
)

// stubTokenizer liefert feste IDs und zeichnet Decode-Aufrufe auf
type stubTokenizer struct {
	vocab   int
	ids     []int32
	decoded [][]int32
}

func (s *stubTokenizer) Encode(string) ([]int32, error) {
	return s.ids, nil
}

func (s *stubTokenizer) Decode(ids []int32) (string, error) {
	s.decoded = append(s.decoded, ids)
	return "ein satz", nil
}

func (s *stubTokenizer) VocabSize() int {
	return s.vocab
}

// scriptModel gibt pro Schritt das naechste Token aus dem Skript aus
type scriptModel struct {
	vocab    int
	script   []int32
	calls    int
	lastAttn *model.AttentionWeights
}

func (m *scriptModel) Forward(encIDs, decIDs []int32, training bool, encPadding, combined, decPadding *ml.Tensor) (*ml.Tensor, *model.AttentionWeights, error) {
	m.calls++

	logits := ml.NewTensor(1, len(decIDs), m.vocab+2)
	next := m.script[min(len(decIDs)-1, len(m.script)-1)]
	logits.Set(1, 0, len(decIDs)-1, int(next))

	attn := model.NewAttentionWeights()
	attn.Set(model.DecoderLayerKey(1, 2), ml.NewTensor(1, 2, len(decIDs), len(encIDs)))
	m.lastAttn = attn

	return logits, attn, nil
}

func TestEvaluateStopsOnEndSentinel(t *testing.T) {
	source := &stubTokenizer{vocab: 10, ids: []int32{3, 4}}
	target := &stubTokenizer{vocab: 10}

	// Modell sagt sofort das Ende-Sentinel (10+1) voraus
	m := &scriptModel{vocab: 10, script: []int32{11}}

	result, attn, err := Evaluate("hello", source, target, 20, m)
	require.NoError(t, err)

	// Nur das Start-Sentinel, eine einzige Modell-Invokation
	require.Equal(t, []int32{10}, result)
	require.Equal(t, 1, m.calls)
	require.NotNil(t, attn)
}

func TestEvaluateTruncatesAtMaxLength(t *testing.T) {
	source := &stubTokenizer{vocab: 10, ids: []int32{3}}
	target := &stubTokenizer{vocab: 10}

	// Modell erzeugt nie das Ende-Sentinel
	m := &scriptModel{vocab: 10, script: []int32{5, 5, 5, 5, 5, 5, 5, 5}}

	result, attn, err := Evaluate("hello", source, target, 5, m)
	require.NoError(t, err)

	// Start-Sentinel + genau 5 generierte Tokens
	require.Len(t, result, 6)
	require.Equal(t, 5, m.calls)
	require.NotNil(t, attn)
}

func TestEvaluateDeterministic(t *testing.T) {
	source := &stubTokenizer{vocab: 10, ids: []int32{1, 2, 3}}
	target := &stubTokenizer{vocab: 10}
	script := []int32{4, 7, 2, 9, 1, 6}

	first, _, err := Evaluate("hallo welt", source, target, 6, &scriptModel{vocab: 10, script: script})
	require.NoError(t, err)

	second, _, err := Evaluate("hallo welt", source, target, 6, &scriptModel{vocab: 10, script: script})
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("identical inputs must decode identically (-first +second):\n%s", diff)
	}
}

func TestEvaluateSentinelFraming(t *testing.T) {
	source := &stubTokenizer{vocab: 10, ids: []int32{3, 4}}
	target := &stubTokenizer{vocab: 10}

	var gotEnc []int32
	m := &inspectModel{vocab: 10, inspect: func(encIDs, decIDs []int32, training bool, encPadding, combined, decPadding *ml.Tensor) {
		gotEnc = encIDs

		if training {
			t.Error("decode loop must invoke the model in inference mode")
		}

		// Masken passen zur aktuellen Encoder-/Decoder-Form
		if diff := cmp.Diff([]int{1, 1, 1, len(encIDs)}, encPadding.Shape()); diff != "" {
			t.Errorf("unexpected encoder mask shape (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int{1, 1, len(decIDs), len(decIDs)}, combined.Shape()); diff != "" {
			t.Errorf("unexpected combined mask shape (-want +got):\n%s", diff)
		}
	}}

	_, _, err := Evaluate("hello", source, target, 3, m)
	require.NoError(t, err)

	// Quellsequenz ist mit Start-/Ende-Sentinel gerahmt
	require.Equal(t, []int32{10, 3, 4, 11}, gotEnc)
}

// inspectModel reicht jede Invokation an eine Pruef-Funktion weiter
type inspectModel struct {
	vocab   int
	inspect func(encIDs, decIDs []int32, training bool, encPadding, combined, decPadding *ml.Tensor)
}

func (m *inspectModel) Forward(encIDs, decIDs []int32, training bool, encPadding, combined, decPadding *ml.Tensor) (*ml.Tensor, *model.AttentionWeights, error) {
	if m.inspect != nil {
		m.inspect(encIDs, decIDs, training, encPadding, combined, decPadding)
	}

	logits := ml.NewTensor(1, len(decIDs), m.vocab+2)
	logits.Set(1, 0, len(decIDs)-1, 5)
	return logits, model.NewAttentionWeights(), nil
}

type failingModel struct{}

var errBoom = errors.New("shape mismatch")

func (failingModel) Forward(encIDs, decIDs []int32, training bool, encPadding, combined, decPadding *ml.Tensor) (*ml.Tensor, *model.AttentionWeights, error) {
	return nil, nil, errBoom
}

func TestEvaluateErrors(t *testing.T) {
	source := &stubTokenizer{vocab: 10, ids: []int32{3}}
	target := &stubTokenizer{vocab: 10}
	m := &scriptModel{vocab: 10, script: []int32{11}}

	_, _, err := Evaluate("", source, target, 5, m)
	require.ErrorIs(t, err, ErrEmptySentence)

	_, _, err = Evaluate("   ", source, target, 5, m)
	require.ErrorIs(t, err, ErrEmptySentence)

	_, _, err = Evaluate("hello", source, target, 0, m)
	require.ErrorIs(t, err, ErrInvalidMaxLength)

	// Modellfehler werden weitergereicht, kein Retry
	_, _, err = Evaluate("hello", source, target, 5, failingModel{})
	require.ErrorIs(t, err, errBoom)
}
