// translate.go - Uebersetzung mit optionalem Attention-Report
//
// Dieses Modul enthaelt:
// - AttentionSink: Kollaborateur fuer Heatmap-Rendering
// - Translator: buendelt Tokenizer, Modell und Laengen-Obergrenze
// - Translate: Dekodieren, Sentinels entfernen, Text erzeugen
package translate

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/7blacky7/uebersetzer/model"
	"github.com/7blacky7/uebersetzer/tokenizer"
)

// AttentionSink renders attention weights for one translation. Rendering
// happens as a side effect; implementations decide the output medium.
type AttentionSink interface {
	Render(attention *model.AttentionWeights, sentence string, result []int32, layer string) error
}

// Translator wraps the decode loop with everything a translation needs.
// Model and tokenizers are passed in explicitly so the translator is
// reentrant and testable against stubs; it holds no ambient state.
type Translator struct {
	Source    tokenizer.TextProcessor
	Target    tokenizer.TextProcessor
	Model     model.Model
	MaxLength int

	// Sink receives attention weights when a plot layer is requested.
	// Optional; a nil sink or an empty layer skips rendering.
	Sink AttentionSink
}

// Translate decodes one sentence into the target language. The start
// sentinel and any ids at or beyond the target vocabulary size are
// stripped before text decoding, so sentinels never leak into the output.
// When plotLayer names an attention layer and a sink is configured, the
// final attention weights are forwarded for rendering.
func (t *Translator) Translate(sentence, plotLayer string) (string, error) {
	started := time.Now()

	result, attention, err := Evaluate(sentence, t.Source, t.Target, t.MaxLength, t.Model)
	if err != nil {
		return "", err
	}

	kept := make([]int32, 0, len(result))
	for _, id := range result {
		if int(id) < t.Target.VocabSize() {
			kept = append(kept, id)
		}
	}

	translated, err := t.Target.Decode(kept)
	if err != nil {
		return "", fmt.Errorf("translate: decoding result: %w", err)
	}

	slog.Debug("translated", "tokens", len(result), "duration", time.Since(started))

	if plotLayer != "" && t.Sink != nil {
		if err := t.Sink.Render(attention, sentence, result, plotLayer); err != nil {
			return "", fmt.Errorf("translate: rendering attention: %w", err)
		}
	}

	return translated, nil
}
