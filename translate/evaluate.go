// evaluate.go - Autoregressive Greedy-Dekodierung
//
// Kernalgorithmus: die Quellsequenz wird einmal kodiert, danach waechst
// die Decoder-Eingabe Token fuer Token. Jeder Schritt baut die Masken
// neu (die Decoder-Form aendert sich), ruft das Modell im Inferenzmodus
// und waehlt per Argmax das naechste Token. Schritt i+1 haengt vom
// Ergebnis von Schritt i ab; die Schleife ist inhaerent sequentiell.
package translate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/7blacky7/uebersetzer/logutil"
	"github.com/7blacky7/uebersetzer/ml"
	"github.com/7blacky7/uebersetzer/model"
	"github.com/7blacky7/uebersetzer/sample"
	"github.com/7blacky7/uebersetzer/tokenizer"
)

var (
	ErrEmptySentence    = errors.New("translate: empty source sentence")
	ErrInvalidMaxLength = errors.New("translate: max length must be positive")
)

// Evaluate runs greedy autoregressive decoding for one source sentence and
// returns the generated target ids (including the leading start sentinel)
// together with the attention weights of the final model invocation.
//
// Sentinel ids sit directly above the learned vocabulary: start is
// vocab_size, end is vocab_size+1, on both the source and the target side.
// Decoding stops when the model predicts the target end sentinel or after
// maxLength generated tokens, whichever comes first; running into the
// length bound is a defined truncation outcome, not an error. The result
// length is therefore between 1 and maxLength+1 ids.
//
// Model errors propagate unwrapped in meaning: the loop performs no
// retries, since a deterministic inference call would fail identically.
// Batch size is fixed at 1 by construction.
func Evaluate(sentence string, source, target tokenizer.TextProcessor, maxLength int, m model.Model) ([]int32, *model.AttentionWeights, error) {
	if strings.TrimSpace(sentence) == "" {
		return nil, nil, ErrEmptySentence
	}
	if maxLength <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidMaxLength, maxLength)
	}

	ids, err := source.Encode(sentence)
	if err != nil {
		return nil, nil, fmt.Errorf("translate: encoding source: %w", err)
	}

	srcStart := int32(source.VocabSize())
	srcEnd := srcStart + 1

	encoderInput := make([]int32, 0, len(ids)+2)
	encoderInput = append(encoderInput, srcStart)
	encoderInput = append(encoderInput, ids...)
	encoderInput = append(encoderInput, srcEnd)

	tgtStart := int32(target.VocabSize())
	tgtEnd := tgtStart + 1

	// the first token fed to the decoder is the target start sentinel
	output := []int32{tgtStart}

	var attention *model.AttentionWeights
	for i := 0; i < maxLength; i++ {
		encPadding, combined, decPadding, err := ml.BuildMasks([][]int32{encoderInput}, [][]int32{output})
		if err != nil {
			return nil, nil, err
		}

		logits, attn, err := m.Forward(encoderInput, output, false, encPadding, combined, decPadding)
		if err != nil {
			return nil, nil, fmt.Errorf("translate: model invocation at step %d: %w", i, err)
		}
		attention = attn

		// select the prediction at the last sequence position only
		last := logits.Row(0, logits.Dim(1)-1)
		f64s := make([]float64, len(last))
		for j, v := range last {
			f64s[j] = float64(v)
		}

		picked, err := sample.Greedy().Sample(f64s)
		if err != nil {
			return nil, nil, fmt.Errorf("translate: sampling at step %d: %w", i, err)
		}

		predicted := int32(picked[0])
		if predicted == tgtEnd {
			logutil.Trace("decode hit end sentinel", "step", i, "output", output)
			return output, attention, nil
		}

		output = append(output, predicted)
	}

	// length bound reached: soft truncation, best-effort output
	logutil.Trace("decode truncated", "maxLength", maxLength, "output", output)
	return output, attention, nil
}
