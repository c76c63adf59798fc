// sink.go - Datei-Sink fuer Attention-Heatmaps
//
// Implementiert translate.AttentionSink: rendert die Gewichte eines
// Layers als PNG in ein Ausgabeverzeichnis. Achsenbeschriftungen
// entstehen aus den Subwords von Quell- und Zielsequenz.
package plot

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/7blacky7/uebersetzer/model"
	"github.com/7blacky7/uebersetzer/tokenizer"
)

// FileSink writes one PNG per rendered translation into Dir.
type FileSink struct {
	Dir    string
	Source tokenizer.TextProcessor
	Target tokenizer.TextProcessor
}

// Render writes the heatmap for layer to a timestamped PNG file.
func (s *FileSink) Render(attention *model.AttentionWeights, sentence string, result []int32, layer string) error {
	xLabels, err := s.keyLabels(sentence)
	if err != nil {
		return err
	}

	yLabels, err := s.queryLabels(result)
	if err != nil {
		return err
	}

	img, err := Heatmap(attention, layer, xLabels, yLabels)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("plot: %w", err)
	}

	path := filepath.Join(s.Dir, fmt.Sprintf("%s-%d.png", layer, time.Now().UnixMilli()))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("plot: encoding %s: %w", path, err)
	}

	slog.Info("rendered attention heatmap", "layer", layer, "path", path)
	return nil
}

// keyLabels are the encoder positions: start sentinel, one subword per
// source token, end sentinel.
func (s *FileSink) keyLabels(sentence string) ([]string, error) {
	ids, err := s.Source.Encode(sentence)
	if err != nil {
		return nil, fmt.Errorf("plot: encoding sentence: %w", err)
	}

	labels := make([]string, 0, len(ids)+2)
	labels = append(labels, "<start>")
	for _, id := range ids {
		token, err := s.Source.Decode([]int32{id})
		if err != nil {
			return nil, fmt.Errorf("plot: decoding source token: %w", err)
		}
		labels = append(labels, token)
	}
	labels = append(labels, "<end>")

	return labels, nil
}

// queryLabels are the decoder positions; sentinel ids keep symbolic names.
func (s *FileSink) queryLabels(result []int32) ([]string, error) {
	vocab := int32(s.Target.VocabSize())

	labels := make([]string, 0, len(result))
	for _, id := range result {
		switch {
		case id == vocab:
			labels = append(labels, "<start>")
		case id == vocab+1:
			labels = append(labels, "<end>")
		case id > vocab+1:
			labels = append(labels, fmt.Sprintf("<%d>", id))
		default:
			token, err := s.Target.Decode([]int32{id})
			if err != nil {
				return nil, fmt.Errorf("plot: decoding target token: %w", err)
			}
			labels = append(labels, token)
		}
	}

	return labels, nil
}
