// file.go - Laden und Speichern serialisierter Tokenizer
//
// Format: eine JSON-Datei mit Typ, Pretokenizer-Patterns, Vokabular
// und Merges. Quell- und Zieltokenizer werden als getrennte Dateien
// abgelegt (tokenizer_source_path / tokenizer_target_path).
package tokenizer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

type tokenizerFile struct {
	Type          string   `json:"type"`
	Pretokenizers []string `json:"pretokenizers,omitempty"`
	Values        []string `json:"values"`
	Merges        []string `json:"merges,omitempty"`
}

// Load reads a serialized tokenizer from path.
func Load(path string) (TextProcessor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: %w", err)
	}

	var f tokenizerFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("tokenizer: parsing %s: %w", path, err)
	}

	if len(f.Values) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyVocab, path)
	}

	switch f.Type {
	case "", "bpe":
		slog.Debug("loaded tokenizer", "path", path, "values", len(f.Values), "merges", len(f.Merges))
		return NewBytePairEncoding(&Vocabulary{
			Values: f.Values,
			Merges: f.Merges,
		}, f.Pretokenizers...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, f.Type)
	}
}

// Save writes a byte-pair tokenizer to path.
func Save(path string, bpe *BytePairEncoding) error {
	var patterns []string
	for _, re := range bpe.regexps {
		patterns = append(patterns, re.String())
	}

	data, err := json.MarshalIndent(tokenizerFile{
		Type:          "bpe",
		Pretokenizers: patterns,
		Values:        bpe.vocab.Values,
		Merges:        bpe.vocab.Merges,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("tokenizer: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
