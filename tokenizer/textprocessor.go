// textprocessor.go - TextProcessor-Interface fuer Subword-Tokenisierung
//
// Zwei unabhaengige Instanzen werden benoetigt: eine fuer die Quell-,
// eine fuer die Zielsprache. Sentinel-Tokens (vocab_size, vocab_size+1)
// liegen ausserhalb des gelernten Vokabulars und werden nicht vom
// Tokenizer, sondern von der Decode-Schleife verwaltet.
package tokenizer

import "errors"

var (
	ErrInvalidID    = errors.New("tokenizer: token id outside vocabulary")
	ErrEmptyVocab   = errors.New("tokenizer: empty vocabulary")
	ErrUnknownType  = errors.New("tokenizer: unknown tokenizer type")
)

// TextProcessor converts between text and subword token ids.
type TextProcessor interface {
	Encode(s string) ([]int32, error)
	Decode(ids []int32) (string, error)
	VocabSize() int
}
