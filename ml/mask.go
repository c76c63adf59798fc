// mask.go - Masken-Erstellung fuer Attention
//
// Dieses Modul enthaelt:
// - PaddingMask: Maskiert Padding-Positionen (Token-ID 0)
// - LookAheadMask: Maskiert zukuenftige Positionen im Decoder
// - BuildMasks: Erstellt die drei Masken fuer einen Forward Pass
//
// Konvention: 1 bedeutet "darf nicht attendieren", 0 bedeutet frei.
package ml

import (
	"errors"
	"fmt"
)

// PadID is the reserved padding token id. Positions holding it are
// blocked for attention.
const PadID int32 = 0

var ErrEmptySequence = errors.New("ml: empty token sequence")

// PaddingMask builds a mask of shape (batch, 1, 1, len) with 1 wherever the
// input holds the padding id. The two singleton dimensions broadcast across
// attention heads and query positions. All sequences in the batch must have
// the same length.
func PaddingMask(seqs [][]int32) (*Tensor, error) {
	if len(seqs) == 0 || len(seqs[0]) == 0 {
		return nil, ErrEmptySequence
	}

	n := len(seqs[0])
	for _, seq := range seqs[1:] {
		if len(seq) != n {
			return nil, fmt.Errorf("%w: ragged batch, %d vs %d", ErrShapeMismatch, len(seq), n)
		}
	}

	mask := NewTensor(len(seqs), 1, 1, n)
	for b, seq := range seqs {
		for k, id := range seq {
			if id == PadID {
				mask.Set(1, b, 0, 0, k)
			}
		}
	}

	return mask, nil
}

// LookAheadMask builds a (size, size) mask with 1 strictly above the
// diagonal: query position i may attend to key positions <= i only.
func LookAheadMask(size int) (*Tensor, error) {
	if size <= 0 {
		return nil, ErrEmptySequence
	}

	mask := NewTensor(size, size)
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			mask.Set(1, i, j)
		}
	}

	return mask, nil
}

// BuildMasks constructs the three masks for one encoder/decoder forward pass:
//
//   - encPadding: encoder self-attention padding mask, from encInput
//   - combined: decoder self-attention mask, element-wise maximum of the
//     decoder padding mask and the look-ahead mask, shape (batch, 1, t, t)
//   - decPadding: cross-attention padding mask, also from encInput, applied
//     when the decoder attends to encoder outputs
//
// The decoder input grows during autoregressive decoding, so masks are
// rebuilt every step. A sequence consisting only of padding saturates its
// mask rows to 1; attention over such a row is implementation-defined.
func BuildMasks(encInput, decInput [][]int32) (encPadding, combined, decPadding *Tensor, err error) {
	encPadding, err = PaddingMask(encInput)
	if err != nil {
		return nil, nil, nil, err
	}

	decPadding, err = PaddingMask(encInput)
	if err != nil {
		return nil, nil, nil, err
	}

	targetPadding, err := PaddingMask(decInput)
	if err != nil {
		return nil, nil, nil, err
	}

	t := len(decInput[0])
	lookAhead, err := LookAheadMask(t)
	if err != nil {
		return nil, nil, nil, err
	}

	// Broadcast max over (b,1,1,t) and (t,t) into (b,1,t,t).
	combined = NewTensor(len(decInput), 1, t, t)
	for b := range decInput {
		for i := 0; i < t; i++ {
			for j := 0; j < t; j++ {
				combined.Set(max(targetPadding.At(b, 0, 0, j), lookAhead.At(i, j)), b, 0, i, j)
			}
		}
	}

	return encPadding, combined, decPadding, nil
}
