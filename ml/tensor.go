// tensor.go - Dichter float32-Tensor als Datentraeger fuer Masken und Logits
//
// Dieses Modul enthaelt:
// - Tensor: n-dimensionaler float32-Tensor (Shape + flache Daten)
// - NewTensor/FromSlice: Konstruktoren
// - At/Set/Row: Element- und Zeilenzugriff
// - Maximum: elementweises Maximum zweier Tensoren
package ml

import (
	"errors"
	"fmt"
	"slices"
)

var ErrShapeMismatch = errors.New("ml: tensor shapes do not match")

// Tensor is a dense float32 tensor in row-major layout. It carries masks,
// logits and attention weights between the decode loop and the model.
type Tensor struct {
	shape []int
	data  []float32
}

// NewTensor returns a zero-filled tensor with the given shape.
// Every dimension must be positive.
func NewTensor(shape ...int) *Tensor {
	n := 1
	for _, d := range shape {
		if d <= 0 {
			panic(fmt.Sprintf("ml: invalid tensor dimension %d", d))
		}
		n *= d
	}

	return &Tensor{shape: slices.Clone(shape), data: make([]float32, n)}
}

// FromSlice wraps data in a tensor of the given shape. The data length must
// match the shape volume exactly.
func FromSlice(data []float32, shape ...int) (*Tensor, error) {
	n := 1
	for _, d := range shape {
		if d <= 0 {
			return nil, fmt.Errorf("%w: invalid dimension %d", ErrShapeMismatch, d)
		}
		n *= d
	}

	if len(data) != n {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShapeMismatch, len(data), shape)
	}

	return &Tensor{shape: slices.Clone(shape), data: data}, nil
}

// Shape returns a copy of the tensor's dimensions.
func (t *Tensor) Shape() []int {
	return slices.Clone(t.shape)
}

// Dim returns the size of dimension i.
func (t *Tensor) Dim(i int) int {
	return t.shape[i]
}

// Size returns the number of elements.
func (t *Tensor) Size() int {
	return len(t.data)
}

// Data returns the underlying flat data slice.
func (t *Tensor) Data() []float32 {
	return t.data
}

func (t *Tensor) offset(idx []int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("ml: %d indices for %d-d tensor", len(idx), len(t.shape)))
	}

	off := 0
	for i, x := range idx {
		if x < 0 || x >= t.shape[i] {
			panic(fmt.Sprintf("ml: index %d out of range for dimension %d of size %d", x, i, t.shape[i]))
		}
		off = off*t.shape[i] + x
	}

	return off
}

// At returns the element at the given indices.
func (t *Tensor) At(idx ...int) float32 {
	return t.data[t.offset(idx)]
}

// Set stores v at the given indices.
func (t *Tensor) Set(v float32, idx ...int) {
	t.data[t.offset(idx)] = v
}

// Row returns the innermost vector selected by the leading indices,
// e.g. logits.Row(0, seqLen-1) for the last-position distribution.
// The returned slice aliases the tensor data.
func (t *Tensor) Row(leading ...int) []float32 {
	if len(leading) != len(t.shape)-1 {
		panic(fmt.Sprintf("ml: %d leading indices for %d-d tensor", len(leading), len(t.shape)))
	}

	last := t.shape[len(t.shape)-1]
	off := t.offset(append(slices.Clone(leading), 0))
	return t.data[off : off+last]
}

// Maximum returns the element-wise maximum of two tensors of equal shape.
func Maximum(a, b *Tensor) (*Tensor, error) {
	if !slices.Equal(a.shape, b.shape) {
		return nil, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.shape, b.shape)
	}

	out := NewTensor(a.shape...)
	for i := range a.data {
		out.data[i] = max(a.data[i], b.data[i])
	}

	return out, nil
}

// Equal reports whether two tensors have identical shape and data.
func (t *Tensor) Equal(o *Tensor) bool {
	return slices.Equal(t.shape, o.shape) && slices.Equal(t.data, o.data)
}
