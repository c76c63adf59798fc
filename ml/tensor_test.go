// tensor_test.go - Tests fuer den Tensor-Datentyp
package ml

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTensorAccess(t *testing.T) {
	x := NewTensor(2, 3)
	x.Set(1.5, 0, 1)
	x.Set(-2, 1, 2)

	if got := x.At(0, 1); got != 1.5 {
		t.Errorf("At(0,1) = %v, want 1.5", got)
	}
	if got := x.At(1, 2); got != -2 {
		t.Errorf("At(1,2) = %v, want -2", got)
	}
	if got := x.At(0, 0); got != 0 {
		t.Errorf("At(0,0) = %v, want 0", got)
	}
	if x.Size() != 6 {
		t.Errorf("Size() = %d, want 6", x.Size())
	}
}

func TestFromSlice(t *testing.T) {
	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	if got := x.At(0, 1, 2); got != 6 {
		t.Errorf("At(0,1,2) = %v, want 6", got)
	}

	if _, err := FromSlice([]float32{1, 2}, 3); err == nil {
		t.Error("expected shape mismatch error")
	}
}

func TestRow(t *testing.T) {
	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	// Letzte Position der Sequenzdimension
	if diff := cmp.Diff([]float32{4, 5, 6}, x.Row(0, 1)); diff != "" {
		t.Errorf("unexpected row (-want +got):\n%s", diff)
	}
}

func TestMaximum(t *testing.T) {
	a, _ := FromSlice([]float32{0, 1, 0, 1}, 2, 2)
	b, _ := FromSlice([]float32{1, 0, 0, 1}, 2, 2)

	got, err := Maximum(a, b)
	if err != nil {
		t.Fatal(err)
	}

	want, _ := FromSlice([]float32{1, 1, 0, 1}, 2, 2)
	if !got.Equal(want) {
		t.Errorf("Maximum = %v, want %v", got.Data(), want.Data())
	}

	c := NewTensor(3)
	if _, err := Maximum(a, c); err == nil {
		t.Error("expected shape mismatch error")
	}
}
