// mask_test.go - Tests fuer Masken-Erstellung
// Testet Padding-Maske, Look-Ahead-Maske und kombinierte Maske
package ml

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPaddingMask(t *testing.T) {
	seqs := [][]int32{{7, 6, 0, 0, 1}, {1, 2, 3, 0, 0}, {0, 0, 0, 4, 5}}

	mask, err := PaddingMask(seqs)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]int{3, 1, 1, 5}, mask.Shape()); diff != "" {
		t.Errorf("unexpected shape (-want +got):\n%s", diff)
	}

	// Maske ist genau dort 1, wo die Eingabe 0 ist
	for b, seq := range seqs {
		for k, id := range seq {
			want := float32(0)
			if id == 0 {
				want = 1
			}
			if got := mask.At(b, 0, 0, k); got != want {
				t.Errorf("mask[%d][%d] = %v, want %v", b, k, got, want)
			}
		}
	}
}

func TestPaddingMaskAllPad(t *testing.T) {
	// Nur Padding: Maske saturiert zu 1
	mask, err := PaddingMask([][]int32{{0, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range mask.Data() {
		if v != 1 {
			t.Fatalf("all-pad sequence must saturate to 1s, got %v", mask.Data())
		}
	}
}

func TestPaddingMaskInvalid(t *testing.T) {
	if _, err := PaddingMask(nil); err == nil {
		t.Error("expected error for empty batch")
	}
	if _, err := PaddingMask([][]int32{{}}); err == nil {
		t.Error("expected error for zero-length sequence")
	}
	if _, err := PaddingMask([][]int32{{1, 2}, {1}}); err == nil {
		t.Error("expected error for ragged batch")
	}
}

func TestLookAheadMask(t *testing.T) {
	for _, size := range []int{1, 2, 3, 8} {
		mask, err := LookAheadMask(size)
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i < size; i++ {
			for j := 0; j < size; j++ {
				want := float32(0)
				if j > i {
					want = 1
				}
				if got := mask.At(i, j); got != want {
					t.Errorf("size %d: mask[%d][%d] = %v, want %v", size, i, j, got, want)
				}
			}
		}
	}

	if _, err := LookAheadMask(0); err == nil {
		t.Error("expected error for size 0")
	}
}

func TestBuildMasks(t *testing.T) {
	encInput := [][]int32{{9, 8, 0, 7}}
	decInput := [][]int32{{5, 0, 6}}

	encPadding, combined, decPadding, err := BuildMasks(encInput, decInput)
	if err != nil {
		t.Fatal(err)
	}

	// Beide Padding-Masken stammen aus der Encoder-Eingabe
	if !encPadding.Equal(decPadding) {
		t.Error("encoder and cross-attention padding masks must match")
	}
	if diff := cmp.Diff([]int{1, 1, 1, 4}, encPadding.Shape()); diff != "" {
		t.Errorf("unexpected padding shape (-want +got):\n%s", diff)
	}

	// Kombinierte Maske = max(Decoder-Padding, Look-Ahead)
	if diff := cmp.Diff([]int{1, 1, 3, 3}, combined.Shape()); diff != "" {
		t.Errorf("unexpected combined shape (-want +got):\n%s", diff)
	}

	targetPadding, err := PaddingMask(decInput)
	if err != nil {
		t.Fatal(err)
	}
	lookAhead, err := LookAheadMask(3)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := max(targetPadding.At(0, 0, 0, j), lookAhead.At(i, j))
			if got := combined.At(0, 0, i, j); got != want {
				t.Errorf("combined[%d][%d] = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestBuildMasksInvalid(t *testing.T) {
	if _, _, _, err := BuildMasks(nil, [][]int32{{1}}); err == nil {
		t.Error("expected error for empty encoder input")
	}
	if _, _, _, err := BuildMasks([][]int32{{1}}, [][]int32{{}}); err == nil {
		t.Error("expected error for empty decoder input")
	}
}
