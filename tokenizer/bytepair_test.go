// bytepair_test.go - Tests fuer BPE-Encoding, Decoding und Persistenz
package tokenizer

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestEncodeShortCircuit(t *testing.T) {
	// "Ġ" ist die Byte-Ebene-Abbildung des Leerzeichens (0x20 -> 0x120)
	bpe := NewBytePairEncoding(&Vocabulary{
		Values: []string{"hello", "Ġworld"},
	})

	ids, err := bpe.Encode("hello world")
	require.NoError(t, err)
	require.Equal(t, []int32{0, 1}, ids)

	s, err := bpe.Decode(ids)
	require.NoError(t, err)
	require.Equal(t, "hello world", s)
}

func TestEncodeMerges(t *testing.T) {
	bpe := NewBytePairEncoding(&Vocabulary{
		Values: []string{"a", "b", "c", "ab"},
		Merges: []string{"a b"},
	})

	ids, err := bpe.Encode("abc")
	require.NoError(t, err)

	// "a b" wird gemerged, "ab c" nicht
	if diff := cmp.Diff([]int32{3, 2}, ids); diff != "" {
		t.Errorf("unexpected ids (-want +got):\n%s", diff)
	}

	s, err := bpe.Decode(ids)
	require.NoError(t, err)
	require.Equal(t, "abc", s)
}

func TestDecodeInvalidID(t *testing.T) {
	bpe := NewBytePairEncoding(&Vocabulary{Values: []string{"a"}})

	for _, ids := range [][]int32{{-1}, {1}, {0, 99}} {
		if _, err := bpe.Decode(ids); err == nil {
			t.Errorf("Decode(%v): expected error for malformed id", ids)
		}
	}
}

func TestVocabSize(t *testing.T) {
	bpe := NewBytePairEncoding(&Vocabulary{Values: []string{"a", "b", "c"}})
	require.Equal(t, 3, bpe.VocabSize())
}

func TestVocabularyMerge(t *testing.T) {
	v := &Vocabulary{Merges: []string{"a b", "ab c"}}

	if got := v.Merge("a", "b"); got != 0 {
		t.Errorf("Merge(a,b) = %d, want 0", got)
	}
	if got := v.Merge("ab", "c"); got != 1 {
		t.Errorf("Merge(ab,c) = %d, want 1", got)
	}
	if got := v.Merge("b", "a"); got != -1 {
		t.Errorf("Merge(b,a) = %d, want -1", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokenizer_source.json")

	bpe := NewBytePairEncoding(&Vocabulary{
		Values: []string{"a", "b", "c", "ab"},
		Merges: []string{"a b"},
	})
	require.NoError(t, Save(path, bpe))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, loaded.VocabSize())

	want, err := bpe.Encode("abc")
	require.NoError(t, err)
	got, err := loaded.Encode("abc")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
