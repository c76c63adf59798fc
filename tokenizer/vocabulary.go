// vocabulary.go - Vokabular mit Werten, Merges und lazy Reverse-Maps
package tokenizer

import "sync"

// Vocabulary holds the subword values and BPE merge ranks. Lookup maps are
// built lazily on first use and are safe for concurrent readers.
type Vocabulary struct {
	Values []string
	Merges []string

	valuesOnce sync.Once
	values     map[string]int32

	mergeOnce sync.Once
	merge     map[string]int32
}

// Encode returns the id of a subword value, or -1 if it is not in the
// vocabulary.
func (v *Vocabulary) Encode(s string) int32 {
	v.valuesOnce.Do(func() {
		v.values = make(map[string]int32, len(v.Values))
		for i, value := range v.Values {
			v.values[value] = int32(i)
		}
	})

	if id, ok := v.values[s]; ok {
		return id
	}

	return -1
}

// Decode returns the subword value for an id, or "" if out of range.
func (v *Vocabulary) Decode(id int32) string {
	if id < 0 || int(id) >= len(v.Values) {
		return ""
	}

	return v.Values[id]
}

// Merge returns the rank of the merge "left right", or -1 if the pair
// never merges.
func (v *Vocabulary) Merge(left, right string) int {
	v.mergeOnce.Do(func() {
		v.merge = make(map[string]int32, len(v.Merges))
		for i, merge := range v.Merges {
			v.merge[merge] = int32(i)
		}
	})

	if rank, ok := v.merge[left+" "+right]; ok {
		return int(rank)
	}

	return -1
}

// Size returns the number of learned subwords. Sentinel ids start at Size().
func (v *Vocabulary) Size() int {
	return len(v.Values)
}
