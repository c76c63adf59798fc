// sample_test.go - Tests fuer Greedy-Sampling
package sample

import "testing"

func TestGreedy(t *testing.T) {
	s := Greedy()

	cases := []struct {
		logits []float64
		want   float64
	}{
		{[]float64{0.1, 0.9, 0.3}, 1},
		{[]float64{5, -1, 2, 4.9}, 0},
		{[]float64{-3, -2, -1}, 2},
	}

	for _, tt := range cases {
		got, err := s.Sample(tt.logits)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("Sample(%v) = %v, want [%v]", tt.logits, got, tt.want)
		}
	}
}

func TestGreedyDeterministic(t *testing.T) {
	s := Greedy()
	logits := []float64{0.2, 0.7, 0.7, 0.1}

	first, err := s.Sample(logits)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		got, err := s.Sample(logits)
		if err != nil {
			t.Fatal(err)
		}
		if got[0] != first[0] {
			t.Fatalf("greedy sampling must be deterministic: %v vs %v", got, first)
		}
	}
}
