package service

import "testing"

func TestComputeQuizScore(t *testing.T) {
	cases := []struct {
		name              string
		correctTotal      int
		correctSelected   int
		incorrectSelected int
		want              float64
	}{
		{"full marks", 4, 4, 0, 100},
		{"nothing selected", 4, 0, 0, 0},
		{"half right one wrong", 4, 2, 1, 49.9},
		{"third rounds to two decimals", 3, 1, 0, 33.33},
		{"two thirds", 3, 2, 0, 66.67},
		{"penalty only", 5, 0, 3, 0},
		{"penalty drags below zero", 1, 0, 20, 0},
		{"small penalty survives", 2, 2, 1, 99.9},
		{"no correct answers and clean sheet", 0, 0, 0, 100},
		{"no correct answers but wrong picks", 0, 0, 2, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeQuizScore(tc.correctTotal, tc.correctSelected, tc.incorrectSelected)
			if got != tc.want {
				t.Fatalf("ComputeQuizScore(%d, %d, %d) = %v, want %v",
					tc.correctTotal, tc.correctSelected, tc.incorrectSelected, got, tc.want)
			}
		})
	}
}

func TestComputeQuizScoreNeverNegative(t *testing.T) {
	for incorrect := 0; incorrect <= 2000; incorrect += 50 {
		got := ComputeQuizScore(10, 0, incorrect)
		if got < 0 {
			t.Fatalf("score went negative with %d incorrect selections: %v", incorrect, got)
		}
	}
}

func TestComputeQuizScoreUpperBound(t *testing.T) {
	if got := ComputeQuizScore(7, 7, 0); got != 100 {
		t.Fatalf("expected 100 for all correct, got %v", got)
	}
}
