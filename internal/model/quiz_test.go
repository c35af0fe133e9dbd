package model

import (
	"testing"
	"time"
)

func TestQuizState(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	quiz := &Quiz{Start: start, Duration: 30}

	cases := []struct {
		name string
		now  time.Time
		want QuizState
	}{
		{"well before start", start.Add(-time.Hour), QuizScheduled},
		{"one second before start", start.Add(-time.Second), QuizScheduled},
		{"exactly at start", start, QuizLive},
		{"midway", start.Add(15 * time.Minute), QuizLive},
		{"one second before end", start.Add(30*time.Minute - time.Second), QuizLive},
		{"exactly at end", start.Add(30 * time.Minute), QuizExpired},
		{"long after end", start.Add(24 * time.Hour), QuizExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := quiz.State(tc.now); got != tc.want {
				t.Fatalf("State(%v) = %q, want %q", tc.now, got, tc.want)
			}
		})
	}
}

func TestQuizEndsAt(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	quiz := &Quiz{Start: start, Duration: 45}

	want := start.Add(45 * time.Minute)
	if got := quiz.EndsAt(); !got.Equal(want) {
		t.Fatalf("EndsAt() = %v, want %v", got, want)
	}
}

func TestQuizSubmittable(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	live := start.Add(10 * time.Minute)
	expired := start.Add(2 * time.Hour)
	scheduled := start.Add(-time.Hour)

	cases := []struct {
		name               string
		now                time.Time
		acceptingAnswers   bool
		acceptAfterExpired bool
		want               bool
	}{
		{"live and accepting", live, true, false, true},
		{"live but toggled off", live, false, false, false},
		{"scheduled never accepts", scheduled, true, true, false},
		{"expired without grace", expired, true, false, false},
		{"expired with grace", expired, true, true, true},
		{"expired with grace but toggled off", expired, false, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quiz := &Quiz{
				Start:              start,
				Duration:           30,
				AcceptingAnswers:   tc.acceptingAnswers,
				AcceptAfterExpired: tc.acceptAfterExpired,
			}
			if got := quiz.Submittable(tc.now); got != tc.want {
				t.Fatalf("Submittable(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}
