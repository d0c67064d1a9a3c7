package burnout

import (
	"testing"

	"github.com/heartmarshall/touchgrass-backend/internal/domain"
)

func moodEntries(labels ...string) []domain.MoodEntry {
	entries := make([]domain.MoodEntry, len(labels))
	for i, l := range labels {
		entries[i] = domain.MoodEntry{Label: l}
	}
	return entries
}

func TestCalculateMoodRisk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		labels        []string
		wantScore     int
		wantAvailable bool
	}{
		{"no entries", nil, 0, false},
		{"mixed week", []string{"happy", "content", "neutral", "tired"}, 42, true},
		{"all neutral", []string{"neutral", "neutral"}, 50, true},
		{"all very happy", []string{"very happy", "very happy"}, 0, true},
		{"all angry clamps at 100", []string{"angry", "angry", "angry"}, 100, true},
		{"unknown labels read as neutral", []string{"meh", "whatever"}, 50, true},
		{"case and spacing normalized", []string{"  Stressed ", "FRUSTRATED"}, 83, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			score, available := calculateMoodRisk(moodEntries(tt.labels...))
			if available != tt.wantAvailable {
				t.Fatalf("available = %v, want %v", available, tt.wantAvailable)
			}
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
		})
	}
}
