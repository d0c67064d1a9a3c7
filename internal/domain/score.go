package domain

import (
	"time"

	"github.com/google/uuid"
)

// FactorsVersion is the current schema version of the stored factors payload.
// Older rows are normalized on read; unknown future versions are preserved
// but exposed with zeroed readings.
const FactorsVersion = 2

// SourceReading is one data source's contribution to a computed score.
type SourceReading struct {
	Score     int
	Available bool
	Weight    float64 // applied weight after redistribution; 0 when unavailable
}

// ScoreFactors is the full breakdown behind a stored risk score.
type ScoreFactors struct {
	Version          int
	Sources          map[DataSource]SourceReading
	TrendModifier    int
	SeverityModifier int
	AvailableSources int
}

// Reading returns the reading for a source, zero-valued when absent.
func (f ScoreFactors) Reading(s DataSource) SourceReading {
	return f.Sources[s]
}

var sourceTitles = map[DataSource]string{
	DataSourceVelocity:   "Task Velocity",
	DataSourceMood:       "Mood",
	DataSourceWorkHours:  "Work Patterns",
	DataSourceBreaks:     "Break Frequency",
	DataSourceCommits:    "Commit Activity",
	DataSourceCodingTime: "Coding Time",
}

// Describe renders a human-readable label for a source reading.
func (f ScoreFactors) Describe(s DataSource) string {
	state := "No Data"
	if f.Reading(s).Available {
		state = "Active"
	}
	return sourceTitles[s] + " (" + state + ")"
}

// BurnoutScore is one user's computed risk for a single UTC calendar day.
type BurnoutScore struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Day              time.Time // truncated to a UTC date
	RiskScore        int
	Factors          ScoreFactors
	NotificationSent bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Band returns the presentation band for the stored score.
func (s *BurnoutScore) Band() RiskBand {
	return BandForScore(s.RiskScore)
}
