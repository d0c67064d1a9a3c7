package domain

import "strings"

// DataSource identifies one input signal of the burnout risk model.
type DataSource string

const (
	DataSourceVelocity   DataSource = "VELOCITY"
	DataSourceMood       DataSource = "MOOD"
	DataSourceWorkHours  DataSource = "WORK_HOURS"
	DataSourceBreaks     DataSource = "BREAKS"
	DataSourceCommits    DataSource = "COMMITS"
	DataSourceCodingTime DataSource = "CODING_TIME"
)

func (s DataSource) String() string { return string(s) }

func (s DataSource) IsValid() bool {
	switch s {
	case DataSourceVelocity, DataSourceMood, DataSourceWorkHours,
		DataSourceBreaks, DataSourceCommits, DataSourceCodingTime:
		return true
	}
	return false
}

// AllDataSources lists every source in weighting order.
func AllDataSources() []DataSource {
	return []DataSource{
		DataSourceVelocity,
		DataSourceMood,
		DataSourceWorkHours,
		DataSourceBreaks,
		DataSourceCommits,
		DataSourceCodingTime,
	}
}

// moodLexicon maps free-form mood labels onto the -3..3 wellbeing scale.
var moodLexicon = map[string]int{
	"very happy": 3,
	"happy":      2,
	"content":    1,
	"satisfied":  1,
	"neutral":    0,
	"calm":       0,
	"tired":      -1,
	"stressed":   -2,
	"frustrated": -2,
	"sad":        -3,
	"angry":      -3,
}

// MoodValue normalizes a mood label to the -3..3 scale.
// Unknown labels map to 0 (neutral) so a single odd entry
// cannot skew the weekly average.
func MoodValue(label string) int {
	return moodLexicon[strings.ToLower(strings.TrimSpace(label))]
}

// KnownMoodLabel reports whether the label is part of the lexicon.
func KnownMoodLabel(label string) bool {
	_, ok := moodLexicon[strings.ToLower(strings.TrimSpace(label))]
	return ok
}

// RiskBand buckets a 0-100 risk score for presentation.
type RiskBand string

const (
	RiskBandLow      RiskBand = "LOW"
	RiskBandModerate RiskBand = "MODERATE"
	RiskBandHigh     RiskBand = "HIGH"
	RiskBandCritical RiskBand = "CRITICAL"
)

func (b RiskBand) String() string { return string(b) }

// BandForScore maps a risk score onto its band.
func BandForScore(score int) RiskBand {
	switch {
	case score >= 85:
		return RiskBandCritical
	case score >= 70:
		return RiskBandHigh
	case score >= 40:
		return RiskBandModerate
	default:
		return RiskBandLow
	}
}
