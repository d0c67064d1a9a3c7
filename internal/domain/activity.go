package domain

import (
	"time"

	"github.com/google/uuid"
)

// VelocityEntry records story points (or an equivalent effort estimate)
// completed by a user at a point in time.
type VelocityEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Points      int
	CompletedAt time.Time
}

// MoodEntry is a self-reported mood check-in. The label is stored as
// entered and normalized through the mood lexicon at scoring time.
type MoodEntry struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Label      string
	RecordedAt time.Time
}

// WorkSession is a contiguous stretch of tracked work.
// DurationMin and the break counter are filled in as the session closes.
type WorkSession struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	StartedAt   time.Time
	EndedAt     *time.Time
	DurationMin *int
	BreaksTaken int
}

// IsOpen reports whether the session has not been closed yet.
func (s *WorkSession) IsOpen() bool { return s.EndedAt == nil }

// BreakRecord is one break taken during (or outside) a work session.
// Duration and validity are computed when the break ends; a break counts
// as valid only when it lasted at least MinValidBreakSeconds.
type BreakRecord struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SessionID   *uuid.UUID
	StartedAt   time.Time
	EndedAt     *time.Time
	DurationSec *int
	Valid       *bool
}

// IsOpen reports whether the break has not been closed yet.
func (b *BreakRecord) IsOpen() bool { return b.EndedAt == nil }

// MinValidBreakSeconds is the shortest break that counts as restorative.
const MinValidBreakSeconds = 60

// CommitRecord is one commit fetched from the user's VCS provider,
// deduplicated by (user, sha).
type CommitRecord struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SHA         string
	Repo        string
	Message     string
	CommittedAt time.Time
	Additions   int
	Deletions   int
}

// CommitWindowCounts are the raw per-window commit counts the analytics
// are derived from.
type CommitWindowCounts struct {
	Total       int
	LateNight   int // committed between 22:00 and 06:59 UTC
	Weekend     int
	RecentTotal int // last 3 days of the window
}

// CommitAnalytics aggregates a user's stored commits over a window.
type CommitAnalytics struct {
	TotalCommits    int
	LateNightRatio  float64 // share committed between 22:00 and 06:59
	WeekendRatio    float64
	AvgPerDay       float64
	RecentAvgPerDay float64 // last 3 days
}

// CodingDay is one day of editor activity synced from the coding-time
// provider, keyed by (user, day).
type CodingDay struct {
	UserID   uuid.UUID
	Day      time.Time
	TotalSec int
	Weekend  bool
}

// Hours returns the day's coding time in hours.
func (d CodingDay) Hours() float64 { return float64(d.TotalSec) / 3600 }

// BreakStats summarizes today's break behaviour for a user.
type BreakStats struct {
	TotalBreaks     int
	ValidBreaks     int
	AvgValidSeconds float64
	BreaksPerHour   float64
	WorkMinutes     int
}
