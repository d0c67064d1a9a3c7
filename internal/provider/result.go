package provider

import "time"

// CommitResult is a single commit fetched from a code-hosting provider.
type CommitResult struct {
	SHA         string
	Repo        string
	CommittedAt time.Time
}

// CodingDayResult is one day of aggregated editor activity from a
// time-tracking provider.
type CodingDayResult struct {
	Day      time.Time
	TotalSec int
}
