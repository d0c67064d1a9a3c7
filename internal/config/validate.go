package config

import (
	"fmt"
	"math"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Scoring.validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Breaks.validate(); err != nil {
		return fmt.Errorf("breaks: %w", err)
	}

	return nil
}

func (s *ScoringConfig) validate() error {
	var sum float64
	for _, w := range s.Weights() {
		if w < 0 {
			return fmt.Errorf("source weights must be >= 0 (got %v)", w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("source weights must sum to 1.0 (got %v)", sum)
	}

	if s.TrendWindowDays <= 0 {
		return fmt.Errorf("trend_window_days must be > 0 (got %d)", s.TrendWindowDays)
	}
	if s.TrendMinSamples < 2 {
		return fmt.Errorf("trend_min_samples must be >= 2 (got %d)", s.TrendMinSamples)
	}
	if s.HistoryDefaultDays <= 0 || s.HistoryMaxDays < s.HistoryDefaultDays {
		return fmt.Errorf("history window invalid (default %d, max %d)", s.HistoryDefaultDays, s.HistoryMaxDays)
	}

	return nil
}

func (b *BreaksConfig) validate() error {
	if b.MinValidDuration <= 0 {
		return fmt.Errorf("min_valid_duration must be > 0 (got %v)", b.MinValidDuration)
	}
	if b.ShortBreakDuration < b.MinValidDuration {
		return fmt.Errorf("short_break_duration must be >= min_valid_duration (got %v)", b.ShortBreakDuration)
	}
	if b.OrphanCutoff <= 0 {
		return fmt.Errorf("orphan_cutoff must be > 0 (got %v)", b.OrphanCutoff)
	}
	return nil
}
