package burnout

import "github.com/heartmarshall/touchgrass-backend/internal/domain"

// ComputeResult is the outcome of one scoring run.
type ComputeResult struct {
	Score *domain.BurnoutScore

	// ShouldNotify is true when this run crossed the user's threshold and
	// won the day's notification claim. Delivery is the caller's problem.
	ShouldNotify bool
}
