package settings

import "github.com/heartmarshall/touchgrass-backend/internal/domain"

// UpdateInput carries a partial settings update. Nil fields keep their
// current value.
type UpdateInput struct {
	RiskThreshold        *int
	NotificationsEnabled *bool
	WorkingHoursStart    *int
	WorkingHoursEnd      *int
	TargetBreakInterval  *int
}

// Validate checks each provided field in isolation. The start-before-end
// rule is checked after merging, since one side may come from storage.
func (in UpdateInput) Validate() error {
	var errs []domain.FieldError

	if in.RiskThreshold != nil && (*in.RiskThreshold < 0 || *in.RiskThreshold > 100) {
		errs = append(errs, domain.FieldError{Field: "risk_threshold", Message: "must be between 0 and 100"})
	}
	if in.WorkingHoursStart != nil && (*in.WorkingHoursStart < 0 || *in.WorkingHoursStart > 23) {
		errs = append(errs, domain.FieldError{Field: "working_hours_start", Message: "must be between 0 and 23"})
	}
	if in.WorkingHoursEnd != nil && (*in.WorkingHoursEnd < 0 || *in.WorkingHoursEnd > 23) {
		errs = append(errs, domain.FieldError{Field: "working_hours_end", Message: "must be between 0 and 23"})
	}
	if in.TargetBreakInterval != nil && *in.TargetBreakInterval <= 0 {
		errs = append(errs, domain.FieldError{Field: "target_break_interval", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// applyTo merges the input into current settings.
func (in UpdateInput) applyTo(current domain.UserSettings) domain.UserSettings {
	result := current

	if in.RiskThreshold != nil {
		result.RiskThreshold = *in.RiskThreshold
	}
	if in.NotificationsEnabled != nil {
		result.NotificationsEnabled = *in.NotificationsEnabled
	}
	if in.WorkingHoursStart != nil {
		result.WorkingHoursStart = *in.WorkingHoursStart
	}
	if in.WorkingHoursEnd != nil {
		result.WorkingHoursEnd = *in.WorkingHoursEnd
	}
	if in.TargetBreakInterval != nil {
		result.TargetBreakInterval = *in.TargetBreakInterval
	}

	return result
}
