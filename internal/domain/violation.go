package domain

// RuleViolation carries every independently evaluated booking rule that
// failed for one candidate, so callers can report the complete picture in
// one round trip instead of iterating on single-reason rejections.
//
// A RuleViolation with no flag set is invalid: the availability checker
// returns nil for a successful check and never constructs an empty one.
type RuleViolation struct {
	TimeInPast           bool `json:"timeInPast"`
	OutsideBusinessHours bool `json:"outsideBusinessHours"`
	TimeOverlap          bool `json:"timeOverlap"`
	EmployeeUnavailable  bool `json:"employeeUnavailable"`
}

// Any returns true if at least one rule failed
func (v *RuleViolation) Any() bool {
	return v.TimeInPast || v.OutsideBusinessHours || v.TimeOverlap || v.EmployeeUnavailable
}

// Reasons возвращает список нарушенных правил для логов и ответов API
func (v *RuleViolation) Reasons() []string {
	reasons := make([]string, 0, 4)
	if v.TimeInPast {
		reasons = append(reasons, "time_in_past")
	}
	if v.OutsideBusinessHours {
		reasons = append(reasons, "outside_business_hours")
	}
	if v.TimeOverlap {
		reasons = append(reasons, "time_overlap")
	}
	if v.EmployeeUnavailable {
		reasons = append(reasons, "employee_unavailable")
	}
	return reasons
}
