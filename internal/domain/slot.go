package domain

import "github.com/m04kA/POS-ReservationService/pkg/types"

// TimeSlot represents a candidate interval for booking. The slot length is
// the generator granularity, independent of any particular service duration.
type TimeSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Available       bool
}
