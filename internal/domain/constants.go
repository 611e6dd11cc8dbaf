package domain

// Default booking engine values, overridable in config.toml
const (
	DefaultOpenHour                = 9
	DefaultCloseHour               = 17
	DefaultSlotGranularityMinutes  = 30
	DefaultMinBookingNoticeMinutes = 0
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinSlotGranularityMinutes   = 5
	MaxSlotGranularityMinutes   = 480 // 8 hours
	MaxServiceDurationMinutes   = 480
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CommittedStatuses статусы, учитываемые при проверке пересечений.
// Отмененные бронирования освобождают интервал и сюда не входят.
var CommittedStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusModified,
}
