package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// BusinessHoursPolicy decides whether a timestamp falls within operating
// hours. Pure and stateless; injected so per-business hours can vary
// without touching callers.
type BusinessHoursPolicy interface {
	IsWithinBusinessHours(t time.Time) bool
}

// HourWindow is the default policy: local hour-of-day in [OpenHour, CloseHour)
type HourWindow struct {
	openHour  int
	closeHour int
}

// NewHourWindow создает политику рабочих часов [openHour, closeHour)
func NewHourWindow(openHour, closeHour int) HourWindow {
	return HourWindow{openHour: openHour, closeHour: closeHour}
}

// IsWithinBusinessHours возвращает true, если локальный час попадает в окно
func (w HourWindow) IsWithinBusinessHours(t time.Time) bool {
	hour := t.Hour()
	return hour >= w.openHour && hour < w.closeHour
}

// OpenTime возвращает время открытия как TimeString
func (w HourWindow) OpenTime() types.TimeString {
	return types.TimeString(fmt.Sprintf("%02d:00", w.openHour))
}

// CloseTime возвращает время закрытия как TimeString
func (w HourWindow) CloseTime() types.TimeString {
	if w.closeHour == 24 {
		return types.TimeString("24:00")
	}
	return types.TimeString(fmt.Sprintf("%02d:00", w.closeHour))
}
