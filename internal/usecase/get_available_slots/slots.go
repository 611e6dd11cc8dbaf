package get_available_slots

import (
	"time"

	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// gridPoints генерирует все точки сетки от открытия до закрытия с
// фиксированным шагом. Точка, чей слот вышел бы за время закрытия,
// в сетку не попадает.
func gridPoints(open, close types.TimeString, granularityMinutes int) ([]types.TimeString, error) {
	points := make([]types.TimeString, 0)
	current := open

	for current.IsBefore(close) {
		slotEnd, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(close) {
			break
		}

		points = append(points, current)
		current = slotEnd
	}

	return points, nil
}

// filterByNotice отбрасывает точки сегодняшней сетки, начинающиеся раньше
// now + minNoticeMinutes. Для будущих дат сетка не фильтруется.
func filterByNotice(points []types.TimeString, date, now time.Time, minNoticeMinutes int) ([]types.TimeString, error) {
	if !isSameDay(date, now) {
		return points, nil
	}

	currentTime := types.NewTimeString(now)
	minAllowed, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		return nil, err
	}

	filtered := make([]types.TimeString, 0, len(points))
	for _, p := range points {
		if !p.IsBefore(minAllowed) {
			filtered = append(filtered, p)
		}
	}

	return filtered, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
