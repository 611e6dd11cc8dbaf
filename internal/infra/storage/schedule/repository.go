// Package schedule is the storage adapter behind the checker's
// ScheduleProvider: employee working windows and time-off records.
// Availability windows are computed on demand, never stored.
package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/POS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/POS-ReservationService/pkg/pgretry"
	"github.com/m04kA/POS-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/POS-ReservationService/pkg/types"
)

// DBExecutor общий интерфейс для *sql.DB и его обёрток
type DBExecutor = dbmetrics.DBExecutor

// shiftWindow рабочее окно сотрудника в конкретный день недели
type shiftWindow struct {
	weekday int
	start   types.TimeString
	end     types.TimeString
}

// Repository репозиторий расписаний и отгулов сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) read(ctx context.Context, fn func() error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn()
	}
	return pgretry.Read(ctx, fn)
}

// HasTimeOff проверяет, пересекается ли отгул сотрудника с интервалом
// [start, end) на указанную дату
func (r *Repository) HasTimeOff(ctx context.Context, employeeID int64, date time.Time, start, end types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	startsAt, err := start.At(date)
	if err != nil {
		return false, fmt.Errorf("%w: HasTimeOff - invalid start time: %v", ErrBuildQuery, err)
	}
	endsAt, err := end.At(date)
	if err != nil {
		// Интервал до локальной полуночи следующего дня
		endsAt = time.Date(date.Year(), date.Month(), date.Day()+1, 0, 0, 0, 0, date.Location())
	}

	query, args, err := psqlbuilder.Select("1").
		From("time_off").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.Expr("starts_at < ?", endsAt)).
		Where(squirrel.Expr("ends_at > ?", startsAt)).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	var found bool
	err = r.read(ctx, func() error {
		var one int
		scanErr := executor.QueryRowContext(ctx, query, args...).Scan(&one)
		if scanErr == sql.ErrNoRows {
			found = false
			return nil
		}
		if scanErr != nil {
			return scanErr
		}
		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: HasTimeOff - execute query: %v", ErrExecQuery, err)
	}

	return found, nil
}

// IsWithinShift проверяет, что интервал [start, end) попадает в рабочее
// окно сотрудника в этот день недели.
//
// Сотрудник без настроенного расписания считается работающим всегда -
// недоступность таких сотрудников выражается через time_off.
func (r *Repository) IsWithinShift(ctx context.Context, employeeID int64, date time.Time, start, end types.TimeString) (bool, error) {
	windows, err := r.getShiftWindows(ctx, employeeID)
	if err != nil {
		return false, err
	}

	if len(windows) == 0 {
		return true, nil
	}

	weekday := int(date.Weekday())
	for _, w := range windows {
		if w.weekday != weekday {
			continue
		}
		if !start.IsBefore(w.start) && !w.end.IsBefore(end) {
			return true, nil
		}
	}

	return false, nil
}

// getShiftWindows загружает все рабочие окна сотрудника
func (r *Repository) getShiftWindows(ctx context.Context, employeeID int64) ([]shiftWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("weekday", "start_time", "end_time").
		From("employee_schedules").
		Where(squirrel.Eq{"employee_id": employeeID}).
		OrderBy("weekday ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getShiftWindows - build select query: %v", ErrBuildQuery, err)
	}

	var windows []shiftWindow
	err = r.read(ctx, func() error {
		rows, queryErr := executor.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		scanned := make([]shiftWindow, 0)
		for rows.Next() {
			var w shiftWindow
			if scanErr := rows.Scan(&w.weekday, &w.start, &w.end); scanErr != nil {
				return scanErr
			}
			scanned = append(scanned, w)
		}
		if rowsErr := rows.Err(); rowsErr != nil {
			return rowsErr
		}
		windows = scanned
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: getShiftWindows - execute query: %v", ErrExecQuery, err)
	}

	return windows, nil
}
