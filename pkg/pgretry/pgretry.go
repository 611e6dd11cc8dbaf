// Package pgretry retries idempotent reads when PostgreSQL is temporarily
// unreachable. Writes are never retried here: a retried write could
// double-book, so callers must re-invoke those explicitly.
package pgretry

import (
	"context"
	"database/sql/driver"
	"errors"
	"time"

	"github.com/lib/pq"
)

const (
	maxAttempts = 3
	baseBackoff = 50 * time.Millisecond
)

// transientClasses классы ошибок Postgres, считающиеся временными
var transientClasses = map[string]bool{
	"08": true, // connection exception
	"53": true, // insufficient resources
	"57": true, // operator intervention (shutdown, crash recovery)
}

// IsTransient возвращает true для временных ошибок соединения
func IsTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return transientClasses[string(pqErr.Code.Class())]
	}
	return false
}

// Read выполняет fn с ограниченным числом повторов при временных ошибках
func Read(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(baseBackoff << (attempt - 1)):
			}
		}

		lastErr = fn()
		if lastErr == nil || !IsTransient(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
