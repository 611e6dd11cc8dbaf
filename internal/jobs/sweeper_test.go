package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	expired int64
	lastTTL int
	err     error
	calls   int
}

func (f *fakeRepo) ExpirePending(_ context.Context, ttlMinutes int) (int64, error) {
	f.calls++
	f.lastTTL = ttlMinutes
	return f.expired, f.err
}

func TestSweep_PassesTTL(t *testing.T) {
	repo := &fakeRepo{expired: 3}
	s := NewSweeper(repo, 30, "*/10 * * * *", nopLogger{})

	s.sweep()

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 30, repo.lastTTL)
}

func TestSweep_RepositoryErrorDoesNotPanic(t *testing.T) {
	repo := &fakeRepo{err: assert.AnError}
	s := NewSweeper(repo, 30, "*/10 * * * *", nopLogger{})

	s.sweep()
	assert.Equal(t, 1, repo.calls)
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := NewSweeper(&fakeRepo{}, 30, "not a cron expr", nopLogger{})
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := NewSweeper(&fakeRepo{}, 30, "*/10 * * * *", nopLogger{})
	require.NoError(t, s.Start())
	s.Stop()
}
