package scheduler

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type stubRefresher struct{ calls int }

func (s *stubRefresher) RefreshBaselines(ctx context.Context) error {
	s.calls++
	return nil
}

type stubSlateRunner struct{ calls int }

func (s *stubSlateRunner) RunSlate(ctx context.Context, date time.Time) error {
	s.calls++
	return nil
}

func newTestScheduler() *Scheduler {
	return NewScheduler(&stubRefresher{}, &stubSlateRunner{}, testLogger())
}

func TestStartWithoutJobs(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.Start())
	assert.False(t, s.IsRunning())
}

func TestScheduleAndStart(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.ScheduleBaselineRefresh("0 4 * * *"))
	require.NoError(t, s.ScheduleSlateRun("0 14 * * *"))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start())

	assert.Len(t, s.Entries(), 2)
	assert.False(t, s.GetNextRun().IsZero())

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
}

func TestInvalidCronExpression(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.ScheduleBaselineRefresh("not a cron spec"))
}

func TestCannotScheduleWhileRunning(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.ScheduleBaselineRefresh("@daily"))
	require.NoError(t, s.Start())
	defer func() { require.NoError(t, s.Stop()) }()

	assert.Error(t, s.ScheduleSlateRun("@hourly"))
}

func TestStopIdempotent(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())
}
