package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// StaleAttendanceCloser is the part of the attendance service the sweep needs.
type StaleAttendanceCloser interface {
	CloseStaleAttendances(ctx context.Context) (int, error)
}

type AttendanceJobs struct {
	closer   StaleAttendanceCloser
	interval time.Duration
}

func NewAttendanceJobs(closer StaleAttendanceCloser, interval time.Duration) *AttendanceJobs {
	return &AttendanceJobs{closer: closer, interval: interval}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("close_stale_attendances", j.interval, j.CloseStaleAttendances)
}

// CloseStaleAttendances applies the half-day policy to sessions left open on earlier dates.
func (j *AttendanceJobs) CloseStaleAttendances(ctx context.Context) error {
	closed, err := j.closer.CloseStaleAttendances(ctx)
	if err != nil {
		return fmt.Errorf("failed to close stale attendances after %d rows: %w", closed, err)
	}
	if closed > 0 {
		slog.Info("cron: closed stale attendances", "count", closed)
	}
	return nil
}
