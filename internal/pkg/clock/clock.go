package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock reports the current instant in the zone attendance is recorded in.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// New returns a Clock backed by time.Now, converted to loc.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

type fixedClock struct {
	t time.Time
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// ParseOffset turns an offset like "+05:30" or "-03:00" into a fixed zone.
func ParseOffset(offset string) (*time.Location, error) {
	offset = strings.TrimSpace(offset)
	if offset == "" || offset == "Z" {
		return time.UTC, nil
	}

	sign := 1
	switch offset[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, fmt.Errorf("invalid offset %q: must start with + or -", offset)
	}

	hh, mm, ok := strings.Cut(offset[1:], ":")
	if !ok {
		return nil, fmt.Errorf("invalid offset %q: expected +HH:MM", offset)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours > 14 {
		return nil, fmt.Errorf("invalid offset hours in %q", offset)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes > 59 {
		return nil, fmt.Errorf("invalid offset minutes in %q", offset)
	}

	seconds := sign * (hours*3600 + minutes*60)
	return time.FixedZone("UTC"+offset, seconds), nil
}

// DateOf drops the time-of-day part of t, keeping its calendar date.
// Dates are represented as midnight UTC, which is how pgx scans DATE columns.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the current calendar date according to c.
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}

// DaysInMonth counts the days of month in year, leap years included.
func DaysInMonth(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Elapsed is the time spent between two wall-clock readings taken on the same
// attendance date. A to earlier than from lies on the following day.
func Elapsed(from, to TimeOfDay) time.Duration {
	d := time.Duration(to) - time.Duration(from)
	if d < 0 {
		d += day
	}
	return d
}

// FormatDuration renders d as HH:MM:SS; hours may exceed 24.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	d = d.Truncate(time.Second)
	h := int64(d / time.Hour)
	m := int64(d%time.Hour) / int64(time.Minute)
	s := int64(d%time.Minute) / int64(time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ParseDuration is the inverse of FormatDuration.
func ParseDuration(s string) (time.Duration, error) {
	var h, m, sec int64
	n, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec)
	if err != nil || n != 3 || h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("invalid duration %q: expected HH:MM:SS", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}
