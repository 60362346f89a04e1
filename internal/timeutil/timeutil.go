// Package timeutil classifies timestamps into the civil-date buckets the
// dashboard filters on. All bucket math runs in a single fixed business
// timezone; the viewer's local clock is never consulted.
package timeutil

import (
	"fmt"
	"time"
)

// DefaultZone is the business timezone used when the config does not
// override it.
const DefaultZone = "Asia/Kolkata"

const civilLayout = "2006-01-02"

// Bucket names a relative date window.
type Bucket string

const (
	BucketNone      Bucket = ""
	BucketToday     Bucket = "today"
	BucketYesterday Bucket = "yesterday"
	BucketThisWeek  Bucket = "this-week"
	BucketLastWeek  Bucket = "last-week"
	BucketThisMonth Bucket = "this-month"
	BucketCustom    Bucket = "custom"
)

// LoadZone resolves a timezone name, falling back to DefaultZone and then
// UTC so callers always get a usable location.
func LoadZone(name string) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultZone); err == nil {
		return loc
	}
	return time.UTC
}

// DayStart truncates t to midnight in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// WeekStart returns the most recent Monday midnight at or before t.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := DayStart(t, loc)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// SameCivilDay reports whether a and b fall on the same calendar date in loc.
func SameCivilDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// InBucket reports whether ts falls inside the named bucket relative to now.
// BucketNone matches everything; BucketCustom is evaluated by InRange and
// always reports false here.
func InBucket(ts time.Time, b Bucket, now time.Time, loc *time.Location) bool {
	if ts.IsZero() {
		return false
	}
	switch b {
	case BucketNone:
		return true
	case BucketToday:
		return SameCivilDay(ts, now, loc)
	case BucketYesterday:
		return SameCivilDay(ts, now.AddDate(0, 0, -1), loc)
	case BucketThisWeek:
		return !ts.In(loc).Before(WeekStart(now, loc))
	case BucketLastWeek:
		start := WeekStart(now, loc).AddDate(0, 0, -7)
		end := WeekStart(now, loc)
		t := ts.In(loc)
		return !t.Before(start) && t.Before(end)
	case BucketThisMonth:
		t := ts.In(loc)
		n := now.In(loc)
		return t.Year() == n.Year() && t.Month() == n.Month()
	default:
		return false
	}
}

// InRange reports whether ts falls between the optional civil-date bounds,
// inclusive on both ends. Empty bounds are open.
func InRange(ts time.Time, start, end string, loc *time.Location) bool {
	if ts.IsZero() {
		return false
	}
	day := DayStart(ts, loc)
	if start != "" {
		s, err := ParseCivil(start, loc)
		if err != nil || day.Before(s) {
			return false
		}
	}
	if end != "" {
		e, err := ParseCivil(end, loc)
		if err != nil || day.After(e) {
			return false
		}
	}
	return true
}

// ParseCivil parses a YYYY-MM-DD date as midnight in loc.
func ParseCivil(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(civilLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return t, nil
}

// FormatDate renders a timestamp as a short civil date for table cells.
// Zero times render as a dash.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(loc).Format("02 Jan 2006")
}

// FormatDateTime renders a timestamp with wall-clock time for event rows.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(loc).Format("02 Jan 2006 15:04")
}
