// Package clock turns an instant and a timezone selection into the
// hour/minute/second the dial shows.
package clock

import "time"

// Time is the wall-clock breakdown of an instant in a zone.
type Time struct {
	Hour   int // 0..23
	Minute int // 0..59
	Second int // 0..59
}

// Resolve returns the wall-clock hour, minute and second of instant in zone.
func Resolve(instant time.Time, zone Zone) Time {
	h, m, s := instant.In(zone.Location()).Clock()
	return Time{Hour: h, Minute: m, Second: s}
}

// Source provides the current instant.
type Source interface {
	Now() time.Time
}

// RealSource reads the host clock.
type RealSource struct{}

func (RealSource) Now() time.Time { return time.Now() }

// FixedSource always reports the same instant.
type FixedSource struct{ T time.Time }

func (f FixedSource) Now() time.Time { return f.T }

// ExportName returns the frame export base name for t in local time,
// e.g. clock_20240315_143045.
func ExportName(t time.Time) string {
	return t.Local().Format("clock_20060102_150405")
}
