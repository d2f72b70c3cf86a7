// Package media defines the buffer, clock, and capability value types that
// flow between the stages of the caption conversion pipeline.
package media

// ClockTime is a stream position in nanoseconds. ClockTimeNone marks a
// buffer that carries no presentation timestamp.
type ClockTime int64

// ClockTimeNone is the sentinel for an unset ClockTime.
const ClockTimeNone ClockTime = -1

// IsValid reports whether t carries a real timestamp.
func (t ClockTime) IsValid() bool { return t >= 0 }

// Seconds returns t as floating-point seconds, the unit the CEA-608
// decoder operates in.
func (t ClockTime) Seconds() float64 { return float64(t) / 1_000_000_000 }

// Buffer is one data unit moving through the pipeline: a payload plus its
// presentation timestamp and duration. Either time field may be
// ClockTimeNone when unknown.
type Buffer struct {
	PTS      ClockTime
	Duration ClockTime
	Data     []byte
}

// Caps describes a media capability: a type name plus an optional format
// qualifier, e.g. {Name: "text/x-raw", Format: "utf8"}.
type Caps struct {
	Name   string
	Format string
}

func (c Caps) String() string {
	if c.Format == "" {
		return c.Name
	}
	return c.Name + ", format=" + c.Format
}
