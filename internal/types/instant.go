package types

import "time"

// MaxInstantMillis bounds the representable timeline at ±100,000,000 days
// around the Unix epoch.
const MaxInstantMillis int64 = 8_640_000_000_000_000

// Instant is a point on the universal timeline with millisecond precision.
// The zero value is the invalid instant.
type Instant struct {
	Millis int64
	Valid  bool
}

// InvalidInstant is the sentinel produced when a value cannot be converted.
var InvalidInstant = Instant{}

// InstantFromMillis returns the instant at ms, or InvalidInstant when ms is
// outside the representable range.
func InstantFromMillis(ms int64) Instant {
	if ms > MaxInstantMillis || ms < -MaxInstantMillis {
		return InvalidInstant
	}
	return Instant{Millis: ms, Valid: true}
}

// InstantFromTime drops sub-millisecond precision from t.
func InstantFromTime(t time.Time) Instant {
	return InstantFromMillis(t.UnixMilli())
}

func (i Instant) Time() time.Time {
	return time.UnixMilli(i.Millis).UTC()
}
