package ports

import "time"

// DateFallbackPort converts date strings the ISO-8601 token tables reject.
// Zone-less input is interpreted in loc.
type DateFallbackPort interface {
	ParseFallback(raw string, loc *time.Location) (time.Time, error)
}
