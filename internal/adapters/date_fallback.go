package adapters

import (
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/araddon/dateparse"
	"github.com/rs/zerolog/log"
)

// fallbackLayouts are tried before the heuristic parser. Layouts without a
// zone are read in the caller's location.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05 -0700 MST",
	"2006/01/02 15:04 MST",
	"2006/01/02 15:04:05 MST",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

type DateFallbackAdapter struct{}

func NewDateFallbackAdapter() DateFallbackAdapter {
	return DateFallbackAdapter{}
}

func (a DateFallbackAdapter) ParseFallback(raw string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty date value")
	}
	if loc == nil {
		loc = time.Local
	}
	trimmed = normalizeSeparator(trimmed)
	for _, layout := range fallbackLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return parsed.UTC(), nil
		}
	}
	parsed, err := dateparse.ParseIn(trimmed, loc)
	if err != nil {
		return time.Time{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unrecognized date value: " + trimmed).
			WithCause(err)
	}
	log.Debug().
		Str("value", trimmed).
		Time("parsed", parsed).
		Msg("date value parsed heuristically")
	return parsed.UTC(), nil
}

// normalizeSeparator upper-cases a lowercase "t" or "z" in an
// otherwise ISO shaped value such as 2014-02-11t11:30z.
func normalizeSeparator(value string) string {
	if len(value) <= 10 || value[10] != 't' || value[4] != '-' || value[7] != '-' {
		return value
	}
	value = value[:10] + "T" + value[11:]
	if strings.HasSuffix(value, "z") {
		value = value[:len(value)-1] + "Z"
	}
	return value
}
