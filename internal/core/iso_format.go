package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"foundation/internal/types"
)

// FormatISO renders instant as YYYY-MM-DDTHH:mm:ss.sssZ in UTC. Years
// outside 0..9999 use the signed six-digit extended form.
func FormatISO(instant types.Instant) (string, error) {
	if !instant.Valid {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid time value")
	}
	t := instant.Time()

	year := t.Year()
	var yearString string
	switch {
	case year < 0:
		yearString = fmt.Sprintf("-%06d", -year)
	case year > 9999:
		yearString = fmt.Sprintf("+%06d", year)
	default:
		yearString = fmt.Sprintf("%04d", year)
	}

	return fmt.Sprintf("%s-%02d-%02dT%02d:%02d:%02d.%03dZ",
		yearString,
		int(t.Month()),
		t.Day(),
		t.Hour(),
		t.Minute(),
		t.Second(),
		t.Nanosecond()/1_000_000,
	), nil
}
