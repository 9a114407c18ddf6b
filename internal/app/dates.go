package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"foundation/internal/core"
	"foundation/internal/types"
)

func (s Service) ToAbsoluteTime(value any) types.Instant {
	return s.Dates.ToAbsoluteTime(value)
}

// ToISOString formats value, or the current time when value is nil. An
// unconvertible value yields the invalid time value error.
func (s Service) ToISOString(value any) (string, error) {
	if value == nil {
		return core.FormatISO(types.InstantFromTime(s.now()))
	}
	return core.FormatISO(s.Dates.ToAbsoluteTime(value))
}

// ParseDate coerces a single value and reports the instant. Unconvertible
// strings produce an invalid instant, not an error.
func (s Service) ParseDate(ctx context.Context, req DateRequest) (DateResult, error) {
	raw := req.Value
	if strings.TrimSpace(raw) == "" {
		return DateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("date value is required")
	}
	value, err := dateValue(req)
	if err != nil {
		return DateResult{}, err
	}
	instant := s.Dates.ToAbsoluteTime(value)
	result := DateResult{Input: raw, Instant: instant}
	if instant.Valid {
		iso, err := core.FormatISO(instant)
		if err != nil {
			return DateResult{}, err
		}
		result.ISO = iso
	}
	log.Debug().
		Str("input", raw).
		Bool("valid", instant.Valid).
		Int64("millis", instant.Millis).
		Msg("date parsed")
	return result, nil
}

// FormatDate renders the value as an ISO string; an empty value means now.
func (s Service) FormatDate(ctx context.Context, req DateRequest) (string, error) {
	if strings.TrimSpace(req.Value) == "" {
		return s.ToISOString(nil)
	}
	value, err := dateValue(req)
	if err != nil {
		return "", err
	}
	return s.ToISOString(value)
}

func dateValue(req DateRequest) (any, error) {
	if !req.AsTimestamp {
		return req.Value, nil
	}
	trimmed := strings.TrimSpace(req.Value)
	if millis, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return millis, nil
	}
	millis, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("timestamp must be a number of milliseconds: " + trimmed).
			WithCause(err)
	}
	return millis, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
