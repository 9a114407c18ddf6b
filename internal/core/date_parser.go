package core

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"foundation/internal/ports"
	"foundation/internal/types"
)

// DefaultAdditionalDigits is the number of extra year digits accepted in
// extended (signed) year forms when the caller does not choose one.
const DefaultAdditionalDigits = 2

// DateParser converts loosely formatted dates into absolute instants. It is
// immutable once built.
type DateParser struct {
	additionalDigits int
	location         *time.Location
	fallback         ports.DateFallbackPort
}

// NewDateParser validates additionalDigits and binds the zone used for
// strings without a timezone designator. A nil location means time.Local;
// a nil fallback turns every string the ISO-8601 tables reject into the
// invalid instant.
func NewDateParser(additionalDigits int, location *time.Location, fallback ports.DateFallbackPort) (DateParser, error) {
	if additionalDigits < 0 || additionalDigits > 2 {
		return DateParser{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("additionalDigits must be 0, 1 or 2, got %d", additionalDigits))
	}
	if location == nil {
		location = time.Local
	}
	return DateParser{
		additionalDigits: additionalDigits,
		location:         location,
		fallback:         fallback,
	}, nil
}

func (p DateParser) AdditionalDigits() int {
	return p.additionalDigits
}

func (p DateParser) Location() *time.Location {
	if p.location == nil {
		return time.Local
	}
	return p.location
}

// ToAbsoluteTime coerces value into an instant. Instants and times are
// copied, numbers are read as milliseconds since the epoch and strings go
// through the ISO-8601 pipeline before the generic fallback.
func (p DateParser) ToAbsoluteTime(value any) types.Instant {
	switch typed := value.(type) {
	case nil:
		log.Debug().Msg("date value is nil")
		return types.InvalidInstant
	case types.Instant:
		if !typed.Valid {
			return types.InvalidInstant
		}
		return types.InstantFromMillis(typed.Millis)
	case time.Time:
		return types.InstantFromTime(typed)
	case *time.Time:
		if typed == nil {
			return types.InvalidInstant
		}
		return types.InstantFromTime(*typed)
	case string:
		return p.parseString(typed)
	}

	number := reflect.ValueOf(value)
	switch number.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return types.InstantFromMillis(number.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if number.Uint() > uint64(types.MaxInstantMillis) {
			return types.InvalidInstant
		}
		return types.InstantFromMillis(int64(number.Uint()))
	case reflect.Float32, reflect.Float64:
		return instantFromFloat(number.Float())
	}

	log.Debug().
		Str("type", fmt.Sprintf("%T", value)).
		Msg("unsupported date value type")
	return types.InvalidInstant
}

func (p DateParser) parseString(raw string) types.Instant {
	parts := splitDateString(raw)

	if parts.HasDate {
		if year, ok := parseYear(yearTokens[p.additionalDigits], parts.Date); ok {
			if date, ok := parseCalendarDate(year.Rest, year.Year); ok {
				return p.combine(date.Date, parts)
			}
		}
	}

	log.Debug().
		Str("value", raw).
		Msg("value is not ISO-8601, using fallback conversion")
	if p.fallback == nil {
		return types.InvalidInstant
	}
	parsed, err := p.fallback.ParseFallback(raw, p.Location())
	if err != nil {
		log.Debug().
			Str("value", raw).
			Err(err).
			Msg("fallback conversion failed")
		return types.InvalidInstant
	}
	return types.InstantFromTime(parsed)
}

func (p DateParser) combine(date time.Time, parts types.DateStrings) types.Instant {
	timestamp := float64(date.UnixMilli())

	var timeOfDay float64
	if parts.HasTime && parts.Time != "" {
		// An unrecognized time segment counts as midnight.
		timeOfDay, _ = parseTimeOfDay(parts.Time)
	}

	var offsetMillis float64
	if parts.HasTimezone {
		offsetMillis = float64(parseTimezone(parts.Timezone)) * millisecondsInMinute
	} else {
		local := timestamp + timeOfDay
		offsetMillis = p.localOffsetMillis(local)
		offsetMillis = p.localOffsetMillis(local + offsetMillis)
	}

	return instantFromFloat(timestamp + timeOfDay + offsetMillis)
}

// localOffsetMillis is the UTC minus local difference in effect at the given
// instant in the parser's zone, truncated to whole minutes.
func (p DateParser) localOffsetMillis(ms float64) float64 {
	if math.Abs(ms) > float64(types.MaxInstantMillis)*2 {
		return 0
	}
	_, offsetSeconds := time.UnixMilli(int64(ms)).In(p.Location()).Zone()
	offsetMinutes := offsetSeconds / 60
	return float64(-offsetMinutes) * millisecondsInMinute
}

func instantFromFloat(ms float64) types.Instant {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > float64(types.MaxInstantMillis) {
		return types.InvalidInstant
	}
	return types.InstantFromMillis(int64(math.Trunc(ms)))
}

// splitDateString separates the date, time and timezone segments. Segments
// are split on every "T" or space; a first segment containing ":" is a bare
// time.
func splitDateString(raw string) types.DateStrings {
	result := types.DateStrings{}
	parts := strings.Split(strings.ReplaceAll(raw, "T", " "), " ")

	var timeString string
	if strings.Contains(parts[0], ":") {
		timeString = parts[0]
	} else {
		result.Date = parts[0]
		result.HasDate = true
		if len(parts) > 1 {
			timeString = parts[1]
		}
	}

	if timeString == "" {
		return result
	}

	if index := strings.IndexAny(timeString, "Z+-"); index >= 0 {
		result.Timezone = timeString[index:]
		result.HasTimezone = true
		result.Time = timeString[:index]
	} else {
		result.Time = timeString
	}
	result.HasTime = true
	return result
}
