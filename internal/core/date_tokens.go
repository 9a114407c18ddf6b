package core

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const (
	millisecondsInHour   = 3_600_000
	millisecondsInMinute = 60_000
	millisecondsInSecond = 1_000
)

// Patterns compile with ECMAScript semantics so \d only matches ASCII digits.
func mustToken(pattern string) *regexp2.Regexp {
	return regexp2.MustCompile(pattern, regexp2.ECMAScript)
}

// matchToken returns the capture groups of the first match of re in value,
// group 0 being the whole match. Groups that did not participate are empty.
func matchToken(re *regexp2.Regexp, value string) ([]string, bool) {
	match, err := re.FindStringMatch(value)
	if err != nil || match == nil {
		return nil, false
	}
	groups := match.Groups()
	captures := make([]string, len(groups))
	for i, group := range groups {
		captures[i] = group.String()
	}
	return captures, true
}

// yearToken matches the leading year of a date segment. Century tokens
// (YY and ±YYY) scale the parsed value by 100.
type yearToken struct {
	pattern *regexp2.Regexp
	century bool
}

// yearTokens is indexed by the number of additional extended-year digits.
// Each table is ordered: YYYY, ±YYYYY, YY, ±YYY.
var yearTokens = [3][]yearToken{
	buildYearTokens(0),
	buildYearTokens(1),
	buildYearTokens(2),
}

func buildYearTokens(additionalDigits int) []yearToken {
	extended := strconv.Itoa(4 + additionalDigits)
	century := strconv.Itoa(2 + additionalDigits)
	return []yearToken{
		{pattern: mustToken(`^(\d{4})`)},
		{pattern: mustToken(`^([+-]\d{` + extended + `})`)},
		{pattern: mustToken(`^(\d{2})$`), century: true},
		{pattern: mustToken(`^([+-]\d{` + century + `})$`), century: true},
	}
}

type yearResult struct {
	Year int
	Rest string
}

func parseYear(tokens []yearToken, dateString string) (yearResult, bool) {
	for _, token := range tokens {
		groups, ok := matchToken(token.pattern, dateString)
		if !ok {
			continue
		}
		yearString := groups[1]
		year, err := strconv.Atoi(yearString)
		if err != nil {
			continue
		}
		if token.century {
			year *= 100
		}
		return yearResult{Year: year, Rest: dateString[len(yearString):]}, true
	}
	return yearResult{}, false
}

type dateForm string

const (
	dateFormYear      dateForm = "year"
	dateFormMonth     dateForm = "year-month"
	dateFormDayOfYear dateForm = "year-day"
	dateFormMonthDay  dateForm = "year-month-day"
	dateFormWeek      dateForm = "week"
	dateFormWeekDay   dateForm = "week-day"
)

type calendarDate struct {
	Form dateForm
	Date time.Time
}

type dateToken struct {
	form    dateForm
	pattern *regexp2.Regexp
	extract func(groups []string, year int) time.Time
}

// dateTokens are evaluated in order against the remainder after the year;
// the first match wins.
var dateTokens = []dateToken{
	{
		form:    dateFormYear,
		pattern: mustToken(`^$`),
		extract: func(_ []string, year int) time.Time {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		},
	},
	{
		form:    dateFormMonth,
		pattern: mustToken(`^-(\d{2})$`),
		extract: func(groups []string, year int) time.Time {
			return time.Date(year, time.Month(atoi(groups[1])), 1, 0, 0, 0, 0, time.UTC)
		},
	},
	{
		form:    dateFormDayOfYear,
		pattern: mustToken(`^-?(\d{3})$`),
		extract: func(groups []string, year int) time.Time {
			return time.Date(year, time.January, atoi(groups[1]), 0, 0, 0, 0, time.UTC)
		},
	},
	{
		form:    dateFormMonthDay,
		pattern: mustToken(`^-?(\d{2})-?(\d{2})$`),
		extract: func(groups []string, year int) time.Time {
			return time.Date(year, time.Month(atoi(groups[1])), atoi(groups[2]), 0, 0, 0, 0, time.UTC)
		},
	},
	{
		form:    dateFormWeek,
		pattern: mustToken(`^-?W(\d{2})$`),
		extract: func(groups []string, year int) time.Time {
			return dayOfISOYear(year, atoi(groups[1])-1, 0)
		},
	},
	{
		form:    dateFormWeekDay,
		pattern: mustToken(`^-?W(\d{2})-?(\d{1})$`),
		extract: func(groups []string, year int) time.Time {
			return dayOfISOYear(year, atoi(groups[1])-1, atoi(groups[2])-1)
		},
	},
}

func parseCalendarDate(rest string, year int) (calendarDate, bool) {
	for _, token := range dateTokens {
		groups, ok := matchToken(token.pattern, rest)
		if !ok {
			continue
		}
		return calendarDate{Form: token.form, Date: token.extract(groups, year)}, true
	}
	return calendarDate{}, false
}

// dayOfISOYear resolves a zero-based ISO week and zero-based weekday
// (0 = Monday) to a UTC date. Week 1 is the week holding January 4th.
func dayOfISOYear(isoYear int, week int, day int) time.Time {
	fourth := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, time.UTC)
	fourthWeekday := int(fourth.Weekday())
	if fourthWeekday == 0 {
		fourthWeekday = 7
	}
	diff := week*7 + day + 1 - fourthWeekday
	return fourth.AddDate(0, 0, diff)
}

type timeToken struct {
	pattern *regexp2.Regexp
	extract func(groups []string) float64
}

// timeTokens yield milliseconds since midnight. Only the last component may
// carry a decimal fraction.
var timeTokens = []timeToken{
	{
		pattern: mustToken(`^(\d{2}([.,]\d*)?)$`),
		extract: func(groups []string) float64 {
			hours := parseDecimal(groups[1])
			return math.Mod(hours, 24) * millisecondsInHour
		},
	},
	{
		pattern: mustToken(`^(\d{2}):?(\d{2}([.,]\d*)?)$`),
		extract: func(groups []string) float64 {
			hours := atoi(groups[1]) % 24
			minutes := parseDecimal(groups[2])
			return float64(hours)*millisecondsInHour + minutes*millisecondsInMinute
		},
	},
	{
		pattern: mustToken(`^(\d{2}):?(\d{2}):?(\d{2}([.,]\d*)?)$`),
		extract: func(groups []string) float64 {
			hours := atoi(groups[1]) % 24
			minutes := atoi(groups[2])
			seconds := parseDecimal(groups[3])
			return float64(hours)*millisecondsInHour +
				float64(minutes)*millisecondsInMinute +
				seconds*millisecondsInSecond
		},
	},
}

// parseTimeOfDay reports false when no time form matches; callers treat that
// as zero elapsed time.
func parseTimeOfDay(timeString string) (float64, bool) {
	for _, token := range timeTokens {
		groups, ok := matchToken(token.pattern, timeString)
		if !ok {
			continue
		}
		return token.extract(groups), true
	}
	return 0, false
}

type timezoneToken struct {
	pattern *regexp2.Regexp
	extract func(groups []string) int
}

// timezoneTokens yield the offset in minutes to add to local time to reach
// UTC, so "+01:00" becomes -60.
var timezoneTokens = []timezoneToken{
	{
		pattern: mustToken(`^(Z)$`),
		extract: func(_ []string) int { return 0 },
	},
	{
		pattern: mustToken(`^([+-])(\d{2})$`),
		extract: func(groups []string) int {
			return signedOffset(groups[1], atoi(groups[2])*60)
		},
	},
	{
		pattern: mustToken(`^([+-])(\d{2}):?(\d{2})$`),
		extract: func(groups []string) int {
			return signedOffset(groups[1], atoi(groups[2])*60+atoi(groups[3]))
		},
	},
}

// parseTimezone returns 0 for designators no token recognizes.
func parseTimezone(timezoneString string) int {
	for _, token := range timezoneTokens {
		groups, ok := matchToken(token.pattern, timezoneString)
		if !ok {
			continue
		}
		return token.extract(groups)
	}
	return 0
}

func signedOffset(sign string, absolute int) int {
	if sign == "+" {
		return -absolute
	}
	return absolute
}

// atoi is only applied to captures of all-digit groups.
func atoi(value string) int {
	parsed, _ := strconv.Atoi(value)
	return parsed
}

func parseDecimal(value string) float64 {
	parsed, _ := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
	return parsed
}
