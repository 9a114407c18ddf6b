package core

import (
	"errors"
	"math"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foundation/internal/types"
)

type fakeFallback struct {
	calls  []string
	result time.Time
	err    error
}

func (f *fakeFallback) ParseFallback(raw string, _ *time.Location) (time.Time, error) {
	f.calls = append(f.calls, raw)
	return f.result, f.err
}

func newUTCParser(t *testing.T, additionalDigits int) DateParser {
	t.Helper()
	parser, err := NewDateParser(additionalDigits, time.UTC, nil)
	require.NoError(t, err)
	return parser
}

func instantAt(year int, month time.Month, day, hour, minute, second, millis int) types.Instant {
	return types.InstantFromTime(time.Date(year, month, day, hour, minute, second, millis*int(time.Millisecond), time.UTC))
}

func TestToAbsoluteTimeISOStrings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  types.Instant
	}{
		{"utc designator", "2014-02-11T11:30:30Z", instantAt(2014, 2, 11, 11, 30, 30, 0)},
		{"plus offset is subtracted", "2014-02-11T11:30:30+01:00", instantAt(2014, 2, 11, 10, 30, 30, 0)},
		{"minus offset compact", "2014-02-11T11:30:30-0330", instantAt(2014, 2, 11, 15, 0, 30, 0)},
		{"hours only offset", "2014-02-11T11:30:30+05", instantAt(2014, 2, 11, 6, 30, 30, 0)},
		{"space delimiter", "2014-02-11 11:30:30Z", instantAt(2014, 2, 11, 11, 30, 30, 0)},
		{"year only", "2014", instantAt(2014, 1, 1, 0, 0, 0, 0)},
		{"year month", "2014-02", instantAt(2014, 2, 1, 0, 0, 0, 0)},
		{"day of year", "2014-042", instantAt(2014, 2, 11, 0, 0, 0, 0)},
		{"day of year basic", "2014042", instantAt(2014, 2, 11, 0, 0, 0, 0)},
		{"month day basic", "20140211", instantAt(2014, 2, 11, 0, 0, 0, 0)},
		{"iso week", "2009-W01", instantAt(2008, 12, 29, 0, 0, 0, 0)},
		{"iso week day", "2009-W01-1", instantAt(2008, 12, 29, 0, 0, 0, 0)},
		{"iso week day basic", "2009W537", instantAt(2010, 1, 3, 0, 0, 0, 0)},
		{"century", "20", instantAt(2000, 1, 1, 0, 0, 0, 0)},
		{"extended year", "+002014-02-11", instantAt(2014, 2, 11, 0, 0, 0, 0)},
		{"hours wrap", "2014-02-11T25", instantAt(2014, 2, 11, 1, 0, 0, 0)},
		{"fractional hours", "2014-02-11T11.5", instantAt(2014, 2, 11, 11, 30, 0, 0)},
		{"fractional minutes", "2014-02-11T11:30.5", instantAt(2014, 2, 11, 11, 30, 30, 0)},
		{"fractional seconds with comma", "2014-02-11T11:30:30,5Z", instantAt(2014, 2, 11, 11, 30, 30, 500)},
		{"basic time", "2014-02-11T113030Z", instantAt(2014, 2, 11, 11, 30, 30, 0)},
		{"unrecognized time is midnight", "2014-02-11Tabc", instantAt(2014, 2, 11, 0, 0, 0, 0)},
		{"unrecognized zone is utc", "2014-02-11T11:30+1", instantAt(2014, 2, 11, 11, 30, 0, 0)},
		{"month overflow normalizes", "2014-13-01", instantAt(2015, 1, 1, 0, 0, 0, 0)},
	}

	parser := newUTCParser(t, DefaultAdditionalDigits)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.ToAbsoluteTime(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected instant (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToAbsoluteTimeAdditionalDigits(t *testing.T) {
	tests := []struct {
		name             string
		additionalDigits int
		input            string
		want             types.Instant
	}{
		{"one extra digit with day of year", 1, "+02014101", instantAt(2014, 4, 11, 0, 0, 0, 0)},
		{"no extra digits", 0, "+2014-02-11", instantAt(2014, 2, 11, 0, 0, 0, 0)},
		{"signed century", 0, "+20", instantAt(2000, 1, 1, 0, 0, 0, 0)},
		{"negative extended year", 2, "-000001-01-01T00:00:00Z", instantAt(-1, 1, 1, 0, 0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newUTCParser(t, tt.additionalDigits).ToAbsoluteTime(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected instant (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewDateParserRejectsAdditionalDigits(t *testing.T) {
	for _, digits := range []int{-1, 3, 10} {
		_, err := NewDateParser(digits, time.UTC, nil)
		require.Error(t, err)
		assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	}
}

func TestToAbsoluteTimeLocalOffset(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name     string
		location *time.Location
		input    string
		want     types.Instant
	}{
		{"fixed zone", time.FixedZone("UTC+3", 3*60*60), "2014-02-11T11:30:30", instantAt(2014, 2, 11, 8, 30, 30, 0)},
		{"date only is local midnight", time.FixedZone("UTC+3", 3*60*60), "2014-02-11", instantAt(2014, 2, 10, 21, 0, 0, 0)},
		{"standard time", newYork, "2014-01-15T12:00", instantAt(2014, 1, 15, 17, 0, 0, 0)},
		{"daylight saving time", newYork, "2014-07-01T12:00", instantAt(2014, 7, 1, 16, 0, 0, 0)},
		{"explicit zone ignores location", newYork, "2014-07-01T12:00Z", instantAt(2014, 7, 1, 12, 0, 0, 0)},
		{"after spring forward", newYork, "2014-03-09T03:30", instantAt(2014, 3, 9, 7, 30, 0, 0)},
		{"repeated hour after fall back", newYork, "2014-11-02T01:30", instantAt(2014, 11, 2, 5, 30, 0, 0)},
		{"local mean time uses whole minutes", newYork, "0000", instantAt(0, 1, 1, 4, 56, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := NewDateParser(DefaultAdditionalDigits, tt.location, nil)
			require.NoError(t, err)
			got := parser.ToAbsoluteTime(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected instant (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToAbsoluteTimeFallback(t *testing.T) {
	fallback := &fakeFallback{result: time.Date(2011, 10, 5, 14, 48, 0, 0, time.UTC)}
	parser, err := NewDateParser(DefaultAdditionalDigits, time.UTC, fallback)
	require.NoError(t, err)

	got := parser.ToAbsoluteTime("2011/10/05 14:48 UTC")
	assert.Equal(t, instantAt(2011, 10, 5, 14, 48, 0, 0), got)
	assert.Equal(t, []string{"2011/10/05 14:48 UTC"}, fallback.calls)

	fallback.err = errors.New("unparseable")
	assert.False(t, parser.ToAbsoluteTime("not a date").Valid)

	withoutFallback := newUTCParser(t, DefaultAdditionalDigits)
	assert.False(t, withoutFallback.ToAbsoluteTime("not a date").Valid)
}

func TestToAbsoluteTimeBareTimeUsesFallback(t *testing.T) {
	fallback := &fakeFallback{err: errors.New("no date")}
	parser, err := NewDateParser(DefaultAdditionalDigits, time.UTC, fallback)
	require.NoError(t, err)

	assert.False(t, parser.ToAbsoluteTime("14:30").Valid)
	assert.Equal(t, []string{"14:30"}, fallback.calls)
}

func TestToAbsoluteTimeNonStrings(t *testing.T) {
	parser := newUTCParser(t, DefaultAdditionalDigits)
	source := time.Date(2018, 5, 18, 2, 3, 55, 123456789, time.UTC)

	tests := []struct {
		name  string
		input any
		want  types.Instant
	}{
		{"int64 millis", int64(1526609035000), instantAt(2018, 5, 18, 2, 3, 55, 0)},
		{"int millis", 0, types.InstantFromMillis(0)},
		{"uint millis", uint32(1000), types.InstantFromMillis(1000)},
		{"float truncates toward zero", -1.9, types.InstantFromMillis(-1)},
		{"nan", math.NaN(), types.InvalidInstant},
		{"infinity", math.Inf(1), types.InvalidInstant},
		{"out of range", int64(8_640_000_000_000_001), types.InvalidInstant},
		{"upper bound", types.MaxInstantMillis, types.InstantFromMillis(types.MaxInstantMillis)},
		{"time value", source, instantAt(2018, 5, 18, 2, 3, 55, 123)},
		{"time pointer", &source, instantAt(2018, 5, 18, 2, 3, 55, 123)},
		{"nil time pointer", (*time.Time)(nil), types.InvalidInstant},
		{"instant", types.InstantFromMillis(42), types.InstantFromMillis(42)},
		{"invalid instant", types.InvalidInstant, types.InvalidInstant},
		{"nil", nil, types.InvalidInstant},
		{"unsupported", struct{}{}, types.InvalidInstant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.ToAbsoluteTime(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected instant (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToAbsoluteTimeCopiesTimePointer(t *testing.T) {
	parser := newUTCParser(t, DefaultAdditionalDigits)
	source := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

	got := parser.ToAbsoluteTime(&source)
	source = source.Add(time.Hour)

	assert.Equal(t, instantAt(2020, 1, 2, 3, 4, 5, 0), got)
}

func TestSplitDateString(t *testing.T) {
	tests := []struct {
		input string
		want  types.DateStrings
	}{
		{
			input: "2014-02-11T11:30:30+01:00",
			want: types.DateStrings{
				Date: "2014-02-11", HasDate: true,
				Time: "11:30:30", HasTime: true,
				Timezone: "+01:00", HasTimezone: true,
			},
		},
		{
			input: "2014-02-11",
			want:  types.DateStrings{Date: "2014-02-11", HasDate: true},
		},
		{
			input: "14:30",
			want:  types.DateStrings{Time: "14:30", HasTime: true},
		},
		{
			input: "14:30Z",
			want:  types.DateStrings{Time: "14:30", HasTime: true, Timezone: "Z", HasTimezone: true},
		},
		{
			input: "2014-02-11 08:00-05",
			want: types.DateStrings{
				Date: "2014-02-11", HasDate: true,
				Time: "08:00", HasTime: true,
				Timezone: "-05", HasTimezone: true,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, splitDateString(tt.input)); diff != "" {
				t.Fatalf("unexpected segments (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDayOfISOYear(t *testing.T) {
	tests := []struct {
		year, week, day int
		want            time.Time
	}{
		{2009, 0, 0, time.Date(2008, 12, 29, 0, 0, 0, 0, time.UTC)},
		{2015, 0, 3, time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)},
		{2020, 52, 6, time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got := dayOfISOYear(tt.year, tt.week, tt.day)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("unexpected date for %d-W%02d-%d (-want +got):\n%s", tt.year, tt.week+1, tt.day+1, diff)
		}
	}
}

func TestParseTimezone(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"Z", 0},
		{"+01:00", -60},
		{"-01:00", 60},
		{"+0530", -330},
		{"-08", 480},
		{"+1", 0},
		{"UTC", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseTimezone(tt.input), tt.input)
	}
}
