package adapters

import (
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFallbackParse(t *testing.T) {
	plusTwo := time.FixedZone("UTC+2", 2*60*60)
	tests := []struct {
		name     string
		input    string
		loc      *time.Location
		expected time.Time
	}{
		{
			name:     "slash date with zone name",
			input:    "2011/10/05 14:48 UTC",
			loc:      plusTwo,
			expected: time.Date(2011, 10, 5, 14, 48, 0, 0, time.UTC),
		},
		{
			name:     "RFC1123 with numeric zone",
			input:    "Mon, 02 Jan 2006 15:04:05 +0100",
			loc:      time.UTC,
			expected: time.Date(2006, 1, 2, 14, 4, 5, 0, time.UTC),
		},
		{
			name:     "lowercase time separator",
			input:    "2014-02-11t11:30",
			loc:      time.UTC,
			expected: time.Date(2014, 2, 11, 11, 30, 0, 0, time.UTC),
		},
		{
			name:     "lowercase separator and zulu",
			input:    "2014-02-11t11:30:15z",
			loc:      plusTwo,
			expected: time.Date(2014, 2, 11, 11, 30, 15, 0, time.UTC),
		},
		{
			name:     "lowercase separator uses location",
			input:    "2014-02-11t11:30",
			loc:      plusTwo,
			expected: time.Date(2014, 2, 11, 9, 30, 0, 0, time.UTC),
		},
		{
			name:     "datetime without timezone uses location",
			input:    "2025-06-15 10:30:00",
			loc:      plusTwo,
			expected: time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "heuristic slash date",
			input:    "2014/04/08 22:05",
			loc:      time.UTC,
			expected: time.Date(2014, 4, 8, 22, 5, 0, 0, time.UTC),
		},
		{
			name:     "leading/trailing whitespace stripped",
			input:    "  2025-06-15 10:30:00  ",
			loc:      time.UTC,
			expected: time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
		},
	}
	adapter := NewDateFallbackAdapter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := adapter.ParseFallback(tt.input, tt.loc)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %s", got)
		})
	}
}

func TestDateFallbackRejects(t *testing.T) {
	adapter := NewDateFallbackAdapter()
	for _, input := range []string{"", "   ", "not-a-date"} {
		_, err := adapter.ParseFallback(input, time.UTC)
		require.Error(t, err, input)
		assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	}
}
