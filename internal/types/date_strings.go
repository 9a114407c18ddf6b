package types

// DateStrings holds the segments of a date string split on the date/time
// delimiter and the timezone designator.
type DateStrings struct {
	Date        string
	HasDate     bool
	Time        string
	HasTime     bool
	Timezone    string
	HasTimezone bool
}
