package types

import "time"

const secondsPerDay = 24 * 60 * 60

// DateValue is a calendar date stored as the number of days since 1970-01-01 UTC.
type DateValue int32

// DateOf returns the date containing t, evaluated in t's location.
func DateOf(t time.Time) DateValue {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return DateValue(floorDiv(midnight.Unix(), secondsPerDay))
}

// DateFromYMD returns the date for the given calendar day.
func DateFromYMD(year int, month time.Month, day int) DateValue {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Time returns midnight UTC of the date.
func (d DateValue) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// String formats the date as YYYY-MM-DD.
func (d DateValue) String() string {
	return d.Time().Format(time.DateOnly)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}
