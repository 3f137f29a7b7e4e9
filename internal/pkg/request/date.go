package request

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" calendar date. The result is midnight UTC and
// only its year, month and day are meaningful.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
