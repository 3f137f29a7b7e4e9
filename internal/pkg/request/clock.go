package request

import (
	"regexp"
	"strconv"
	"strings"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// Clock is a wall-clock time of day. Hour 24 only appears as "24:00".
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// OnTheHour reports whether minutes and seconds are zero.
func (c Clock) OnTheHour() bool {
	return c.Minute == 0 && c.Second == 0
}

// ParseClock parses "H:MM", "HH:MM" or "HH:MM:SS", with "24:00" as the
// latest value. Surrounding spaces are ignored.
func ParseClock(s string) (Clock, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Clock{}, false
	}
	var c Clock
	c.Hour, _ = strconv.Atoi(m[1])
	c.Minute, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		c.Second, _ = strconv.Atoi(m[3])
	}
	if c.Hour == 24 {
		return c, c.OnTheHour()
	}
	if c.Hour > 23 || c.Minute > 59 || c.Second > 59 {
		return Clock{}, false
	}
	return c, true
}

// IsClock reports whether s is a wall-clock time of day.
func IsClock(s string) bool {
	_, ok := ParseClock(s)
	return ok
}

// WholeHour parses an operating-hours boundary such as "08:00" or "24:00".
func WholeHour(s string) (int, bool) {
	c, ok := ParseClock(s)
	if !ok || !c.OnTheHour() {
		return 0, false
	}
	return c.Hour, true
}
