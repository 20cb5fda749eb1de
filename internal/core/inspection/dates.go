package inspection

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the only accepted textual form for inspection dates.
const DateLayout = "02.01.2006"

// time.Parse alone is too lenient: it accepts single-digit days and months.
var dateRe = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// ParseDate parses a strict DD.MM.YYYY date. The second return value is
// false when the text does not match the format or does not denote a real
// calendar date.
func ParseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if !dateRe.MatchString(text) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, text)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
