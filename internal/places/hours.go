package places

import (
	"regexp"
	"strconv"
	"strings"
)

// hoursPerWeek is the denominator for uptime: a full 7x24 week.
const hoursPerWeek = 168.0

var timeRangeRe = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(AM|PM)\s*[\x{2013}\x{2014}-]\s*(\d{1,2})(?::(\d{2}))?\s*(AM|PM)`)

// WeeklyUptimePercent parses structured opening-hours text (one line per
// day, e.g. "Monday: 9:00 AM – 5:30 PM, 6:00 PM – 11:00 PM", "Tuesday:
// Open 24 hours", "Sunday: Closed") and returns the share of a 168-hour
// week the business is open, as a percentage. Unparseable or empty input
// yields 0.
func WeeklyUptimePercent(hoursText string) float64 {
	if strings.TrimSpace(hoursText) == "" {
		return 0
	}

	var openHours float64
	for _, line := range strings.Split(hoursText, "\n") {
		openHours += dayOpenHours(line)
	}

	if openHours > hoursPerWeek {
		openHours = hoursPerWeek
	}
	return openHours / hoursPerWeek * 100
}

// dayOpenHours returns the open hours for a single weekday line. Ranges
// that close past midnight ("5:00 PM – 2:00 AM") wrap into the next day.
func dayOpenHours(line string) float64 {
	if strings.Contains(strings.ToLower(line), "open 24 hours") {
		return 24
	}

	var total float64
	for _, m := range timeRangeRe.FindAllStringSubmatch(line, -1) {
		open := clockToHours(m[1], m[2], m[3])
		close := clockToHours(m[4], m[5], m[6])
		if close <= open {
			close += 24
		}
		total += close - open
	}
	if total > 24 {
		total = 24
	}
	return total
}

// clockToHours converts an "h", "mm", "AM|PM" triple to hours since
// midnight.
func clockToHours(hh, mm, meridiem string) float64 {
	h, _ := strconv.Atoi(hh)
	m := 0
	if mm != "" {
		m, _ = strconv.Atoi(mm)
	}
	if h == 12 {
		h = 0
	}
	if strings.EqualFold(meridiem, "PM") {
		h += 12
	}
	return float64(h) + float64(m)/60
}
