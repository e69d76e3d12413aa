package engine

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// IST is the zone every Indian government and news source publishes in.
// Falls back to a fixed +05:30 zone when tzdata is unavailable.
var IST = loadIST()

func loadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

var ordinalRe = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)

// NormalizeDate collapses whitespace and strips ordinal suffixes ("5th" -> "5").
func NormalizeDate(raw string) string {
	s := CollapseSpace(raw)
	s = ordinalRe.ReplaceAllString(s, "$1")
	return strings.Trim(s, " -–—|")
}

// ParseDate tries each layout against the normalized string, with and without
// commas, then falls back to dateparse. Zone-less results are placed in loc.
func ParseDate(raw string, loc *time.Location, layouts ...string) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := NormalizeDate(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	noComma := CollapseSpace(strings.ReplaceAll(s, ",", " "))

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
		if t, err := time.ParseInLocation(strings.ReplaceAll(layout, ",", ""), noComma, loc); err == nil {
			return t, nil
		}
	}

	if t, err := dateparse.ParseIn(s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}
