package parsers

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// noExpirySentinel is the literal the source system writes into the expiry
// column when a lot intentionally has no expiry date. It must be checked
// before any digit-based interpretation.
const noExpirySentinel = "4292552277"

var sixDigitsRe = regexp.MustCompile(`^[0-9]{6}$`)

// Layouts tried by the generic fallback, most common first. Day before month
// throughout; the source never emits month-first dates.
var expiryLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
}

// DecodeExpiry resolves a raw expiry cell under the three known encodings,
// first match wins:
//
//  1. the no-expiry sentinel -> nil (intentionally absent, not a failure)
//  2. exactly 6 digits -> DDMMYY with the year offset from 2000, built
//     directly from its components so the day/month order is never inferred
//  3. a generic date-string parse over expiryLayouts, normalizing Buddhist
//     calendar years
//
// Every strategy is total: anything unrecognized decodes to nil.
func DecodeExpiry(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" || s == noExpirySentinel {
		return nil
	}

	if sixDigitsRe.MatchString(s) {
		day, _ := strconv.Atoi(s[0:2])
		month, _ := strconv.Atoi(s[2:4])
		yy, _ := strconv.Atoi(s[4:6])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			return nil
		}
		t := time.Date(2000+yy, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return &t
	}

	for _, layout := range expiryLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() > 2400 {
			// Buddhist calendar year (พ.ศ.), e.g. 2567 -> 2024.
			t = time.Date(t.Year()-543, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return &t
	}
	return nil
}
