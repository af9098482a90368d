package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day in YYYY-MM-DD form. The string representation
// sorts chronologically, so dates double as map keys and sort keys.
type Date string

func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date(s), nil
}

func (d Date) IsValid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}

func (d Date) String() string {
	return string(d)
}

// TimeToMinutes converts an HH:MM clock string to minutes since midnight.
// A bare hour ("9") counts as the top of that hour. Malformed input
// returns -1; callers validate before doing arithmetic.
func TimeToMinutes(clock string) int {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return -1
	}
	hourPart, minutePart, _ := strings.Cut(clock, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return -1
	}
	minute := 0
	if minutePart != "" {
		minute, err = strconv.Atoi(minutePart)
		if err != nil || minute < 0 || minute > 59 {
			return -1
		}
	}
	return hour*60 + minute
}

// MinutesToTime formats minutes since midnight as zero-padded HH:MM.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// HoursToMinutes rounds a fractional hour count to whole minutes.
func HoursToMinutes(hours float64) int {
	return int(hours*60 + 0.5)
}
