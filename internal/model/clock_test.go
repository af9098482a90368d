package model

import (
	"testing"
	"time"
)

func TestTimeToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"23:59", 1439},
		{"9", 540},
		{"9:", 540},
		{" 14:05 ", 845},
		{"", -1},
		{"24:00", -1},
		{"12:60", -1},
		{"ab:cd", -1},
	}
	for _, tc := range cases {
		if got := TimeToMinutes(tc.in); got != tc.want {
			t.Fatalf("TimeToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestMinutesToTime(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{510, "08:30"},
		{1439, "23:59"},
		{65, "01:05"},
	}
	for _, tc := range cases {
		if got := MinutesToTime(tc.in); got != tc.want {
			t.Fatalf("MinutesToTime(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClockRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m += 17 {
		if got := TimeToMinutes(MinutesToTime(m)); got != m {
			t.Fatalf("round trip %d gave %d", m, got)
		}
	}
}

func TestDateHelpers(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if d.Weekday() != time.Wednesday {
		t.Fatalf("2024-01-10 should be Wednesday, got %s", d.Weekday())
	}
	if next := d.AddDays(3); next != Date("2024-01-13") {
		t.Fatalf("AddDays(3) = %s", next)
	}
	if !d.Before(Date("2024-01-11")) || d.Before(Date("2024-01-09")) {
		t.Fatalf("Before comparison is wrong for %s", d)
	}
	if _, err := ParseDate("10/01/2024"); err == nil {
		t.Fatal("expected error for slash-formatted date")
	}
}

func TestHoursToMinutes(t *testing.T) {
	if got := HoursToMinutes(1.5); got != 90 {
		t.Fatalf("HoursToMinutes(1.5) = %d", got)
	}
	if got := HoursToMinutes(0.25); got != 15 {
		t.Fatalf("HoursToMinutes(0.25) = %d", got)
	}
}
