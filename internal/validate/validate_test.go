package validate

import (
	"errors"
	"testing"
)

func TestName(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"David", true},
		{"Mary-Jane", true},
		{"De La Cruz", true},
		{"", false},
		{"OedipaMaasOfSanNarciso", false}, // over 15 characters
		{"R2D2", false},
		{"O'Brien", false},
	}
	for _, tc := range cases {
		_, err := Name(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("Name(%q): ok=%v, err=%v", tc.in, tc.ok, err)
		}
	}
}

func TestDate(t *testing.T) {
	if _, err := Date("31-01-2024"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	for _, in := range []string{"2024-01-31", "31/01/2024", "32-01-2024", "29-02-2023", ""} {
		if _, err := Date(in); err == nil {
			t.Fatalf("Date(%q) accepted", in)
		}
	}
}

func TestClock(t *testing.T) {
	got, err := Clock("09:30")
	if err != nil || got != "09:30" {
		t.Fatalf("Clock(09:30): %q, %v", got, err)
	}
	for _, in := range []string{"24:00", "9:3", "09:60", "0930", ""} {
		if _, err := Clock(in); err == nil {
			t.Fatalf("Clock(%q) accepted", in)
		}
	}
}

func TestAmount(t *testing.T) {
	d, err := Amount("15.50")
	if err != nil || d.StringFixed(2) != "15.50" {
		t.Fatalf("Amount(15.50): %s, %v", d, err)
	}
	var fieldErr *FieldError
	if _, err := Amount("15.5"); !errors.As(err, &fieldErr) {
		t.Fatalf("Amount(15.5) did not return a FieldError: %v", err)
	}
	if fieldErr.Kind != "amount" {
		t.Fatalf("unexpected error kind %q", fieldErr.Kind)
	}
}

func TestCategoryID(t *testing.T) {
	cases := []struct {
		in string
		id int64
		ok bool
	}{
		{"1000", 1000, true},
		{"9999", 9999, true},
		{"999", 0, false},
		{"10000", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		id, err := CategoryID(tc.in)
		if tc.ok != (err == nil) || id != tc.id {
			t.Fatalf("CategoryID(%q): id=%d, err=%v", tc.in, id, err)
		}
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"january.txt", true},
		{"expenses-2024.csv", true},
		{"", false},
		{"report", false},        // no extension
		{"report.html", false},   // extension too long
		{"what?.txt", false},     // illegal character
		{"CON.txt", false},       // reserved name
		{"con.txt", false},       // reserved, case-insensitive
		{"report:2024.txt", false},
	}
	for _, tc := range cases {
		_, err := Filename(tc.in)
		if tc.ok != (err == nil) {
			t.Fatalf("Filename(%q): ok=%v, err=%v", tc.in, tc.ok, err)
		}
	}
}
