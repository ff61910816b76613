package dates

import (
	"testing"
	"time"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"mid month", time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC), 1, time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC)},
		{"clamps to february", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"leap february", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"year rollover", time.Date(2025, 12, 15, 9, 30, 0, 0, time.UTC), 1, time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)},
		{"many months", time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), 24, time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"thirty day month", time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddMonths(tt.in, tt.n); !got.Equal(tt.want) {
				t.Fatalf("AddMonths(%s, %d) = %s, want %s", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-06-15")
	if err != nil {
		t.Fatalf("ParseDate err: %v", err)
	}
	if !got.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("got %s", got)
	}

	got, err = ParseDate("2025-06-15T10:00:00+03:00")
	if err != nil {
		t.Fatalf("ParseDate rfc3339 err: %v", err)
	}
	if !got.Equal(time.Date(2025, 6, 15, 7, 0, 0, 0, time.UTC)) || got.Location() != time.UTC {
		t.Fatalf("got %s", got)
	}

	if _, err := ParseDate("15/06/2025"); err != ErrInvalidDate {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
	if FormatDate(got) != "2025-06-15" {
		t.Fatalf("FormatDate = %s", FormatDate(got))
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 3, 1, 1, 30, 0, 0, time.FixedZone("EAT", 3*3600)) // Feb 28 22:30 UTC
	if got := StartOfDay(in); !got.Equal(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("StartOfDay = %s", got)
	}
}
