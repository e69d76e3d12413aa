package engine

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"5th March 2024", "5 March 2024"},
		{"1st  Jan,\n 2025", "1 Jan, 2025"},
		{"22nd August 2024", "22 August 2024"},
		{"23rd May 2024", "23 May 2024"},
		{" - 12 June 2024 ", "12 June 2024"},
		{"August 2024", "August 2024"},
	}
	for _, tt := range tests {
		if got := NormalizeDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		layouts []string
		want    time.Time
		wantErr bool
	}{
		{
			name:    "ordinal suffix",
			raw:     "5th March 2024",
			layouts: []string{"2 January 2006"},
			want:    time.Date(2024, 3, 5, 0, 0, 0, 0, IST),
		},
		{
			name:    "broadcast table",
			raw:     "25 Sep 2024 21:30",
			layouts: []string{"02 Jan 2006 15:04"},
			want:    time.Date(2024, 9, 25, 21, 30, 0, 0, IST),
		},
		{
			name:    "comma layout",
			raw:     "March 5, 2024",
			layouts: []string{"January 2, 2006"},
			want:    time.Date(2024, 3, 5, 0, 0, 0, 0, IST),
		},
		{
			name:    "comma in input only",
			raw:     "5 March, 2024",
			layouts: []string{"2 January 2006"},
			want:    time.Date(2024, 3, 5, 0, 0, 0, 0, IST),
		},
		{
			name:    "dateparse fallback",
			raw:     "2024-03-05",
			layouts: []string{"2 January 2006"},
			want:    time.Date(2024, 3, 5, 0, 0, 0, 0, IST),
		},
		{name: "unparseable", raw: "TBD", layouts: []string{"2 January 2006"}, wantErr: true},
		{name: "empty", raw: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.raw, IST, tt.layouts...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) = %v, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error: %v", tt.raw, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseDateSkipsBadItems(t *testing.T) {
	raws := []string{"5th March 2024", "TBD", "6 March 2024"}
	var parsed []time.Time
	for _, r := range raws {
		d, err := ParseDate(r, IST, "2 January 2006")
		if err != nil {
			continue
		}
		parsed = append(parsed, d)
	}
	if len(parsed) != 2 {
		t.Fatalf("parsed %d dates, want 2", len(parsed))
	}
	if parsed[0].Day() != 5 || parsed[0].Month() != time.March || parsed[0].Year() != 2024 {
		t.Errorf("first date = %v", parsed[0])
	}
}
