package fifa

import (
	"errors"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTeamID(t *testing.T) {
	tests := []struct {
		href    string
		want    string
		wantErr bool
	}{
		{"/team/1/manchester-united/", "1", false},
		{"/team/11/manchester-city/?r=230001", "11", false},
		{"https://sofifa.com/team/1943/brentford/", "1943", false},
		{"/team/1/manchester-united", "", true},
		{"/team/abc/arsenal/", "", true},
		{"/player/12345/john-doe/0", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			got, err := TeamID(tt.href)
			if tt.wantErr {
				if !errors.Is(err, ErrNoIdentifier) {
					t.Fatalf("TeamID(%q) error = %v, want ErrNoIdentifier", tt.href, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("TeamID(%q) unexpected error: %v", tt.href, err)
			}
			if got != tt.want {
				t.Errorf("TeamID(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

func TestPlayerID(t *testing.T) {
	tests := []struct {
		href    string
		want    string
		wantErr bool
	}{
		{"/player/12345/john-doe/0", "12345", false},
		{"/player/20801/cristiano-ronaldo/230001/", "20801", false},
		{"https://sofifa.com/player/268550/joshua-feeney/230001", "268550", false},
		{"/player/12345/john-doe/", "", true},
		{"/player/12345", "", true},
		{"/team/1/manchester-united/", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			got, err := PlayerID(tt.href)
			if tt.wantErr {
				if !errors.Is(err, ErrNoIdentifier) {
					t.Fatalf("PlayerID(%q) error = %v, want ErrNoIdentifier", tt.href, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("PlayerID(%q) unexpected error: %v", tt.href, err)
			}
			if got != tt.want {
				t.Errorf("PlayerID(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}

func TestSeasonCode(t *testing.T) {
	tests := []struct {
		label   string
		want    string
		wantErr bool
	}{
		{"2023", "23", false},
		{"2022/2023", "23", false},
		{"2007/2008", "08", false},
		{"  2019/2020\n", "20", false},
		{"1999", "99", false},
		{"23", "", true},
		{"2022/23", "", true},
		{"2022-2023", "", true},
		{"Season 2023", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := SeasonCode(tt.label)
			if tt.wantErr {
				if !errors.Is(err, ErrSeasonNotDetected) {
					t.Fatalf("SeasonCode(%q) error = %v, want ErrSeasonNotDetected", tt.label, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SeasonCode(%q) unexpected error: %v", tt.label, err)
			}
			if got != tt.want {
				t.Errorf("SeasonCode(%q) = %q, want %q", tt.label, got, tt.want)
			}
			if len(got) != 2 {
				t.Errorf("SeasonCode(%q) = %q, want 2 characters", tt.label, got)
			}
		})
	}
}

func TestSeasonCode_AllYears(t *testing.T) {
	for year := 1990; year <= 2099; year++ {
		single := strconv.Itoa(year)
		split := strconv.Itoa(year-1) + "/" + single
		want := single[2:]

		for _, label := range []string{single, split} {
			got, err := SeasonCode(label)
			if err != nil || got != want {
				t.Fatalf("SeasonCode(%q) = %q, %v; want %q", label, got, err, want)
			}
		}
	}
}

func TestParseSeasonCode(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"7", "07", false},
		{"07", "07", false},
		{"23", "23", false},
		{"2023", "23", false},
		{"2022/2023", "23", false},
		{"x", "", true},
		{"-1", "", true},
		{"123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeasonCode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeasonCode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSeasonCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSeasonRange(t *testing.T) {
	got, err := SeasonRange("7", "11")
	if err != nil {
		t.Fatalf("SeasonRange() error: %v", err)
	}
	if diff := cmp.Diff([]string{"07", "08", "09", "10", "11"}, got); diff != "" {
		t.Errorf("SeasonRange() mismatch (-want +got):\n%s", diff)
	}

	if _, err := SeasonRange("23", "07"); err == nil {
		t.Error("SeasonRange(23, 07) expected error for reversed range")
	}
	if _, err := SeasonRange("x", "07"); err == nil {
		t.Error("SeasonRange(x, 07) expected error")
	}
}

func TestSeasonRange_CenturyBoundary(t *testing.T) {
	got, err := SeasonRange("97", "02")
	if err != nil {
		t.Fatalf("SeasonRange(97, 02) error: %v", err)
	}
	if diff := cmp.Diff([]string{"97", "98", "99", "00", "01", "02"}, got); diff != "" {
		t.Errorf("SeasonRange(97, 02) mismatch (-want +got):\n%s", diff)
	}
	if _, err := SeasonRange("02", "99"); err == nil {
		t.Error("SeasonRange(02, 99) expected error for reversed range")
	}
}

func TestSeasonYear(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"23", "2023"},
		{"07", "2007"},
		{"00", "2000"},
		{"68", "2068"},
		{"69", "1969"},
		{"99", "1999"},
		{"x", "x"},
	}

	for _, tt := range tests {
		if got := SeasonYear(tt.code); got != tt.want {
			t.Errorf("SeasonYear(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}

	if _, err := EndingYear("123"); !errors.Is(err, ErrSeasonNotDetected) {
		t.Errorf("EndingYear(123) error = %v, want ErrSeasonNotDetected", err)
	}
}
