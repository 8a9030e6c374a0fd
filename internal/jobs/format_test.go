package jobs

import (
	"testing"
	"time"
)

func TestFormatIDR(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{500, "Rp\u00a0500"},
		{750_000, "Rp\u00a0750\u00a0rb"},
		{5_000_000, "Rp\u00a05\u00a0jt"},
		{5_500_000, "Rp\u00a05,5\u00a0jt"},
		{12_345_678, "Rp\u00a012,3\u00a0jt"},
		{999_960, "Rp\u00a01\u00a0jt"},
		{2_000_000_000, "Rp\u00a02\u00a0M"},
		{3_000_000_000_000, "Rp\u00a03\u00a0T"},
	}
	for _, tc := range cases {
		if got := FormatIDR(tc.in); got != tc.want {
			t.Errorf("FormatIDR(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatPaycheck(t *testing.T) {
	cases := []struct {
		name   string
		lo, hi int64
		want   string
	}{
		{"undisclosed", 0, 0, "Undisclosed"},
		{"range", 5_000_000, 7_500_000, "Rp\u00a05\u00a0jt - Rp\u00a07,5\u00a0jt"},
		{"from", 5_000_000, 0, "From Rp\u00a05\u00a0jt"},
		{"up to", 0, 8_000_000, "Up to Rp\u00a08\u00a0jt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatPaycheck(tc.lo, tc.hi); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatDateIDUsesWIB(t *testing.T) {
	got := FormatDateID(time.Date(2024, time.March, 9, 20, 0, 0, 0, time.UTC))
	if got != "10 Maret 2024" {
		t.Fatalf("got %q", got)
	}
	if got := FormatDateID(time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)); got != "1 Desember 2023" {
		t.Fatalf("got %q", got)
	}
}

func TestHireRate(t *testing.T) {
	if got := HireRate(1, 3); got != 33.3 {
		t.Fatalf("HireRate(1,3) = %v", got)
	}
	if got := HireRate(0, 0); got != 0 {
		t.Fatalf("HireRate(0,0) = %v", got)
	}
	if got := HireRate(2, 0); got != 200 {
		t.Fatalf("HireRate(2,0) = %v", got)
	}
}

func TestWebsiteURL(t *testing.T) {
	cases := map[string]string{
		"":                   "",
		"acme.id":            "https://acme.id",
		" acme.id ":          "https://acme.id",
		"http://acme.id":     "http://acme.id",
		"https://acme.id/us": "https://acme.id/us",
	}
	for in, want := range cases {
		if got := WebsiteURL(in); got != want {
			t.Errorf("WebsiteURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayFallbacks(t *testing.T) {
	if got := displayLocation(Job{Location: "bandung"}, "Jakarta"); got != "BANDUNG" {
		t.Fatalf("job location: %q", got)
	}
	if got := displayLocation(Job{}, "Jakarta"); got != "JAKARTA" {
		t.Fatalf("company address: %q", got)
	}
	if got := displayLocation(Job{}, ""); got != "JOB LOCATION" {
		t.Fatalf("fallback: %q", got)
	}
	if got := displayLevel(""); got != "ANY" {
		t.Fatalf("level: %q", got)
	}
	if got := displayType("FULL_TIME"); got != "FULL TIME" {
		t.Fatalf("type: %q", got)
	}
	if got := displayType("A_B_C"); got != "A B_C" {
		t.Fatalf("type replaces first underscore only: %q", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Senior Café Engineer!": "senior-cafe-engineer",
		"  Go / Rust  dev ":     "go-rust-dev",
		"!!!":                   "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
