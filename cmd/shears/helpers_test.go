package main

import (
	"testing"

	"shears/internal/encode"
)

func TestParseTimecode(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"90", 90, false},
		{"90.5", 90.5, false},
		{"0", 0, false},
		{"01:30", 90, false},
		{"1:02:03", 3723, false},
		{"1:02:03.5", 3723.5, false},
		{"00:00:59.99", 59.99, false},
		{"", 0, true},
		{"-5", 0, true},
		{"1:60:00", 0, true},
		{"1:00:60", 0, true},
		{"1:2:3:4", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range tests {
		got, err := parseTimecode(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseTimecode(%q): expected error, got %v", tc.input, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("parseTimecode(%q) = %v, %v; want %v", tc.input, got, err, tc.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "00:00:00.00"},
		{59.5, "00:00:59.50"},
		{90, "00:01:30.00"},
		{3723.25, "01:02:03.25"},
		{-3, "00:00:00.00"},
	}
	for _, tc := range tests {
		if got := formatSeconds(tc.input); got != tc.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{60_000_000, "57.2 MiB"},
		{5 << 30, "5.0 GiB"},
	}
	for _, tc := range tests {
		if got := formatBytes(tc.input); got != tc.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestDefaultOutputPath(t *testing.T) {
	got := defaultOutputPath("/videos/movie.avi", encode.ContainerMKV)
	if got != "/videos/movie_cut.mkv" {
		t.Fatalf("defaultOutputPath = %q", got)
	}
}
