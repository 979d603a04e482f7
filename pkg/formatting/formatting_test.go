package formatting_test

import (
	"testing"

	"github.com/gidroatlas/gidroatlas/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"1024", 1024, false},
		{"512B", 512, false},
		{"20MB", 20 * 1024 * 1024, false},
		{"10mb", 10 * 1024 * 1024, false},
		{"1.5 KB", 1536, false},
		{"  2GB ", 2 * 1024 * 1024 * 1024, false},
		{"", 0, true},
		{"MB", 0, true},
		{"50XX", 0, true},
		{"-5MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBytes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{500, 0, "500 B"},
		{1024, 0, "1 KB"},
		{1536 * 1024, 1, "1.5 MB"},
		{20 * 1024 * 1024, -1, "20 MB"},
	}

	for _, tt := range tests {
		if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
			t.Errorf("FormatBytes(%d, %d) = %s, want %s", tt.n, tt.precision, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{0.12345, 3, 0.123},
		{0.9996, 3, 1},
		{3.25, 1, 3.3},
		{2.0 / 3.0, 1, 0.7},
	}

	for _, tt := range tests {
		if got := formatting.Round(tt.v, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.v, tt.places, got, tt.want)
		}
	}
}

func TestDecimal(t *testing.T) {
	if got := formatting.Decimal(3, 1); got != "3.0" {
		t.Errorf("Decimal(3, 1) = %s, want 3.0", got)
	}
}
