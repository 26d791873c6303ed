package httpserver

import "testing"

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"empty defaults", "", defaultReviewLimit, false},
		{"explicit", "25", 25, false},
		{"capped", "500", maxReviewLimit, false},
		{"trimmed", " 7 ", 7, false},
		{"zero", "0", 0, true},
		{"negative", "-1", 0, true},
		{"garbage", "ten", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLimit(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseLimit(%q) expected error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLimit(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("parseLimit(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
