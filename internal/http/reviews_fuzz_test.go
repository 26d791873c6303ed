package httpserver

import "testing"

func FuzzParseLimit(f *testing.F) {
	seeds := []string{"", "10", "100", "101", "-5", "abc", " 3 "}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		limit, err := parseLimit(raw)
		if err != nil {
			return
		}
		if limit <= 0 || limit > maxReviewLimit {
			t.Fatalf("parseLimit(%q) = %d outside (0, %d]", raw, limit, maxReviewLimit)
		}
	})
}
