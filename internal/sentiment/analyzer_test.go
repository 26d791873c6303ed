package sentiment

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"
)

type stubClassifier struct {
	score float64
	err   error
	calls atomic.Int64
	last  atomic.Value
}

func (s *stubClassifier) Score(ctx context.Context, text string) (float64, error) {
	s.calls.Add(1)
	s.last.Store(text)
	if s.err != nil {
		return 0, s.err
	}
	return s.score, nil
}

func newTestAnalyzer(t *testing.T, classifier Classifier) *Analyzer {
	t.Helper()
	analyzer, err := NewAnalyzer(classifier, 16, time.Second, nil)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	return analyzer
}

func TestAnalyzePassesThroughScore(t *testing.T) {
	stub := &stubClassifier{score: 0.82}
	analyzer := newTestAnalyzer(t, stub)

	got := analyzer.Analyze(context.Background(), "a genuinely great movie")
	if got != 0.82 {
		t.Fatalf("Analyze = %v, want 0.82", got)
	}
}

func TestAnalyzeSubstitutesNeutralOnFailure(t *testing.T) {
	stub := &stubClassifier{err: errors.New("model exploded")}
	analyzer := newTestAnalyzer(t, stub)

	got := analyzer.Analyze(context.Background(), "some review text")
	if got != NeutralScore {
		t.Fatalf("Analyze = %v, want neutral %v on classifier failure", got, NeutralScore)
	}
}

func TestAnalyzeDegenerateTextSkipsClassifier(t *testing.T) {
	stub := &stubClassifier{score: 0.9}
	analyzer := newTestAnalyzer(t, stub)

	for _, text := range []string{"", "   ", "a", "\t\n"} {
		if got := analyzer.Analyze(context.Background(), text); got != NeutralScore {
			t.Fatalf("Analyze(%q) = %v, want neutral", text, got)
		}
	}
	if calls := stub.calls.Load(); calls != 0 {
		t.Fatalf("classifier called %d times for degenerate input, want 0", calls)
	}
}

func TestAnalyzeMemoizesByExactText(t *testing.T) {
	stub := &stubClassifier{score: 0.66}
	analyzer := newTestAnalyzer(t, stub)

	first := analyzer.Analyze(context.Background(), "same text in")
	second := analyzer.Analyze(context.Background(), "same text in")
	if first != second {
		t.Fatalf("same text produced different scores: %v vs %v", first, second)
	}
	if calls := stub.calls.Load(); calls != 1 {
		t.Fatalf("classifier called %d times, want 1 (memoized)", calls)
	}

	analyzer.Analyze(context.Background(), "different text")
	if calls := stub.calls.Load(); calls != 2 {
		t.Fatalf("classifier called %d times after new text, want 2", calls)
	}
}

func TestAnalyzeFailuresAreNotCached(t *testing.T) {
	stub := &stubClassifier{err: errors.New("down")}
	analyzer := newTestAnalyzer(t, stub)

	analyzer.Analyze(context.Background(), "retry me later")
	stub.err = nil
	stub.score = 0.75

	if got := analyzer.Analyze(context.Background(), "retry me later"); got != 0.75 {
		t.Fatalf("Analyze after recovery = %v, want 0.75", got)
	}
}

func TestAnalyzeTruncatesLongInput(t *testing.T) {
	stub := &stubClassifier{score: 0.5}
	analyzer := newTestAnalyzer(t, stub)

	long := strings.Repeat("수", MaxInputRunes*2)
	analyzer.Analyze(context.Background(), long)

	sent, _ := stub.last.Load().(string)
	if got := utf8.RuneCountInString(sent); got != MaxInputRunes {
		t.Fatalf("classifier received %d runes, want %d", got, MaxInputRunes)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1.0, "positive"},
		{0.7, "positive"},
		{0.69, "neutral"},
		{0.4, "neutral"},
		{0.39, "negative"},
		{0.0, "negative"},
	}
	for _, tt := range tests {
		if got := Label(tt.score); got != tt.want {
			t.Fatalf("Label(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func FuzzLabel(f *testing.F) {
	f.Add(0.0)
	f.Add(0.5)
	f.Add(1.0)
	f.Fuzz(func(t *testing.T, score float64) {
		switch Label(score) {
		case "positive", "neutral", "negative":
		default:
			t.Fatalf("Label(%v) produced unknown label", score)
		}
	})
}
