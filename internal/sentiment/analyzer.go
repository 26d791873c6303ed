package sentiment

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// minMeaningfulRunes is the trimmed length below which text is considered
// too short for the model to judge.
const minMeaningfulRunes = 2

// Analyzer is the pipeline-facing scoring service. It bounds input length,
// memoizes results by exact text, applies a per-call timeout, and degrades
// to NeutralScore instead of failing when the classifier cannot answer.
type Analyzer struct {
	classifier Classifier
	cache      *lru.Cache[string, float64]
	timeout    time.Duration
	logger     *zap.Logger
}

// NewAnalyzer wraps a classifier. cacheSize bounds the text memoization;
// timeout bounds each classifier call.
func NewAnalyzer(classifier Classifier, cacheSize int, timeout time.Duration, logger *zap.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, err := lru.New[string, float64](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		classifier: classifier,
		cache:      cache,
		timeout:    timeout,
		logger:     logger,
	}, nil
}

// Analyze scores the text. It never fails: any condition that prevents a
// real model score yields NeutralScore. The same text always yields the
// same score within a process lifetime.
func (a *Analyzer) Analyze(ctx context.Context, text string) float64 {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minMeaningfulRunes {
		return NeutralScore
	}

	input := truncateRunes(text, MaxInputRunes)
	if score, ok := a.cache.Get(input); ok {
		return score
	}

	callCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	score, err := a.classifier.Score(callCtx, input)
	if err != nil {
		a.logger.Warn("classifier degraded, substituting neutral score", zap.Error(err))
		return NeutralScore
	}

	a.cache.Add(input, score)
	return score
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
