package sentiment

import (
	"context"
	"errors"
)

// NeutralScore substitutes for the model output whenever the classifier
// cannot produce a usable score: degenerate input, upstream failure, or
// timeout. Classifier trouble is never fatal to a review submission.
const NeutralScore = 0.5

// MaxInputRunes matches the model's maximum input length; longer review
// text is truncated before scoring.
const MaxInputRunes = 512

// ErrUnavailable is returned when the upstream classifier cannot be reached
// or answers with an unexpected status.
var ErrUnavailable = errors.New("sentiment: classifier unavailable")

// Classifier scores review text, returning a value in [0.0, 1.0] where 1.0
// is most positive. Implementations must be safe for concurrent use.
type Classifier interface {
	Score(ctx context.Context, text string) (float64, error)
}

// Label buckets a score into the presentation categories shared by every
// consumer of sentiment data.
func Label(score float64) string {
	switch {
	case score >= 0.7:
		return "positive"
	case score >= 0.4:
		return "neutral"
	default:
		return "negative"
	}
}
