package domain

import "time"

// Review represents a single sentiment-scored review for a movie.
// MovieTitle is denormalized at read time via a join and never stored.
type Review struct {
	ID             int64
	MovieID        int64
	MovieTitle     string
	Author         string
	Content        string
	SentimentScore float64
	CreatedAt      time.Time
}
