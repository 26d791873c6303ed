package domain

// Movie represents the canonical movie entity in the database/service.
// ReleaseDate and Genre are free-form text supplied by the dashboard and
// are stored as-is.
type Movie struct {
	ID          int64
	Title       string
	ReleaseDate string
	Director    string
	Genre       string
	PosterURL   string
}

// MovieWithStats pairs a movie with its review aggregates, computed fresh
// on every read. AverageRating is nil when the movie has no reviews so a
// missing mean is distinguishable from an all-negative one.
type MovieWithStats struct {
	Movie
	ReviewCount   int64
	AverageRating *float64
}
