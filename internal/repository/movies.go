package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinesense/cinesense/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

// MovieCreateParams bundles the fields required to create a movie.
type MovieCreateParams struct {
	Title       string
	ReleaseDate string
	Director    string
	Genre       string
	PosterURL   string
}

// movieStatsColumns selects a movie with its review aggregates. The LEFT
// JOIN keeps movies with zero reviews in the result, and AVG stays NULL for
// them rather than collapsing to 0.0.
const movieStatsColumns = `
    m.id,
    m.title,
    m.release_date,
    m.director,
    m.genre,
    m.poster_url,
    COUNT(r.id) AS review_count,
    AVG(r.sentiment_score) AS average_rating
`

// Create inserts a new movie row and returns the stored entity.
func (r *MoviesRepository) Create(ctx context.Context, params MovieCreateParams) (domain.Movie, error) {
	const query = `
        INSERT INTO movies (title, release_date, director, genre, poster_url)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, title, release_date, director, genre, poster_url
    `

	var movie domain.Movie
	err := r.pool.QueryRow(ctx, query,
		params.Title, params.ReleaseDate, params.Director, params.Genre, params.PosterURL,
	).Scan(&movie.ID, &movie.Title, &movie.ReleaseDate, &movie.Director, &movie.Genre, &movie.PosterURL)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("insert movie: %w", err)
	}
	return movie, nil
}

// ListWithStats returns every movie joined with its review aggregates,
// most recently created first.
func (r *MoviesRepository) ListWithStats(ctx context.Context) ([]domain.MovieWithStats, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM movies m
        LEFT JOIN reviews r ON m.id = r.movie_id
        GROUP BY m.id
        ORDER BY m.id DESC
    `, movieStatsColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.MovieWithStats, 0)
	for rows.Next() {
		movie, err := scanMovieWithStats(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetWithStats fetches one movie with its review aggregates.
func (r *MoviesRepository) GetWithStats(ctx context.Context, id int64) (domain.MovieWithStats, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM movies m
        LEFT JOIN reviews r ON m.id = r.movie_id
        WHERE m.id = $1
        GROUP BY m.id
    `, movieStatsColumns)

	movie, err := scanMovieWithStats(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.MovieWithStats{}, ErrNotFound
		}
		return domain.MovieWithStats{}, err
	}
	return movie, nil
}

// Exists reports whether the given movie id references a movie.
func (r *MoviesRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check movie exists: %w", err)
	}
	return exists, nil
}

// Delete removes a movie; dependent reviews go with it via the cascade rule.
func (r *MoviesRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMovieWithStats(row pgx.Row) (domain.MovieWithStats, error) {
	var (
		movie         domain.MovieWithStats
		averageRating *float64
	)
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.ReleaseDate,
		&movie.Director,
		&movie.Genre,
		&movie.PosterURL,
		&movie.ReviewCount,
		&averageRating,
	)
	if err != nil {
		return domain.MovieWithStats{}, err
	}
	movie.AverageRating = averageRating
	return movie, nil
}
