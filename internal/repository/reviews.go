package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinesense/cinesense/internal/domain"
)

// ReviewsRepository provides persistence helpers for reviews.
type ReviewsRepository struct {
	pool *pgxpool.Pool
}

// ReviewCreateParams captures the payload required to insert a scored review.
type ReviewCreateParams struct {
	MovieID        int64
	Author         string
	Content        string
	SentimentScore float64
}

const reviewJoinColumns = `
    r.id,
    r.movie_id,
    m.title AS movie_title,
    r.author,
    r.content,
    r.sentiment_score,
    r.created_at
`

// Create inserts a scored review and re-reads it joined with its movie so
// the result carries the denormalized title. Insert and re-read share one
// transaction: a failure on either leaves no row behind.
func (r *ReviewsRepository) Create(ctx context.Context, params ReviewCreateParams) (domain.Review, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Review{}, fmt.Errorf("begin review tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var reviewID int64
	err = tx.QueryRow(ctx, `
        INSERT INTO reviews (movie_id, author, content, sentiment_score)
        VALUES ($1,$2,$3,$4)
        RETURNING id
    `, params.MovieID, params.Author, params.Content, params.SentimentScore).Scan(&reviewID)
	if err != nil {
		// A movie deleted between the handler's existence check and this
		// insert trips the foreign key; that is still a missing movie.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, fmt.Errorf("insert review: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT %s
        FROM reviews r
        JOIN movies m ON r.movie_id = m.id
        WHERE r.id = $1
    `, reviewJoinColumns)

	review, err := scanReview(tx.QueryRow(ctx, query, reviewID))
	if err != nil {
		return domain.Review{}, fmt.Errorf("read back review: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Review{}, fmt.Errorf("commit review tx: %w", err)
	}
	return review, nil
}

// ListRecent returns up to limit reviews across all movies, newest first.
func (r *ReviewsRepository) ListRecent(ctx context.Context, limit int) ([]domain.Review, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM reviews r
        JOIN movies m ON r.movie_id = m.id
        ORDER BY r.created_at DESC
        LIMIT $1
    `, reviewJoinColumns)

	return r.queryReviews(ctx, query, limit)
}

// ListForMovie returns all reviews for one movie, newest first. A movie
// with no reviews (or an unknown id) yields an empty slice, not an error.
func (r *ReviewsRepository) ListForMovie(ctx context.Context, movieID int64) ([]domain.Review, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM reviews r
        JOIN movies m ON r.movie_id = m.id
        WHERE r.movie_id = $1
        ORDER BY r.created_at DESC
    `, reviewJoinColumns)

	return r.queryReviews(ctx, query, movieID)
}

// Delete removes a single review by id.
func (r *ReviewsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReviewsRepository) queryReviews(ctx context.Context, query string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanReview(row pgx.Row) (domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.MovieID,
		&review.MovieTitle,
		&review.Author,
		&review.Content,
		&review.SentimentScore,
		&review.CreatedAt,
	)
	if err != nil {
		return domain.Review{}, err
	}
	return review, nil
}
