package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cinesense/cinesense/internal/domain"
	"github.com/cinesense/cinesense/internal/repository"
)

const (
	defaultReviewLimit = 10
	maxReviewLimit     = 100
)

type reviewCreateRequest struct {
	MovieID int64  `json:"movie_id"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

type reviewResponse struct {
	ID             int64   `json:"id"`
	MovieID        int64   `json:"movie_id"`
	MovieTitle     string  `json:"movie_title"`
	Author         string  `json:"author"`
	Content        string  `json:"content"`
	SentimentScore float64 `json:"sentiment_score"`
	CreatedAt      string  `json:"created_at"`
}

// handleCreateReview runs the review pipeline: verify the parent movie,
// score the content, persist, and return the enriched record. The order
// matters: a missing movie aborts before the classifier or any write.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	if req.MovieID <= 0 {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "movie_id is required")
		return
	}
	if strings.TrimSpace(req.Author) == "" || strings.TrimSpace(req.Content) == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "author and content are required")
		return
	}

	exists, err := s.repo.Movies.Exists(r.Context(), req.MovieID)
	if err != nil {
		s.logger.Error("movie lookup failed", zap.Int64("movie_id", req.MovieID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create review")
		return
	}
	if !exists {
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
		return
	}

	score := s.analyzer.Analyze(r.Context(), req.Content)

	review, err := s.repo.Reviews.Create(r.Context(), repository.ReviewCreateParams{
		MovieID:        req.MovieID,
		Author:         req.Author,
		Content:        req.Content,
		SentimentScore: score,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
			return
		}
		s.logger.Error("create review failed", zap.Int64("movie_id", req.MovieID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create review")
		return
	}

	s.respondJSON(w, http.StatusOK, toReviewResponse(review))
}

func (s *Server) handleListRecentReviews(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	reviews, err := s.repo.Reviews.ListRecent(r.Context(), limit)
	if err != nil {
		s.logger.Error("list recent reviews failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reviews")
		return
	}

	s.respondJSON(w, http.StatusOK, toReviewResponses(reviews))
}

func (s *Server) handleListMovieReviews(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	reviews, err := s.repo.Reviews.ListForMovie(r.Context(), id)
	if err != nil {
		s.logger.Error("list movie reviews failed", zap.Int64("movie_id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reviews")
		return
	}

	s.respondJSON(w, http.StatusOK, toReviewResponses(reviews))
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if err := s.repo.Reviews.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Review not found")
			return
		}
		s.logger.Error("delete review failed", zap.Int64("review_id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete review")
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "review deleted"})
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultReviewLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit value")
	}
	if limit > maxReviewLimit {
		limit = maxReviewLimit
	}
	return limit, nil
}

func toReviewResponse(review domain.Review) reviewResponse {
	return reviewResponse{
		ID:             review.ID,
		MovieID:        review.MovieID,
		MovieTitle:     review.MovieTitle,
		Author:         review.Author,
		Content:        review.Content,
		SentimentScore: review.SentimentScore,
		CreatedAt:      review.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toReviewResponses(reviews []domain.Review) []reviewResponse {
	items := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, toReviewResponse(review))
	}
	return items
}
