package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cinesense/cinesense/internal/domain"
	"github.com/cinesense/cinesense/internal/repository"
)

const maxRequestBody = 1 << 20 // 1 MiB

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type movieCreateRequest struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Director    string `json:"director"`
	Genre       string `json:"genre"`
	PosterURL   string `json:"poster_url"`
}

type movieResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Director    string `json:"director"`
	Genre       string `json:"genre"`
	PosterURL   string `json:"poster_url"`
}

type movieWithStatsResponse struct {
	movieResponse
	ReviewCount   int64    `json:"review_count"`
	AverageRating *float64 `json:"average_rating"`
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required")
		return
	}

	movie, err := s.repo.Movies.Create(r.Context(), repository.MovieCreateParams{
		Title:       strings.TrimSpace(req.Title),
		ReleaseDate: req.ReleaseDate,
		Director:    req.Director,
		Genre:       req.Genre,
		PosterURL:   req.PosterURL,
	})
	if err != nil {
		s.logger.Error("create movie failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create movie")
		return
	}

	s.respondJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.repo.Movies.ListWithStats(r.Context())
	if err != nil {
		s.logger.Error("list movies failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies")
		return
	}

	items := make([]movieWithStatsResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, toMovieWithStatsResponse(movie))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movie, err := s.repo.Movies.GetWithStats(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
			return
		}
		s.logger.Error("get movie failed", zap.Int64("movie_id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch movie")
		return
	}

	s.respondJSON(w, http.StatusOK, toMovieWithStatsResponse(movie))
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if err := s.repo.Movies.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
			return
		}
		s.logger.Error("delete movie failed", zap.Int64("movie_id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete movie")
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "movie deleted"})
}

func toMovieResponse(movie domain.Movie) movieResponse {
	return movieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		ReleaseDate: movie.ReleaseDate,
		Director:    movie.Director,
		Genre:       movie.Genre,
		PosterURL:   movie.PosterURL,
	}
}

func toMovieWithStatsResponse(movie domain.MovieWithStats) movieWithStatsResponse {
	return movieWithStatsResponse{
		movieResponse: toMovieResponse(movie.Movie),
		ReviewCount:   movie.ReviewCount,
		AverageRating: movie.AverageRating,
	}
}

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id parameter")
	}
	return id, nil
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error("encode response failed", zap.Error(err))
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}
