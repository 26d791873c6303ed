package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPClientScore(t *testing.T) {
	var received scoreRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/score" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(scoreResponse{Score: 0.91})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, time.Second, nil)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	score, err := client.Score(context.Background(), "what a film")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 0.91 {
		t.Fatalf("score = %v, want 0.91", score)
	}
	if received.Text != "what a film" {
		t.Fatalf("classifier received %q, want original text", received.Text)
	}
}

func TestHTTPClientScoreUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, time.Second, nil)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	if _, err := client.Score(context.Background(), "text"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Score error = %v, want ErrUnavailable", err)
	}
}

func TestHTTPClientScoreRejectsOutOfRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(scoreResponse{Score: 1.7})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, time.Second, nil)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	if _, err := client.Score(context.Background(), "text"); err == nil {
		t.Fatalf("expected error for score outside [0,1]")
	}
}

func TestHTTPClientScoreTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}

	if _, err := client.Score(context.Background(), "text"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Score error = %v, want ErrUnavailable on timeout", err)
	}
}
