package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func BenchmarkHandleCreateReview(b *testing.B) {
	srv := buildTestServer(b, &stubClassifier{score: 0.7})

	rec := doJSON(b, srv, http.MethodPost, "/movies", map[string]string{"title": "Benchmark Movie"})
	var movie movieResponse
	decodeBody(b, rec, &movie)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		payload := []byte(fmt.Sprintf(`{"movie_id":%d,"author":"bench-%d","content":"a perfectly serviceable film"}`, movie.ID, i))
		req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		srv.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
		}
	}
}
