// Command sentiment-mock serves a stand-in for the sentiment inference
// service so the full stack can run locally without a real model. It scores
// text with a small word lexicon, which is enough to exercise the positive,
// neutral, and negative bands.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
)

var defaultLexicon = map[string]float64{
	"amazing":     0.25,
	"great":       0.2,
	"masterful":   0.25,
	"brilliant":   0.25,
	"stunning":    0.2,
	"good":        0.15,
	"enjoyable":   0.15,
	"touching":    0.15,
	"boring":      -0.2,
	"bad":         -0.15,
	"terrible":    -0.25,
	"awful":       -0.25,
	"dull":        -0.2,
	"confusing":   -0.1,
	"overrated":   -0.15,
	"forgettable": -0.2,
}

type scoreRequest struct {
	Text string `json:"text"`
}

type scoreResponse struct {
	Score float64 `json:"score"`
}

func main() {
	var (
		port    = flag.String("port", "9099", "port to listen on")
		lexPath = flag.String("lexicon", "", "optional JSON file of word weights")
	)
	flag.Parse()

	lexicon := defaultLexicon
	if *lexPath != "" {
		payload, err := os.ReadFile(*lexPath)
		if err != nil {
			log.Fatalf("read lexicon: %v", err)
		}
		if err := json.Unmarshal(payload, &lexicon); err != nil {
			log.Fatalf("parse lexicon: %v", err)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/score", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(scoreResponse{Score: scoreText(lexicon, req.Text)}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	addr := ":" + *port
	log.Printf("mock sentiment classifier listening on %s (%d lexicon entries)", addr, len(lexicon))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func scoreText(lexicon map[string]float64, text string) float64 {
	score := 0.5
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()")
		score += lexicon[word]
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
