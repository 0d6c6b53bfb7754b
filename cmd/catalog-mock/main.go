package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type candidateEntry struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Genres        []json.RawMessage `json:"genres"`
	Runtime       *int              `json:"runtime"`
	ReleaseDate   *string           `json:"releaseDate"`
	Certification *string           `json:"certification"`
	VoteAverage   float64           `json:"voteAverage"`
	ProviderIDs   []int64           `json:"providerIds"`
	ParentalGuide *json.RawMessage  `json:"parentalGuide"`
	Reasoning     []string          `json:"reasoning"`
}

func main() {
	var (
		port    = flag.String("port", "9098", "port to listen on")
		data    = flag.String("data", "mock-catalog.json", "path to mock data file")
		verbose = flag.Bool("log", false, "enable request logging")
	)
	flag.Parse()

	file, err := os.ReadFile(*data)
	if err != nil {
		log.Fatalf("read mock data: %v", err)
	}

	var pool []candidateEntry
	if err := json.Unmarshal(file, &pool); err != nil {
		log.Fatalf("parse mock data: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/candidates", func(w http.ResponseWriter, r *http.Request) {
		if *verbose {
			log.Printf("candidates request: %s", r.URL.RawQuery)
		}
		filtered := filterPool(pool, r.URL.Query().Get("providers"), r.URL.Query().Get("startYear"))
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"candidates": filtered}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	addr := ":" + *port
	log.Printf("mock catalog listening on %s (%d candidates)", addr, len(pool))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// filterPool honors the hint parameters the way the real catalog does: they
// narrow the pool but the recommendation engine still re-checks everything.
func filterPool(pool []candidateEntry, providers, startYear string) []candidateEntry {
	wantProviders := map[int64]struct{}{}
	for _, raw := range strings.Split(providers, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			wantProviders[id] = struct{}{}
		}
	}
	minYear := 0
	if parsed, err := strconv.Atoi(startYear); err == nil {
		minYear = parsed
	}

	out := make([]candidateEntry, 0, len(pool))
	for _, entry := range pool {
		if len(wantProviders) > 0 && !hasAnyProvider(entry.ProviderIDs, wantProviders) {
			continue
		}
		if minYear > 0 && entry.ReleaseDate != nil && len(*entry.ReleaseDate) >= 4 {
			if year, err := strconv.Atoi((*entry.ReleaseDate)[:4]); err == nil && year < minYear {
				continue
			}
		}
		out = append(out, entry)
	}
	return out
}

func hasAnyProvider(have []int64, want map[int64]struct{}) bool {
	for _, id := range have {
		if _, ok := want[id]; ok {
			return true
		}
	}
	return false
}
