package control

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/golang/glog"
)

type apolloQuery struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// NewHandler serves the store's GraphQL API: GET /api/v1/graphql?query=...
// and POST /api/v2/graphql with an apollo style JSON body.
func NewHandler(s *Store) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/graphql", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		query := r.URL.Query().Get("query")
		if glog.V(2) {
			glog.Info(query)
		}
		writeResult(w, s, query, nil)
	})

	mux.HandleFunc("/api/v2/graphql", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		var q apolloQuery
		if err := json.Unmarshal(body, &q); err != nil {
			glog.Warningf("bad graphql request: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if glog.V(2) {
			glog.Infof("%s %v", q.Query, q.Variables)
		}
		writeResult(w, s, q.Query, q.Variables)
	})

	return mux
}

func writeResult(w http.ResponseWriter, s *Store, query string, vars map[string]interface{}) {
	res := s.Query(query, vars)
	for _, err := range res.Errors {
		glog.Warningf("graphql: %v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		glog.Errorf("writing graphql response: %v", err)
	}
}
