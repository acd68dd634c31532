// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/readmill/bookgraph/internal/config"
	"github.com/readmill/bookgraph/internal/graph"
	"github.com/readmill/bookgraph/internal/recommend"
	"github.com/readmill/bookgraph/internal/users"
)

// newTestServer builds a server over a small fixed catalog:
// dune and hyperion share the scifi genre and an author; ana likes
// dune, bea likes dune and hyperion.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	g := graph.New()

	scifi := graph.BaseIRI + "genre=scifi"
	g.Add(scifi, graph.RDFType, graph.IRI(graph.ClassGenre))
	g.Add(scifi, graph.RDFSLabel, graph.Literal("Science Fiction"))

	for slug, title := range map[string]string{"dune": "Dune", "hyperion": "Hyperion"} {
		book := graph.BookIRI(slug)
		g.Add(book, graph.RDFType, graph.IRI(graph.ClassBook))
		g.Add(book, graph.RDFSLabel, graph.Literal(title))
		g.Add(book, graph.HasGenre, graph.IRI(scifi))
		g.Add(book, graph.HasAuthor, graph.IRI(graph.BaseIRI+"author=shared"))
	}

	for name, likes := range map[string][]string{
		"ana": {"dune"},
		"bea": {"dune", "hyperion"},
	} {
		user := graph.UserIRI(name)
		g.Add(user, graph.RDFType, graph.IRI(graph.ClassUser))
		for _, slug := range likes {
			g.Add(user, graph.Likes, graph.IRI(graph.BookIRI(slug)))
		}
	}

	cfg := recommend.DefaultConfig()
	cfg.Seed = 1
	cfg.Randomness = 0

	handler := NewHandler(
		g,
		recommend.NewWeightedRecommender(cfg),
		recommend.NewCollaborativeRecommender(cfg),
		users.NewService(g, nil),
		nil,
	)
	srvCfg := config.ServerConfig{
		Timeout:         5 * time.Second,
		RateLimitReqs:   0, // disabled in tests
		RateLimitWindow: time.Minute,
		CORSOrigins:     []string{"*"},
	}
	srv := httptest.NewServer(NewRouter(handler, srvCfg).Routes())
	t.Cleanup(srv.Close)
	return srv
}

// getJSON fetches a URL and decodes the envelope.
func getJSON(t *testing.T, url string) (int, APIResponse) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	var env APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	status, env := getJSON(t, srv.URL+"/api/v1/health")
	if status != http.StatusOK || !env.Success {
		t.Fatalf("health = %d success=%v", status, env.Success)
	}
}

func TestBooks_List(t *testing.T) {
	srv := newTestServer(t)
	status, env := getJSON(t, srv.URL+"/api/v1/books")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if env.Meta == nil || env.Meta.Count != 2 {
		t.Errorf("meta count = %+v, want 2", env.Meta)
	}
}

func TestBook_Get(t *testing.T) {
	srv := newTestServer(t)
	status, env := getJSON(t, srv.URL+"/api/v1/books/dune")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data, _ := json.Marshal(env.Data)
	var info recommend.BookInfo
	if err := json.Unmarshal(data, &info); err != nil {
		t.Fatalf("unmarshal book info: %v", err)
	}
	if info.Title != "Dune" {
		t.Errorf("Title = %q, want Dune", info.Title)
	}
	if info.Genre != "Science Fiction" {
		t.Errorf("Genre = %q, want Science Fiction", info.Genre)
	}
}

func TestBook_NotFound(t *testing.T) {
	srv := newTestServer(t)
	status, env := getJSON(t, srv.URL+"/api/v1/books/ghost")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v, want NOT_FOUND", env.Error)
	}
}

func TestSimilarBooks(t *testing.T) {
	srv := newTestServer(t)
	status, env := getJSON(t, srv.URL+"/api/v1/books/dune/similar?k=5&randomness=0")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data, _ := json.Marshal(env.Data)
	var recs []recommend.Recommendation
	if err := json.Unmarshal(data, &recs); err != nil {
		t.Fatalf("unmarshal recommendations: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	// 1/3 genre + 0.5 shared author
	if recs[0].Book != graph.BookIRI("hyperion") || recs[0].Score != 0.833 {
		t.Errorf("rec = %+v, want hyperion at 0.833", recs[0])
	}
}

func TestSimilarBooks_BadParams(t *testing.T) {
	srv := newTestServer(t)
	for _, q := range []string{"?k=abc", "?k=-1", "?randomness=foo"} {
		status, _ := getJSON(t, srv.URL+"/api/v1/books/dune/similar"+q)
		if status != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", q, status)
		}
	}
}

func TestExplainSimilarBooks(t *testing.T) {
	srv := newTestServer(t)
	status, env := getJSON(t, srv.URL+"/api/v1/books/dune/similar/explain")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data, _ := json.Marshal(env.Data)
	var body map[string]string
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal explanation: %v", err)
	}
	if !strings.Contains(body["explanation"], "--- Explanation for: Dune ---") {
		t.Errorf("explanation missing header: %q", body["explanation"])
	}
}

func TestUserRecommendations(t *testing.T) {
	srv := newTestServer(t)
	status, env := getJSON(t, srv.URL+"/api/v1/users/ana/recommendations")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data, _ := json.Marshal(env.Data)
	var recs []recommend.ScoredBook
	if err := json.Unmarshal(data, &recs); err != nil {
		t.Fatalf("unmarshal recommendations: %v", err)
	}
	// bea (sim 1.0) liked hyperion which ana has not.
	if len(recs) != 1 || recs[0].Book != graph.BookIRI("hyperion") || recs[0].Score != 1.0 {
		t.Errorf("recs = %+v, want hyperion at 1.0", recs)
	}
}

func TestUserRecommendations_UnknownUser(t *testing.T) {
	srv := newTestServer(t)
	status, _ := getJSON(t, srv.URL+"/api/v1/users/ghost/recommendations")
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestUpsertUser(t *testing.T) {
	srv := newTestServer(t)

	body := `{"name": "Carla", "age": 31, "liked_books": ["dune"]}`
	resp, err := http.Post(srv.URL+"/api/v1/users", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST users: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var env APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, _ := json.Marshal(env.Data)
	var res users.UpsertResult
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("unmarshal upsert result: %v", err)
	}
	if !res.Created || res.LikesAdded != 1 {
		t.Errorf("result = %+v, want created with 1 like", res)
	}

	// The new user can now get recommendations.
	status, _ := getJSON(t, srv.URL+"/api/v1/users/carla/recommendations")
	if status != http.StatusOK {
		t.Errorf("recommendations for new user: status = %d, want 200", status)
	}
}

func TestUpsertUser_Validation(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"age": 20}`},
		{"bad json", `{`},
		{"age out of range", `{"name": "x", "age": 200}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/v1/users", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST users: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestTopRecommended_Disabled(t *testing.T) {
	srv := newTestServer(t)
	status, env := getJSON(t, srv.URL+"/api/v1/analytics/top-recommended")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 when analytics disabled", status)
	}
	if env.Error == nil || env.Error.Code != ErrCodeServiceUnavailable {
		t.Errorf("error = %+v, want SERVICE_UNAVAILABLE", env.Error)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
