// Bookgraph - Knowledge Graph Book Recommendations
// Copyright 2026 Readmill Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/readmill/bookgraph

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/readmill/bookgraph/internal/analytics"
	"github.com/readmill/bookgraph/internal/graph"
	"github.com/readmill/bookgraph/internal/logging"
	"github.com/readmill/bookgraph/internal/metrics"
	"github.com/readmill/bookgraph/internal/recommend"
	"github.com/readmill/bookgraph/internal/users"
)

// Handler holds the dependencies the endpoints use.
type Handler struct {
	graph     *graph.Store
	weighted  *recommend.WeightedRecommender
	collab    *recommend.CollaborativeRecommender
	users     *users.Service
	analytics *analytics.Store // nil when analytics is disabled
	validate  *validator.Validate
}

// NewHandler creates the endpoint handler set.
func NewHandler(g *graph.Store, w *recommend.WeightedRecommender, c *recommend.CollaborativeRecommender, u *users.Service, a *analytics.Store) *Handler {
	return &Handler{
		graph:     g,
		weighted:  w,
		collab:    c,
		users:     u,
		analytics: a,
		validate:  validator.New(),
	}
}

// BookSummary is one catalog listing row.
type BookSummary struct {
	Book  string `json:"book"`
	Title string `json:"title"`
}

// Health reports liveness and the current graph size.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"status":  "ok",
		"triples": h.graph.Len(),
	})
}

// Books lists the catalog, insertion order.
func (h *Handler) Books(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	subjects := h.graph.SubjectsOfType(graph.ClassBook)
	out := make([]BookSummary, 0, len(subjects))
	for _, s := range subjects {
		title := graph.LocalName(s)
		if v, ok := h.graph.Value(s, graph.RDFSLabel); ok {
			title = v.Value
		}
		out = append(out, BookSummary{Book: s, Title: title})
	}
	rw.SuccessWithCount(out, len(out))
}

// Book returns the resolved metadata for one book.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	book, ok := h.resolveBook(rw, r)
	if !ok {
		return
	}
	rw.Success(recommend.GetBookInfo(h.graph, book))
}

// SimilarBooks returns weighted item-to-item recommendations.
func (h *Handler) SimilarBooks(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	book, ok := h.resolveBook(rw, r)
	if !ok {
		return
	}
	topN, ok := queryInt(rw, r, "k", 0)
	if !ok {
		return
	}
	randomness, ok := queryFloat(rw, r, "randomness", -1)
	if !ok {
		return
	}

	start := time.Now()
	recs, err := h.weighted.Recommend(r.Context(), h.graph, book, topN, randomness)
	metrics.RecordRecommendation("weighted", len(recs), time.Since(start), err, errReason(r.Context(), err))
	if err != nil {
		rw.InternalError("Failed to compute recommendations")
		return
	}
	h.recordImpressions(r.Context(), "weighted", book, recs)
	rw.SuccessWithCount(recs, len(recs))
}

// ExplainSimilarBooks returns the text explanation for the weighted
// recommendations, computed without jitter so the scores are the pure
// graph evidence.
func (h *Handler) ExplainSimilarBooks(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	book, ok := h.resolveBook(rw, r)
	if !ok {
		return
	}
	topN, ok := queryInt(rw, r, "k", 0)
	if !ok {
		return
	}

	recs, err := h.weighted.Recommend(r.Context(), h.graph, book, topN, 0)
	if err != nil {
		rw.InternalError("Failed to compute recommendations")
		return
	}
	rw.Success(map[string]string{
		"explanation": h.weighted.ExplainRecommendations(h.graph, book, recs),
	})
}

// UserRecommendations returns collaborative recommendations.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userKey := graph.UserIRI(chi.URLParam(r, "userID"))
	if !h.graph.Has(userKey, graph.RDFType, graph.IRI(graph.ClassUser)) {
		rw.NotFound("User not found")
		return
	}
	topN, ok := queryInt(rw, r, "k", 0)
	if !ok {
		return
	}

	start := time.Now()
	recs, err := h.collab.Recommend(r.Context(), h.graph, userKey, topN)
	metrics.RecordRecommendation("collaborative", len(recs), time.Since(start), err, errReason(r.Context(), err))
	if err != nil {
		rw.InternalError("Failed to compute recommendations")
		return
	}
	if h.analytics != nil {
		imps := make([]analytics.Impression, 0, len(recs))
		for _, rec := range recs {
			imps = append(imps, analytics.Impression{
				Strategy: "collaborative", Target: userKey, Book: rec.Book, Score: rec.Score,
			})
		}
		if err := h.analytics.RecordImpressions(r.Context(), imps); err != nil {
			logging.Warn().Err(err).Msg("Failed to record impressions")
		}
	}
	rw.SuccessWithCount(recs, len(recs))
}

// UpsertUserRequest is the POST /users body.
type UpsertUserRequest struct {
	Name       string   `json:"name" validate:"required,min=1,max=200"`
	Age        int      `json:"age" validate:"omitempty,gte=0,lte=150"`
	LikedBooks []string `json:"liked_books" validate:"omitempty,dive,min=1"`
}

// UpsertUser creates or updates a user and their likes.
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req UpsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("Invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		rw.ValidationError("Invalid user", validationDetails(err))
		return
	}

	res, err := h.users.Upsert(r.Context(), users.User{
		Name:       req.Name,
		Age:        req.Age,
		LikedBooks: req.LikedBooks,
	})
	if err != nil {
		if errors.Is(err, users.ErrEmptyName) {
			rw.BadRequest("User name is empty")
			return
		}
		rw.InternalError("Failed to upsert user")
		return
	}
	if res.Created {
		rw.Created(res)
		return
	}
	rw.Success(res)
}

// TopRecommended returns the most frequently recommended books.
func (h *Handler) TopRecommended(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.analytics == nil {
		rw.ServiceUnavailable("Analytics is disabled")
		return
	}
	limit, ok := queryInt(rw, r, "limit", 10)
	if !ok {
		return
	}
	top, err := h.analytics.TopRecommended(r.Context(), limit)
	if err != nil {
		logging.Error().Err(err).Msg("Top recommended query failed")
		rw.InternalError("Failed to query analytics")
		return
	}
	rw.SuccessWithCount(top, len(top))
}

// resolveBook maps the bookID path segment (a catalog slug or full IRI)
// to a Book subject, writing 404 when absent.
func (h *Handler) resolveBook(rw *ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "bookID")
	candidates := []string{graph.BookIRI(id), id}
	for _, c := range candidates {
		if h.graph.Has(c, graph.RDFType, graph.IRI(graph.ClassBook)) {
			return c, true
		}
	}
	rw.NotFound("Book not found")
	return "", false
}

// recordImpressions persists served weighted recommendations.
func (h *Handler) recordImpressions(ctx context.Context, strategy, target string, recs []recommend.Recommendation) {
	if h.analytics == nil || len(recs) == 0 {
		return
	}
	imps := make([]analytics.Impression, 0, len(recs))
	for _, rec := range recs {
		imps = append(imps, analytics.Impression{
			Strategy: strategy, Target: target, Book: rec.Book, Score: rec.Score,
		})
	}
	if err := h.analytics.RecordImpressions(ctx, imps); err != nil {
		logging.Warn().Err(err).Msg("Failed to record impressions")
	}
}

// queryInt parses an optional integer query parameter.
func queryInt(rw *ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		rw.BadRequest("Invalid " + name + " parameter")
		return 0, false
	}
	return v, true
}

// queryFloat parses an optional float query parameter.
func queryFloat(rw *ResponseWriter, r *http.Request, name string, def float64) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		rw.BadRequest("Invalid " + name + " parameter")
		return 0, false
	}
	return v, true
}

// errReason classifies a recommendation error for metrics labels.
func errReason(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return ""
	case ctx.Err() != nil:
		return "cancelled"
	case strings.Contains(err.Error(), "not found"):
		return "not_found"
	default:
		return "internal"
	}
}

// validationDetails flattens validator errors into field -> rule pairs.
func validationDetails(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}
