// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/core/review"
	"github.com/taibuivan/tabletop/internal/platform/respond"
)

func newTestRouter() (http.Handler, *memoryStore) {
	store := newSeededStore()
	handler := review.NewHandler(review.NewService(store, discardLogger()))

	router := chi.NewRouter()
	router.Route("/api/reviews", handler.RegisterRoutes)
	return router, store
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

type listBody struct {
	Reviews review.Page `json:"reviews"`
}

// # Listing

/*
TestHTTP_ListReviews wraps the page under "reviews".
*/
func TestHTTP_ListReviews(t *testing.T) {
	router, _ := newTestRouter()

	recorder := serve(router, http.MethodGet, "/api/reviews", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body listBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body.Reviews.Rows, 10)
	assert.Equal(t, 13, body.Reviews.TotalCount)
	assert.Contains(t, recorder.Body.String(), `"comment_count"`)
}

/*
TestHTTP_ListReviews_Query forwards every listing parameter.
*/
func TestHTTP_ListReviews_Query(t *testing.T) {
	router, _ := newTestRouter()

	query := url.Values{}
	query.Set("sort_by", "votes")
	query.Set("order_by", "asc")
	query.Set("category", "social deduction")
	query.Set("limit", "5")
	query.Set("p", "3")

	recorder := serve(router, http.MethodGet, "/api/reviews?"+query.Encode(), "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body listBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body.Reviews.Rows, 1)
	assert.Equal(t, 11, body.Reviews.TotalCount)
	assert.Equal(t, 16, body.Reviews.Rows[0].Votes)
}

/*
TestHTTP_ListReviews_EmptyCategory answers 200 with an empty array, not null.
*/
func TestHTTP_ListReviews_EmptyCategory(t *testing.T) {
	router, _ := newTestRouter()

	recorder := serve(router, http.MethodGet, "/api/reviews?category="+url.QueryEscape("children's games"), "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"reviews":{"rows":[],"total_count":0}}`, recorder.Body.String())
}

/*
TestHTTP_ListReviews_Errors maps validation to 400 and unknown categories to 404.
*/
func TestHTTP_ListReviews_Errors(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		status  int
		message string
	}{
		{"bad_sort", "sort_by=title", http.StatusBadRequest, "Invalid Request"},
		{"bad_order", "order_by=sideways", http.StatusBadRequest, "Invalid Request"},
		{"bad_limit", "limit=ten", http.StatusBadRequest, "Invalid Request"},
		{"bad_page", "p=-1", http.StatusBadRequest, "Invalid Request"},
		{"unknown_category", "category=bananas", http.StatusNotFound, "Not Found"},
	}

	router, _ := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(router, http.MethodGet, "/api/reviews?"+tt.query, "")
			assert.Equal(t, tt.status, recorder.Code)

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, tt.message, envelope.Message)
		})
	}
}

// # Single Review

/*
TestHTTP_GetReview covers the found, missing and malformed id cases.
*/
func TestHTTP_GetReview(t *testing.T) {
	router, _ := newTestRouter()

	recorder := serve(router, http.MethodGet, "/api/reviews/2", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Review review.Review `json:"review"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Jenga", body.Review.Title)
	assert.Equal(t, 3, body.Review.CommentCount)

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/api/reviews/9999", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/api/reviews/not-an-id", "").Code)
}

/*
TestHTTP_CreateReview answers 201 and normalizes the category slug.
*/
func TestHTTP_CreateReview(t *testing.T) {
	router, store := newTestRouter()

	payload := `{
		"owner": "mallionaire",
		"title": "Brass",
		"review_body": "Canals first, then rail.",
		"designer": "Martin Wallace",
		"category": " euro game ",
		"extra": "ignored"
	}`
	recorder := serve(router, http.MethodPost, "/api/reviews", payload)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created review.Review
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, 14, created.ID)
	assert.Equal(t, "euro game", created.Category)
	assert.Equal(t, 0, created.CommentCount)

	total, err := store.CountReviews(t.Context(), "euro game")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

/*
TestHTTP_CreateReview_Invalid rejects missing fields and unknown categories.
*/
func TestHTTP_CreateReview_Invalid(t *testing.T) {
	router, _ := newTestRouter()

	recorder := serve(router, http.MethodPost, "/api/reviews", `{"owner":"mallionaire"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	payload := `{"owner":"mallionaire","title":"Brass","review_body":"x","designer":"y","category":"bananas"}`
	recorder = serve(router, http.MethodPost, "/api/reviews", payload)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestHTTP_PatchVotes adds inc_votes and requires it to be present.
*/
func TestHTTP_PatchVotes(t *testing.T) {
	router, _ := newTestRouter()

	recorder := serve(router, http.MethodPatch, "/api/reviews/2", `{"inc_votes": -2}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var updated review.Review
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	assert.Equal(t, 3, updated.Votes)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPatch, "/api/reviews/2", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPatch, "/api/reviews/2", `{"inc_votes":"cat"}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPatch, "/api/reviews/9999", `{"inc_votes":1}`).Code)
}

/*
TestHTTP_DeleteReview answers 204 once and 404 afterwards.
*/
func TestHTTP_DeleteReview(t *testing.T) {
	router, _ := newTestRouter()

	recorder := serve(router, http.MethodDelete, "/api/reviews/2", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodDelete, "/api/reviews/2", "").Code)
}
