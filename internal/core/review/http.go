// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tabletop/internal/platform/request"
	"github.com/taibuivan/tabletop/internal/platform/respond"
)

// ParamReviewID is the chi URL parameter holding a review id.
const ParamReviewID = "review_id"

// # Handler Implementation

// Handler implements the HTTP layer for reviews.
type Handler struct {
	service *Service
}

// NewHandler constructs a review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the review endpoints on a router scoped to /api/reviews.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listReviews)
	router.Post("/", handler.createReview)
	router.Get("/{review_id}", handler.getReview)
	router.Patch("/{review_id}", handler.patchVotes)
	router.Delete("/{review_id}", handler.deleteReview)
}

/*
GET /api/reviews.

Description: Lists reviews. Accepts sort_by, order_by, category, limit and p.

Response:
  - 200: {"reviews": {"rows": [...], "total_count": n}}
  - 400: malformed parameter
  - 404: unknown category
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	queryParams := request.URL.Query()

	page, err := handler.service.ListReviews(request.Context(), ListParams{
		SortBy:   queryParams.Get(FieldSortBy),
		OrderBy:  queryParams.Get(FieldOrderBy),
		Category: queryParams.Get(FieldCategory),
		Limit:    queryParams.Get(FieldLimit),
		Page:     queryParams.Get(FieldPage),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"reviews": page})
}

/*
GET /api/reviews/{review_id}.

Response:
  - 200: {"review": {...}}
*/
func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, ParamReviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.GetReview(request.Context(), reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"review": review})
}

// createReview handles POST /api/reviews and answers 201 with the stored review.
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

// patchVotes handles PATCH /api/reviews/{review_id} with {"inc_votes": n}.
func (handler *Handler) patchVotes(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, ParamReviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input VoteInput
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.IncrementVotes(request.Context(), reviewID, *input.IncVotes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, ParamReviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteReview(request.Context(), reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
