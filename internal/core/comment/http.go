// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tabletop/internal/platform/request"
	"github.com/taibuivan/tabletop/internal/platform/respond"
)

const (
	ParamReviewID  = "review_id"
	ParamCommentID = "comment_id"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterReviewRoutes mounts the endpoints scoped to /api/reviews/{review_id}/comments.
func (handler *Handler) RegisterReviewRoutes(router chi.Router) {
	router.Get("/", handler.listComments)
	router.Post("/", handler.createComment)
}

// RegisterRoutes mounts the endpoints scoped to /api/comments.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Patch("/{comment_id}", handler.patchVotes)
	router.Delete("/{comment_id}", handler.deleteComment)
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, ParamReviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.service.ListByReview(request.Context(), reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]any{"comments": comments})
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	reviewID, err := requestutil.IntParam(request, ParamReviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) patchVotes(writer http.ResponseWriter, request *http.Request) {
	commentID, err := requestutil.IntParam(request, ParamCommentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input VoteInput
	if err := requestutil.DecodeAndValidate(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.IncrementVotes(request.Context(), commentID, *input.IncVotes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	commentID, err := requestutil.IntParam(request, ParamCommentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
