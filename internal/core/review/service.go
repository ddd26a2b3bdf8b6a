// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/slug"
)

// # Service Layer

// Service is the entry point for review operations. Listing is delegated to
// the [QueryEngine]; the rest maps one-to-one onto the [Repository].
type Service struct {
	repo   Repository
	engine *QueryEngine
	logger *slog.Logger
}

// NewService constructs a review [Service] whose engine reads through repo.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		engine: NewQueryEngine(repo, logger),
		logger: logger,
	}
}

// ListReviews returns one page of the listing. See [QueryEngine.ListReviews].
func (service *Service) ListReviews(context context.Context, params ListParams) (*Page, error) {
	return service.engine.ListReviews(context, params)
}

// GetReview returns a review with its comment count, or NOT_FOUND.
func (service *Service) GetReview(context context.Context, id int) (*Review, error) {
	return service.repo.FindByID(context, id)
}

/*
CreateReview stores a new review.

Description: The category slug is normalized before insertion so it matches a
stored category slug. An unknown owner or category surfaces as NOT_FOUND through the
foreign keys.

Returns:
  - *Review: The stored row, comment_count 0
  - error: VALIDATION_ERROR, NOT_FOUND or INTERNAL_ERROR
*/
func (service *Service) CreateReview(context context.Context, input CreateInput) (*Review, error) {
	input.Category = slug.Normalize(input.Category)

	validator := &validate.Validator{}
	validator.Required(FieldCategory, input.Category)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	review, err := service.repo.Create(context, input)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "review_created",
		slog.Int("review_id", review.ID),
		slog.String("owner", review.Owner),
		slog.String("category", review.Category),
	)
	return review, nil
}

// IncrementVotes adds delta (which may be negative) to the review's votes.
func (service *Service) IncrementVotes(context context.Context, id, delta int) (*Review, error) {
	return service.repo.IncrementVotes(context, id, delta)
}

// DeleteReview removes a review and its comments.
func (service *Service) DeleteReview(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "review_deleted", slog.Int("review_id", id))
	return nil
}
