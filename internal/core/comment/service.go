// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
ListByReview returns the comments of a review, newest first.

Description: The existence check and the comment read run concurrently. A
review with no comments yields an empty slice; a missing review yields
NOT_FOUND.
*/
func (service *Service) ListByReview(context context.Context, reviewID int) ([]*Comment, error) {
	var (
		exists   bool
		comments []*Comment
	)

	group, groupContext := errgroup.WithContext(context)
	group.Go(func() error {
		var err error
		exists, err = service.repo.ReviewExists(groupContext, reviewID)
		return err
	})
	group.Go(func() error {
		var err error
		comments, err = service.repo.ListByReview(groupContext, reviewID)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("review")
	}
	if comments == nil {
		comments = []*Comment{}
	}
	return comments, nil
}

func (service *Service) Create(context context.Context, reviewID int, input CreateInput) (*Comment, error) {
	comment, err := service.repo.Create(context, reviewID, input)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "comment_created",
		slog.Int("comment_id", comment.ID),
		slog.Int("review_id", reviewID),
		slog.String("author", comment.Author),
	)
	return comment, nil
}

func (service *Service) IncrementVotes(context context.Context, id, delta int) (*Comment, error) {
	return service.repo.IncrementVotes(context, id, delta)
}

func (service *Service) Delete(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.InfoContext(context, "comment_deleted", slog.Int("comment_id", id))
	return nil
}
