// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/slug"
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

func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.repo.List(context)
}

// CreateCategory stores a category under its NFC-normalized slug.
func (service *Service) CreateCategory(context context.Context, input CreateInput) (*Category, error) {
	input.Slug = slug.Normalize(input.Slug)

	validator := &validate.Validator{}
	validator.Required("slug", input.Slug)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	category, err := service.repo.Create(context, input)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "category_created", slog.String("slug", category.Slug))
	return category, nil
}
