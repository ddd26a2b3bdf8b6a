// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/validate"
	"github.com/taibuivan/tabletop/pkg/pagination"
	"github.com/taibuivan/tabletop/pkg/slice"
)

// # Query Engine

// QueryEngine answers review listing requests. It holds no mutable state and
// is safe for concurrent use.
type QueryEngine struct {
	store  ListingStore
	logger *slog.Logger
}

// NewQueryEngine constructs a [QueryEngine] reading through store.
func NewQueryEngine(store ListingStore, logger *slog.Logger) *QueryEngine {
	return &QueryEngine{store: store, logger: logger}
}

/*
ListReviews validates the raw listing parameters and returns one page of reviews.

Description: The category slugs are read fresh on every call. The category is
matched byte for byte; only an empty value means no filter. Shape checks on
sort_by, order_by, limit and p run before the category lookup, so a malformed
parameter is reported even when the category is unknown too. The page and the
total count are then read concurrently.

Parameters:
  - context: context.Context
  - params: ListParams (raw query-string values, empty means absent)

Returns:
  - *Page: The sorted window and the filtered total
  - error: VALIDATION_ERROR, NOT_FOUND (unknown category) or INTERNAL_ERROR
*/
func (engine *QueryEngine) ListReviews(context context.Context, params ListParams) (*Page, error) {

	// 1. Live category set
	slugs, err := engine.store.ListCategorySlugs(context)
	if err != nil {
		return nil, gatewayFailure("list_category_slugs", err)
	}

	// 2. Shape validation
	query, err := parseListParams(params)
	if err != nil {
		return nil, err
	}

	// 3. Category existence
	if query.Category != "" && !slices.Contains(slugs, query.Category) {
		return nil, apperr.NotFound(FieldCategory)
	}

	// 4. Page and total, concurrently
	var rows []*Review
	var total int

	group, groupCtx := errgroup.WithContext(context)
	group.Go(func() error {
		var err error
		rows, err = engine.store.QueryReviewPage(groupCtx, query)
		if err != nil {
			return gatewayFailure("query_review_page", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		total, err = engine.store.CountReviews(groupCtx, query.Category)
		if err != nil {
			return gatewayFailure("count_reviews", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []*Review{}
	}

	engine.logger.DebugContext(context, "reviews_listed",
		slog.String("sort", string(query.Sort)),
		slog.String("direction", string(query.Direction)),
		slog.String("category", query.Category),
		slog.Int("limit", query.Limit),
		slog.Int("offset", query.Offset),
		slog.Int("rows", len(rows)),
		slog.Int("total_count", total),
	)

	return &Page{Rows: rows, TotalCount: total}, nil
}

// parseListParams applies defaults and validates the shape of every parameter.
func parseListParams(params ListParams) (PageQuery, error) {
	sortBy := valueOr(params.SortBy, string(SortCreatedAt))
	orderBy := valueOr(params.OrderBy, string(DirectionDesc))
	rawLimit := valueOr(params.Limit, strconv.Itoa(pagination.DefaultLimit))
	rawPage := valueOr(params.Page, strconv.Itoa(pagination.DefaultPage))

	sortNames := slice.Map(SortFields, func(field SortField) string { return string(field) })

	validator := &validate.Validator{}
	validator.
		OneOf(FieldSortBy, sortBy, sortNames...).
		OneOfFold(FieldOrderBy, orderBy, string(DirectionAsc), string(DirectionDesc)).
		Digits(FieldLimit, rawLimit).
		Digits(FieldPage, rawPage)

	if err := validator.Err(); err != nil {
		return PageQuery{}, err
	}

	// Digits guarantees the syntax; Atoi can still overflow.
	limit, limitErr := strconv.Atoi(rawLimit)
	page, pageErr := strconv.Atoi(rawPage)
	validator.
		Custom(FieldLimit, limitErr != nil, "Out of range").
		Custom(FieldPage, pageErr != nil, "Out of range")

	if !validator.HasErrors() && page > 1 && limit > 0 {
		validator.Custom(FieldPage, page-1 > math.MaxInt/limit, "Out of range")
	}

	if err := validator.Err(); err != nil {
		return PageQuery{}, err
	}

	window := pagination.Params{Page: page, Limit: limit}

	return PageQuery{
		Category:  params.Category,
		Sort:      SortField(sortBy),
		Direction: SortDirection(strings.ToUpper(orderBy)),
		Limit:     limit,
		Offset:    window.Offset(),
	}, nil
}

// valueOr returns fallback when value is empty.
func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// gatewayFailure reports a storage failure as INTERNAL_ERROR, keeping the cause.
func gatewayFailure(operation string, err error) error {
	if apperr.HasCode(err, apperr.CodeInternal) {
		return err
	}
	return apperr.Internal(fmt.Errorf("review: %s: %w", operation, err))
}
