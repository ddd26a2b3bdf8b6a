// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import "context"

// ListingStore is the storage gateway the [QueryEngine] reads through.
type ListingStore interface {
	// ListCategorySlugs returns every known category slug, in no particular order.
	ListCategorySlugs(context context.Context) ([]string, error)

	// QueryReviewPage returns one sorted window of reviews with comment counts.
	QueryReviewPage(context context.Context, query PageQuery) ([]*Review, error)

	// CountReviews counts reviews in category, or all reviews when category is empty.
	CountReviews(context context.Context, category string) (int, error)
}

// Repository is the full persistence contract for reviews.
type Repository interface {
	ListingStore

	FindByID(context context.Context, id int) (*Review, error)
	Create(context context.Context, input CreateInput) (*Review, error)
	IncrementVotes(context context.Context, id, delta int) (*Review, error)
	Delete(context context.Context, id int) error
}
