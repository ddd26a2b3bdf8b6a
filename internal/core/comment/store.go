// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository defines the data access contract for comments.
type Repository interface {
	// ListByReview returns a review's comments, newest first.
	ListByReview(context context.Context, reviewID int) ([]*Comment, error)

	// ReviewExists reports whether the review is present.
	ReviewExists(context context.Context, reviewID int) (bool, error)

	Create(context context.Context, reviewID int, input CreateInput) (*Comment, error)
	IncrementVotes(context context.Context, id, delta int) (*Comment, error)
	Delete(context context.Context, id int) error
}
