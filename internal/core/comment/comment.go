// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment owns the comments left on reviews.
package comment

import "time"

// Comment is one user's remark on a review.
type Comment struct {
	ID        int       `json:"comment_id"`
	Body      string    `json:"body"`
	ReviewID  int       `json:"review_id"`
	Author    string    `json:"author"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInput is the body of POST /api/reviews/{review_id}/comments.
// Username becomes the comment's author.
type CreateInput struct {
	Username string `json:"username" validate:"required,max=100"`
	Body     string `json:"body" validate:"required,max=2000"`
}

// VoteInput is the body of PATCH /api/comments/{comment_id}.
type VoteInput struct {
	IncVotes *int `json:"inc_votes" validate:"required"`
}
