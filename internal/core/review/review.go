// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review owns board-game reviews: the listing query engine and the
single-review operations (fetch, create, vote, delete).

# Listing

[QueryEngine] turns raw query-string values into a validated [PageQuery],
then reads one page and the total count from a [ListingStore]. Sorting is
restricted to a closed set of fields, each mapped by the store to a fixed
SQL token, so caller text never reaches the statement.
*/
package review

import "time"

// # Domain Entities

// Review is a published board-game review together with its live comment count.
type Review struct {
	ID           int       `json:"review_id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Designer     string    `json:"designer"`
	Owner        string    `json:"owner"`
	ReviewBody   string    `json:"review_body"`
	ReviewImgURL string    `json:"review_img_url"`
	CreatedAt    time.Time `json:"created_at"`
	Votes        int       `json:"votes"`

	// CommentCount is computed per query, never stored.
	CommentCount int `json:"comment_count"`
}

// Page is one window of the listing plus the size of the filtered population.
type Page struct {
	Rows       []*Review `json:"rows"`
	TotalCount int       `json:"total_count"`
}

// # Sorting

// SortField is a column the listing may be ordered by.
type SortField string

const (
	SortCreatedAt    SortField = "created_at"
	SortVotes        SortField = "votes"
	SortCommentCount SortField = "comment_count"
)

// SortFields lists every accepted sort_by value.
var SortFields = []SortField{SortCreatedAt, SortVotes, SortCommentCount}

// SortDirection is ASC or DESC.
type SortDirection string

const (
	DirectionAsc  SortDirection = "ASC"
	DirectionDesc SortDirection = "DESC"
)

// # Listing Inputs

// ListParams carries the listing query values exactly as received.
// An empty string means the parameter was not supplied.
type ListParams struct {
	SortBy   string
	OrderBy  string
	Category string
	Limit    string
	Page     string
}

// PageQuery is a validated listing request handed to the store.
type PageQuery struct {
	// Category filters by slug; empty means every category.
	Category  string
	Sort      SortField
	Direction SortDirection
	Limit     int
	Offset    int
}

// # Write Inputs

// CreateInput is the body of POST /api/reviews.
type CreateInput struct {
	Owner        string `json:"owner" validate:"required,max=100"`
	Title        string `json:"title" validate:"required,max=300"`
	ReviewBody   string `json:"review_body" validate:"required"`
	Designer     string `json:"designer" validate:"required,max=200"`
	Category     string `json:"category" validate:"required,max=100"`
	ReviewImgURL string `json:"review_img_url" validate:"omitempty,url"`
}

// VoteInput is the body of PATCH /api/reviews/{review_id}.
type VoteInput struct {
	IncVotes *int `json:"inc_votes" validate:"required"`
}

// # Field Names

const (
	FieldSortBy   = "sort_by"
	FieldOrderBy  = "order_by"
	FieldCategory = "category"
	FieldLimit    = "limit"
	FieldPage     = "p"
	FieldIncVotes = "inc_votes"
)
