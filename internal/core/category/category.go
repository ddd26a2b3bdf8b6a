// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

// Category groups reviews by the kind of game. Slug is its primary key.
type Category struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CreateInput is the body of POST /api/categories.
type CreateInput struct {
	Slug        string `json:"slug" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=1000"`
}
