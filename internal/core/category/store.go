// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "context"

// Repository defines the data access contract.
type Repository interface {
	List(context context.Context) ([]*Category, error)
	Create(context context.Context, input CreateInput) (*Category, error)
}
