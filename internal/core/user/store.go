// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import "context"

type Repository interface {
	List(context context.Context) ([]*User, error)
	FindByUsername(context context.Context, username string) (*User, error)
}
