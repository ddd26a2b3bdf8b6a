// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/taibuivan/tabletop/internal/platform/database/schema"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
	"github.com/taibuivan/tabletop/internal/platform/postgres"
)

var userColumns = strings.Join(schema.User.Columns(), ", ")

type PostgresRepository struct {
	db postgres.DBTX
}

func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) (users []*User, err error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`, userColumns, schema.User.Table, schema.User.Username)

	context, end := postgres.TraceQuery(context, "list_users", query)
	defer func() { end(err) }()

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "user", "list_users")
	}
	defer rows.Close()

	users = make([]*User, 0)
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(&user.Username, &user.Name, &user.AvatarURL); err != nil {
			return nil, dberr.Wrap(err, "user", "scan_user")
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "user", "list_users")
	}
	return users, nil
}

func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (user *User, err error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns, schema.User.Table, schema.User.Username)

	context, end := postgres.TraceQuery(context, "find_user_by_username", query)
	defer func() { end(err) }()

	user = &User{}
	err = repository.db.QueryRow(context, query, username).Scan(&user.Username, &user.Name, &user.AvatarURL)
	if err != nil {
		return nil, dberr.Wrap(err, "user", "find_user_by_username")
	}
	return user, nil
}
