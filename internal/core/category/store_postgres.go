// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/taibuivan/tabletop/internal/platform/database/schema"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
	"github.com/taibuivan/tabletop/internal/platform/postgres"
)

type PostgresRepository struct {
	db postgres.DBTX
}

func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) (categories []*Category, err error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC`,
		schema.Category.Slug, schema.Category.Description, schema.Category.Table, schema.Category.Slug)

	context, end := postgres.TraceQuery(context, "list_categories", query)
	defer func() { end(err) }()

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "category", "list_categories")
	}
	defer rows.Close()

	categories = make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.Slug, &category.Description); err != nil {
			return nil, dberr.Wrap(err, "category", "scan_category")
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "category", "list_categories")
	}
	return categories, nil
}

// Create inserts a category. A taken slug surfaces as CONFLICT.
func (repository *PostgresRepository) Create(context context.Context, input CreateInput) (category *Category, err error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s, %s`,
		schema.Category.Table, schema.Category.Slug, schema.Category.Description,
		schema.Category.Slug, schema.Category.Description)

	context, end := postgres.TraceQuery(context, "create_category", query)
	defer func() { end(err) }()

	category = &Category{}
	err = repository.db.QueryRow(context, query, input.Slug, input.Description).Scan(&category.Slug, &category.Description)
	if err != nil {
		return nil, dberr.Wrap(err, "category", "create_category")
	}
	return category, nil
}
