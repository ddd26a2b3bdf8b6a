// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/tabletop/internal/platform/apperr"
	"github.com/taibuivan/tabletop/internal/platform/database/schema"
	"github.com/taibuivan/tabletop/internal/platform/dberr"
	"github.com/taibuivan/tabletop/internal/platform/postgres"
)

// # Trusted SQL Tokens

// sortColumns maps each accepted sort field to its SQL expression. Sorting by
// comment count uses the aggregate's alias.
var sortColumns = map[SortField]string{
	SortCreatedAt:    "r." + schema.Review.CreatedAt,
	SortVotes:        "r." + schema.Review.Votes,
	SortCommentCount: schema.Review.CommentCount,
}

var sortDirections = map[SortDirection]string{
	DirectionAsc:  "ASC",
	DirectionDesc: "DESC",
}

// reviewSelect selects every review column plus the live comment count from
// reviews r LEFT JOIN comments c. Callers append WHERE, GROUP BY and ORDER BY.
var reviewSelect = fmt.Sprintf(`
	SELECT r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s,
	       COUNT(c.%s)::INT AS %s
	FROM %s r
	LEFT JOIN %s c ON c.%s = r.%s`,
	schema.Review.ID, schema.Review.Title, schema.Review.Category, schema.Review.Designer,
	schema.Review.Owner, schema.Review.ReviewBody, schema.Review.ReviewImgURL,
	schema.Review.CreatedAt, schema.Review.Votes,
	schema.Comment.ID, schema.Review.CommentCount,
	schema.Review.Table,
	schema.Comment.Table, schema.Comment.ReviewID, schema.Review.ID,
)

// reviewReturning is the RETURNING list of writes, shaped like reviewSelect.
var reviewReturning = fmt.Sprintf(`
	RETURNING %s, %s, %s, %s, %s, %s, %s, %s, %s,
	          (SELECT COUNT(*)::INT FROM %s WHERE %s.%s = %s.%s) AS %s`,
	schema.Review.ID, schema.Review.Title, schema.Review.Category, schema.Review.Designer,
	schema.Review.Owner, schema.Review.ReviewBody, schema.Review.ReviewImgURL,
	schema.Review.CreatedAt, schema.Review.Votes,
	schema.Comment.Table, schema.Comment.Table, schema.Comment.ReviewID,
	schema.Review.Table, schema.Review.ID, schema.Review.CommentCount,
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] with pgx.
type PostgresRepository struct {
	db postgres.DBTX
}

// NewPostgresRepository constructs a PostgreSQL backed review store.
func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Listing

// ListCategorySlugs implements [ListingStore].
func (repository *PostgresRepository) ListCategorySlugs(context context.Context) (slugs []string, err error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, schema.Category.Slug, schema.Category.Table)

	context, end := postgres.TraceQuery(context, "list_category_slugs", query)
	defer func() { end(err) }()

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "category", "list_category_slugs")
	}
	defer rows.Close()

	slugs = make([]string, 0)
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, dberr.Wrap(err, "category", "scan_category_slug")
		}
		slugs = append(slugs, slug)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "category", "list_category_slugs")
	}
	return slugs, nil
}

/*
BuildPageQuery renders the aggregate listing statement and its arguments.

Description: The sort column and direction come from fixed token maps keyed by
the validated enums. Category, limit and offset are always bound parameters.

Returns:
  - string: The SQL statement
  - []any: Positional arguments ($1..$n)
  - error: INTERNAL_ERROR if the query carries an unmapped sort field or direction
*/
func BuildPageQuery(query PageQuery) (string, []any, error) {
	column, ok := sortColumns[query.Sort]
	if !ok {
		return "", nil, apperr.Internal(fmt.Errorf("review: unmapped sort field %q", query.Sort))
	}
	direction, ok := sortDirections[query.Direction]
	if !ok {
		return "", nil, apperr.Internal(fmt.Errorf("review: unmapped sort direction %q", query.Direction))
	}

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(reviewSelect)

	if query.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE r.%s = $%d", schema.Review.Category, argID))
		args = append(args, query.Category)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" GROUP BY r.%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		schema.Review.ID, column, direction, argID, argID+1))
	args = append(args, query.Limit, query.Offset)

	return queryBuilder.String(), args, nil
}

// QueryReviewPage implements [ListingStore].
func (repository *PostgresRepository) QueryReviewPage(context context.Context, pageQuery PageQuery) (reviews []*Review, err error) {
	query, args, err := BuildPageQuery(pageQuery)
	if err != nil {
		return nil, err
	}

	context, end := postgres.TraceQuery(context, "query_review_page", query)
	defer func() { end(err) }()

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "review", "query_review_page")
	}
	defer rows.Close()

	reviews = make([]*Review, 0, pageQuery.Limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "review", "scan_review_page")
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "review", "query_review_page")
	}
	return reviews, nil
}

// CountReviews implements [ListingStore]. Without a category the statement
// has no WHERE clause and no arguments.
func (repository *PostgresRepository) CountReviews(context context.Context, category string) (total int, err error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.Review.Table)
	var args []any
	if category != "" {
		query += fmt.Sprintf(` WHERE %s = $1`, schema.Review.Category)
		args = append(args, category)
	}

	context, end := postgres.TraceQuery(context, "count_reviews", query)
	defer func() { end(err) }()

	if err := repository.db.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "review", "count_reviews")
	}
	return total, nil
}

// # Single Review Operations

// FindByID returns one review with its comment count.
func (repository *PostgresRepository) FindByID(context context.Context, id int) (review *Review, err error) {
	query := fmt.Sprintf(`%s WHERE r.%s = $1 GROUP BY r.%s`, reviewSelect, schema.Review.ID, schema.Review.ID)

	context, end := postgres.TraceQuery(context, "find_review_by_id", query)
	defer func() { end(err) }()

	review, err = scanReview(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "review", "find_review_by_id")
	}
	return review, nil
}

// Create inserts a review. An empty image URL keeps the column default.
func (repository *PostgresRepository) Create(context context.Context, input CreateInput) (review *Review, err error) {
	columns := []string{
		schema.Review.Owner, schema.Review.Title, schema.Review.ReviewBody,
		schema.Review.Designer, schema.Review.Category,
	}
	args := []any{input.Owner, input.Title, input.ReviewBody, input.Designer, input.Category}

	if input.ReviewImgURL != "" {
		columns = append(columns, schema.Review.ReviewImgURL)
		args = append(args, input.ReviewImgURL)
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) %s`,
		schema.Review.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "), reviewReturning)

	context, end := postgres.TraceQuery(context, "create_review", query)
	defer func() { end(err) }()

	review, err = scanReview(repository.db.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "review", "create_review")
	}
	return review, nil
}

// IncrementVotes adds delta to the review's votes and returns the updated row.
func (repository *PostgresRepository) IncrementVotes(context context.Context, id, delta int) (review *Review, err error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + $1 WHERE %s = $2 %s`,
		schema.Review.Table, schema.Review.Votes, schema.Review.Votes, schema.Review.ID, reviewReturning)

	context, end := postgres.TraceQuery(context, "increment_review_votes", query)
	defer func() { end(err) }()

	review, err = scanReview(repository.db.QueryRow(context, query, delta, id))
	if err != nil {
		return nil, dberr.Wrap(err, "review", "increment_review_votes")
	}
	return review, nil
}

// Delete removes a review. Its comments go with it (ON DELETE CASCADE).
func (repository *PostgresRepository) Delete(context context.Context, id int) (err error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Review.Table, schema.Review.ID)

	context, end := postgres.TraceQuery(context, "delete_review", query)
	defer func() { end(err) }()

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "review", "delete_review")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("review")
	}
	return nil
}

// # Helpers

func scanReview(row pgx.Row) (*Review, error) {
	review := &Review{}
	err := row.Scan(
		&review.ID, &review.Title, &review.Category, &review.Designer,
		&review.Owner, &review.ReviewBody, &review.ReviewImgURL,
		&review.CreatedAt, &review.Votes, &review.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	return review, nil
}
