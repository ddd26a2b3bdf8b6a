// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

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

var commentColumns = strings.Join(schema.Comment.Columns(), ", ")

// PostgresRepository implements [Repository] with pgx.
type PostgresRepository struct {
	db postgres.DBTX
}

func NewPostgresRepository(db postgres.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListByReview(context context.Context, reviewID int) (comments []*Comment, err error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		commentColumns, schema.Comment.Table, schema.Comment.ReviewID, schema.Comment.CreatedAt)

	context, end := postgres.TraceQuery(context, "list_comments_by_review", query)
	defer func() { end(err) }()

	rows, err := repository.db.Query(context, query, reviewID)
	if err != nil {
		return nil, dberr.Wrap(err, "comment", "list_comments_by_review")
	}
	defer rows.Close()

	comments = make([]*Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "comment", "scan_comment")
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "comment", "list_comments_by_review")
	}
	return comments, nil
}

func (repository *PostgresRepository) ReviewExists(context context.Context, reviewID int) (exists bool, err error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.Review.Table, schema.Review.ID)

	context, end := postgres.TraceQuery(context, "review_exists", query)
	defer func() { end(err) }()

	if err := repository.db.QueryRow(context, query, reviewID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "review", "review_exists")
	}
	return exists, nil
}

/*
Create inserts a comment on a review.

Returns:
  - *Comment: The stored row
  - error: NOT_FOUND when the review or the author does not exist
*/
func (repository *PostgresRepository) Create(context context.Context, reviewID int, input CreateInput) (comment *Comment, err error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s`,
		schema.Comment.Table, schema.Comment.ReviewID, schema.Comment.Author, schema.Comment.Body, commentColumns)

	context, end := postgres.TraceQuery(context, "create_comment", query)
	defer func() { end(err) }()

	comment, err = scanComment(repository.db.QueryRow(context, query, reviewID, input.Username, input.Body))
	if err != nil {
		return nil, dberr.Wrap(err, "comment", "create_comment")
	}
	return comment, nil
}

func (repository *PostgresRepository) IncrementVotes(context context.Context, id, delta int) (comment *Comment, err error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + $1 WHERE %s = $2 RETURNING %s`,
		schema.Comment.Table, schema.Comment.Votes, schema.Comment.Votes, schema.Comment.ID, commentColumns)

	context, end := postgres.TraceQuery(context, "increment_comment_votes", query)
	defer func() { end(err) }()

	comment, err = scanComment(repository.db.QueryRow(context, query, delta, id))
	if err != nil {
		return nil, dberr.Wrap(err, "comment", "increment_comment_votes")
	}
	return comment, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) (err error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Comment.Table, schema.Comment.ID)

	context, end := postgres.TraceQuery(context, "delete_comment", query)
	defer func() { end(err) }()

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "comment", "delete_comment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("comment")
	}
	return nil
}

func scanComment(row pgx.Row) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(&comment.ID, &comment.Body, &comment.ReviewID, &comment.Author, &comment.Votes, &comment.CreatedAt)
	if err != nil {
		return nil, err
	}
	return comment, nil
}
