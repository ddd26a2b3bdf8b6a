// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/core/review"
	"github.com/taibuivan/tabletop/internal/platform/apperr"
)

var reviewColumns = []string{
	"review_id", "title", "category", "designer", "owner",
	"review_body", "review_img_url", "created_at", "votes", "comment_count",
}

var createdAt = time.Date(2021, time.January, 18, 10, 1, 41, 0, time.UTC)

func newMockRepository(t *testing.T) (pgxmock.PgxPoolIface, *review.PostgresRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, review.NewPostgresRepository(mock)
}

func jengaRow() *pgxmock.Rows {
	return pgxmock.NewRows(reviewColumns).AddRow(
		2, "Jenga", "dexterity", "Leslie Scott", "philippaclaire9",
		"Fiddly fun for all the family",
		"https://images.pexels.com/photos/4473494/pexels-photo-4473494.jpeg?w=700&h=700",
		createdAt, 5, 3,
	)
}

// # Query Building

/*
TestBuildPageQuery_SortTokens maps every field and direction to a fixed token
and binds limit and offset.
*/
func TestBuildPageQuery_SortTokens(t *testing.T) {
	tests := []struct {
		sort      review.SortField
		direction review.SortDirection
		orderBy   string
	}{
		{review.SortCreatedAt, review.DirectionDesc, "ORDER BY r.created_at DESC"},
		{review.SortVotes, review.DirectionAsc, "ORDER BY r.votes ASC"},
		{review.SortCommentCount, review.DirectionDesc, "ORDER BY comment_count DESC"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			query, args, err := review.BuildPageQuery(review.PageQuery{
				Sort: tt.sort, Direction: tt.direction, Limit: 10, Offset: 20,
			})
			require.NoError(t, err)

			assert.Contains(t, query, tt.orderBy+" LIMIT $1 OFFSET $2")
			assert.Contains(t, query, "COUNT(c.comment_id)::INT AS comment_count")
			assert.Contains(t, query, "LEFT JOIN comments c ON c.review_id = r.review_id")
			assert.NotContains(t, query, "WHERE")
			assert.Equal(t, []any{10, 20}, args)
		})
	}
}

/*
TestBuildPageQuery_CategoryIsBound never places the category in the SQL text.
*/
func TestBuildPageQuery_CategoryIsBound(t *testing.T) {
	category := "euro game'; DROP TABLE reviews; --"
	query, args, err := review.BuildPageQuery(review.PageQuery{
		Category: category, Sort: review.SortVotes, Direction: review.DirectionAsc, Limit: 5,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE r.category = $1 GROUP BY r.review_id")
	assert.Contains(t, query, "LIMIT $2 OFFSET $3")
	assert.NotContains(t, query, "DROP")
	assert.Equal(t, []any{category, 5, 0}, args)
}

/*
TestBuildPageQuery_RejectsUnmappedTokens refuses values outside the enums.
*/
func TestBuildPageQuery_RejectsUnmappedTokens(t *testing.T) {
	_, _, err := review.BuildPageQuery(review.PageQuery{Sort: "title", Direction: review.DirectionAsc})
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))

	_, _, err = review.BuildPageQuery(review.PageQuery{Sort: review.SortVotes, Direction: "asc; --"})
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
}

// # Listing Gateway

/*
TestListCategorySlugs scans every slug.
*/
func TestListCategorySlugs(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT slug FROM categories")).
		WillReturnRows(pgxmock.NewRows([]string{"slug"}).AddRow("euro game").AddRow("dexterity"))

	slugs, err := repository.ListCategorySlugs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"euro game", "dexterity"}, slugs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestQueryReviewPage_Filtered binds the category, limit and offset.
*/
func TestQueryReviewPage_Filtered(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.category = $1 GROUP BY r.review_id ORDER BY r.votes DESC LIMIT $2 OFFSET $3")).
		WithArgs("dexterity", 10, 0).
		WillReturnRows(jengaRow())

	rows, err := repository.QueryReviewPage(context.Background(), review.PageQuery{
		Category: "dexterity", Sort: review.SortVotes, Direction: review.DirectionDesc, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].ID)
	assert.Equal(t, "Jenga", rows[0].Title)
	assert.Equal(t, 3, rows[0].CommentCount)
	assert.Equal(t, createdAt, rows[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestQueryReviewPage_Empty returns an empty, non-nil slice.
*/
func TestQueryReviewPage_Empty(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY comment_count ASC LIMIT $1 OFFSET $2")).
		WithArgs(10, 10).
		WillReturnRows(pgxmock.NewRows(reviewColumns))

	rows, err := repository.QueryReviewPage(context.Background(), review.PageQuery{
		Sort: review.SortCommentCount, Direction: review.DirectionAsc, Limit: 10, Offset: 10,
	})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestQueryReviewPage_DriverError wraps driver failures as INTERNAL_ERROR.
*/
func TestQueryReviewPage_DriverError(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("conn closed"))

	_, err := repository.QueryReviewPage(context.Background(), review.PageQuery{
		Sort: review.SortCreatedAt, Direction: review.DirectionDesc, Limit: 10,
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
}

/*
TestCountReviews_Unfiltered counts every review with no WHERE clause and no args.
*/
func TestCountReviews_Unfiltered(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM reviews$`).
		WithArgs().
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(13))

	total, err := repository.CountReviews(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 13, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestCountReviews_Filtered binds the category.
*/
func TestCountReviews_Filtered(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reviews WHERE category = $1")).
		WithArgs("dexterity").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	total, err := repository.CountReviews(context.Background(), "dexterity")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// # Single Review Operations

/*
TestFindByID returns the review and maps a missing row to NOT_FOUND.
*/
func TestFindByID(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.review_id = $1 GROUP BY r.review_id")).
		WithArgs(2).
		WillReturnRows(jengaRow())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.review_id = $1 GROUP BY r.review_id")).
		WithArgs(9999).
		WillReturnError(pgx.ErrNoRows)

	found, err := repository.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Leslie Scott", found.Designer)

	_, err = repository.FindByID(context.Background(), 9999)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestCreate_OmitsEmptyImage lets the column default apply when no image is given.
*/
func TestCreate_OmitsEmptyImage(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reviews (owner, title, review_body, designer, category) VALUES ($1, $2, $3, $4, $5) RETURNING")).
		WithArgs("philippaclaire9", "Jenga", "Fiddly fun for all the family", "Leslie Scott", "dexterity").
		WillReturnRows(jengaRow())

	created, err := repository.Create(context.Background(), review.CreateInput{
		Owner:      "philippaclaire9",
		Title:      "Jenga",
		ReviewBody: "Fiddly fun for all the family",
		Designer:   "Leslie Scott",
		Category:   "dexterity",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestCreate_UnknownOwner maps the foreign-key violation to NOT_FOUND.
*/
func TestCreate_UnknownOwner(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reviews (owner, title, review_body, designer, category, review_img_url)")).
		WithArgs("nobody", "Jenga", "Fiddly fun", "Leslie Scott", "dexterity", "https://example.com/jenga.jpg").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "reviews_owner_fkey"})

	_, err := repository.Create(context.Background(), review.CreateInput{
		Owner:        "nobody",
		Title:        "Jenga",
		ReviewBody:   "Fiddly fun",
		Designer:     "Leslie Scott",
		Category:     "dexterity",
		ReviewImgURL: "https://example.com/jenga.jpg",
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestIncrementVotes binds the delta before the id.
*/
func TestIncrementVotes(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE reviews SET votes = votes + $1 WHERE review_id = $2 RETURNING")).
		WithArgs(-2, 2).
		WillReturnRows(jengaRow())

	updated, err := repository.IncrementVotes(context.Background(), 2, -2)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Votes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestDelete reports NOT_FOUND when nothing was deleted.
*/
func TestDelete(t *testing.T) {
	mock, repository := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews WHERE review_id = $1")).
		WithArgs(2).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews WHERE review_id = $1")).
		WithArgs(9999).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repository.Delete(context.Background(), 2))
	assert.True(t, apperr.HasCode(repository.Delete(context.Background(), 9999), apperr.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestReviewSelect_SingleStatement keeps the listing to one aggregate statement.
*/
func TestReviewSelect_SingleStatement(t *testing.T) {
	query, _, err := review.BuildPageQuery(review.PageQuery{Sort: review.SortVotes, Direction: review.DirectionAsc})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(query, "SELECT"))
	assert.NotContains(t, query, ";")
}
