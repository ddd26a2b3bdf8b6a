// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/core/user"
)

var userColumns = []string{"username", "name", "avatar_url"}

func newRouter(t *testing.T) (pgxmock.PgxPoolIface, http.Handler) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	service := user.NewService(user.NewPostgresRepository(mock), slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := chi.NewRouter()
	router.Route("/api/users", user.NewHandler(service).RegisterRoutes)
	return mock, router
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

func TestListUsers(t *testing.T) {
	mock, router := newRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT username, name, avatar_url FROM users ORDER BY username ASC")).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("bainesface", "sarah", "https://avatars.githubusercontent.com/u/29317?s=460&v=4").
			AddRow("mallionaire", "haz", "https://www.healthytherapies.com/wp-content/uploads/2016/06/Lime3.jpg"))

	recorder := get(router, "/api/users")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"users":[`)
	assert.Contains(t, recorder.Body.String(), `"username":"mallionaire"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser(t *testing.T) {
	mock, router := newRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("bainesface").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow("bainesface", "sarah", "https://avatars.githubusercontent.com/u/29317?s=460&v=4"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	recorder := get(router, "/api/users/bainesface")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t,
		`{"user":{"username":"bainesface","name":"sarah","avatar_url":"https://avatars.githubusercontent.com/u/29317?s=460&v=4"}}`,
		recorder.Body.String())

	recorder = get(router, "/api/users/nobody")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
