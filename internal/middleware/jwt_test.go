package middleware

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/repository"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/utils"
)

const testSecret = "test-secret"

func newMockUsers(t *testing.T) (*repository.UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewUserRepo(db), mock
}

// invoke runs JWTAuth in front of an inner handler and reports the
// recorder plus whether the handler saw an authenticated user.
func invoke(t *testing.T, users *repository.UserRepo, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	var sawUser bool
	inner := func(c echo.Context) error {
		_, sawUser = CurrentUser(c)
		return c.String(http.StatusOK, "ok")
	}

	req := httptest.NewRequest(http.MethodGet, "/notes/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := JWTAuth(testSecret, users)(inner)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec, sawUser
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	users, _ := newMockUsers(t)

	rec, sawUser := invoke(t, users, "")
	if rec.Code != http.StatusUnauthorized || sawUser {
		t.Fatalf("got %d sawUser=%v, want 401 without user", rec.Code, sawUser)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
		t.Fatal("missing bearer challenge header")
	}
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	users, _ := newMockUsers(t)

	rec, sawUser := invoke(t, users, "Bearer not.a.token")
	if rec.Code != http.StatusUnauthorized || sawUser {
		t.Fatalf("got %d sawUser=%v, want 401 without user", rec.Code, sawUser)
	}
}

func TestJWTAuth_ValidTokenResolvesUser(t *testing.T) {
	users, mock := newMockUsers(t)

	tok, err := utils.NewAccessToken(testSecret, "alice", 30)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	mock.ExpectQuery("SELECT .+ FROM users WHERE username=").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(1, "alice", "hash", time.Now().UTC()))

	rec, sawUser := invoke(t, users, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK || !sawUser {
		t.Fatalf("got %d sawUser=%v, want 200 with user", rec.Code, sawUser)
	}
}

func TestJWTAuth_SubjectNoLongerExists(t *testing.T) {
	users, mock := newMockUsers(t)

	// A syntactically valid token whose user was deleted after issuance.
	tok, err := utils.NewAccessToken(testSecret, "ghost", 30)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	mock.ExpectQuery("SELECT .+ FROM users WHERE username=").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	rec, sawUser := invoke(t, users, "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized || sawUser {
		t.Fatalf("got %d sawUser=%v, want 401 without user", rec.Code, sawUser)
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	users, _ := newMockUsers(t)

	tok, err := utils.NewAccessToken(testSecret, "alice", -1)
	if err != nil {
		t.Fatalf("NewAccessToken error: %v", err)
	}
	rec, sawUser := invoke(t, users, "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized || sawUser {
		t.Fatalf("got %d sawUser=%v, want 401 without user", rec.Code, sawUser)
	}
}
