package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"example.com/subscription-tracker/backend/internal/repository"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// TestReplyErrorMapping проверяет перевод сигнальных ошибок в HTTP-статусы.
func TestReplyErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("user id: %w", repository.ErrInvalid), http.StatusBadRequest},
		{fmt.Errorf("budget: %w", repository.ErrNotFound), http.StatusNotFound},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		c, rec := newTestContext(t)
		if err := replyError(c, tc.err); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != tc.want {
			t.Fatalf("expected status %d for %v, got %d", tc.want, tc.err, rec.Code)
		}
	}
}

// TestParseUserID проверяет разбор идентификатора пользователя из пути.
func TestParseUserID(t *testing.T) {
	c, _ := newTestContext(t)
	c.SetParamNames("userId")
	c.SetParamValues("not-a-uuid")

	if _, err := parseUserID(c); !errors.Is(err, repository.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for malformed id, got %v", err)
	}

	valid := "3b7c9a50-1f6e-4d2a-b6a9-0c3f6f4f1e2d"
	c.SetParamValues(valid)
	userID, err := parseUserID(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID.String() != valid {
		t.Fatalf("expected %s, got %s", valid, userID)
	}
}
