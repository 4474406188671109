package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"chirp/internal/auth"
	"chirp/pkg/validators"

	"github.com/labstack/echo/v4"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

// newTestContext builds an Echo context with an optional JSON body and an
// optional pre-resolved identity, the way the auth middleware would set it.
func newTestContext(e *echo.Echo, method, target, body string, identity *auth.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set("identity", *identity)
	}
	return c, rec
}

// setPathParam binds the :id route parameter on the context.
func setPathParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}

// httpStatus extracts the status code from a handler error.
func httpStatus(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an HTTP error, got nil")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func identityFor(userID uint, username string) *auth.Identity {
	return &auth.Identity{UserID: userID, Username: username}
}
