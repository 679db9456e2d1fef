package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/utils"
)

func protectedProbe(t *testing.T, secret, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	handler := JWTAuth(secret)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	req := httptest.NewRequest(http.MethodGet, "/registrations", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		e.HTTPErrorHandler(err, e.NewContext(req, rec))
	}
	return rec
}

func TestJWTAuthAcceptsIssuedToken(t *testing.T) {
	const secret = "mw_secret"
	tok, err := utils.NewAccessToken(secret, "admin@cache2k25.in", "ADMIN", 5)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	rec := protectedProbe(t, secret, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body)
	}
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	const secret = "mw_secret"

	if rec := protectedProbe(t, secret, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no header: status %d, want 401", rec.Code)
	}
	if rec := protectedProbe(t, secret, "Bearer not-a-jwt"); rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status %d, want 401", rec.Code)
	}

	other, err := utils.NewAccessToken("other_secret", "admin@cache2k25.in", "ADMIN", 5)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if rec := protectedProbe(t, secret, "Bearer "+other.Token); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong secret: status %d, want 401", rec.Code)
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	const secret = "mw_secret"
	tok, err := utils.NewAccessToken(secret, "admin@cache2k25.in", "ADMIN", -1)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if rec := protectedProbe(t, secret, "Bearer "+tok.Token); rec.Code != http.StatusUnauthorized {
		t.Errorf("expired token: status %d, want 401", rec.Code)
	}
}
