package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racecards/models"
)

var testKey = []byte("test-signing-key")

func signedToken(t *testing.T, key []byte, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		Email:    "test@example.com",
		UserHash: UserHashFromEmail("test@example.com", key),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

func runJWT(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/race-cards", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("email").(string))
	}
	if err := JWT(testKey)(next)(c); err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	return rec
}

func assertUnauthorized(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Error.Code != "UNAUTHORIZED" {
		t.Errorf("error.code = %q, want UNAUTHORIZED", body.Error.Code)
	}
}

func TestJWTMissingHeader(t *testing.T) {
	assertUnauthorized(t, runJWT(t, ""))
}

func TestJWTWrongKey(t *testing.T) {
	token := signedToken(t, []byte("some-other-key"), time.Now().Add(time.Hour))
	assertUnauthorized(t, runJWT(t, token))
}

func TestJWTExpiredToken(t *testing.T) {
	token := signedToken(t, testKey, time.Now().Add(-time.Hour))
	assertUnauthorized(t, runJWT(t, token))
}

func TestJWTValidToken(t *testing.T) {
	token := signedToken(t, testKey, time.Now().Add(time.Hour))
	rec := runJWT(t, token)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "test@example.com" {
		t.Errorf("email in context = %q, want test@example.com", got)
	}
}

func TestUserHashFromEmailNormalizes(t *testing.T) {
	a := UserHashFromEmail("Test@Example.com ", testKey)
	b := UserHashFromEmail("test@example.com", testKey)
	if a != b {
		t.Error("hash differs for case/whitespace variants of the same email")
	}
	if a == UserHashFromEmail("other@example.com", testKey) {
		t.Error("hash collides for different emails")
	}
}
