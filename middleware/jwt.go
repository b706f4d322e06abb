package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racecards/models"
)

// Claims extends jwt.RegisteredClaims with application-specific fields.
type Claims struct {
	Email    string `json:"email"`
	UserHash string `json:"user_hash"`
	jwt.RegisteredClaims
}

// UserHashFromEmail returns a deterministic HMAC hash for the given email and key.
func UserHashFromEmail(email string, key []byte) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(normalized))
	return hex.EncodeToString(mac.Sum(nil))
}

// JWT returns an Echo middleware that validates the Authorization header
// token using the provided signing key. Failures render the API's standard
// UNAUTHORIZED envelope.
func JWT(key []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("Authorization")
			if token == "" {
				return unauthorized(c, "Authentication required")
			}

			claims := &Claims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				return key, nil
			})
			if err != nil || !tkn.Valid {
				return unauthorized(c, "Invalid or expired token")
			}

			c.Set("email", claims.Email)
			c.Set("user_hash", claims.UserHash)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error: models.ErrorBody{Code: "UNAUTHORIZED", Message: message},
	})
}
