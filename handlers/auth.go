package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/padraicbc/racecards/middleware"
	"github.com/padraicbc/racecards/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AgeVerified bool   `json:"ageVerified"`
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateRegister returns an empty string when the request is valid, or a
// caller-facing message describing the first failed rule.
func validateRegister(req registerRequest) string {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Name) == "" || req.Password == "" {
		return "All fields are required"
	}
	if !emailRegex.MatchString(strings.TrimSpace(req.Email)) {
		return "Invalid email format"
	}
	if len(req.Password) < 8 {
		return "Password must be at least 8 characters"
	}
	if !req.AgeVerified {
		return "Age verification is required"
	}
	return ""
}

// Register creates a credentials-based user account.
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	}

	if msg := validateRegister(req); msg != "" {
		return errorJSON(c, http.StatusBadRequest, "BAD_REQUEST", msg)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	ctx := c.Request().Context()

	exists, err := h.db.NewSelect().Model((*models.User)(nil)).
		Where("email = ?", email).
		Exists(ctx)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
	if exists {
		return errorJSON(c, http.StatusConflict, "CONFLICT", "An account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:       email,
		Name:        strings.TrimSpace(req.Name),
		Password:    string(hash),
		Provider:    "credentials",
		AgeVerified: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := h.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
			return errorJSON(c, http.StatusConflict, "CONFLICT", "An account with this email already exists")
		}
		return errorJSON(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"data": map[string]interface{}{"id": user.ID, "email": user.Email},
	})
}

// Signin validates credentials and returns a JWT token valid for 30 days.
func (h *Handler) Signin(c echo.Context) error {
	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return errorJSON(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	}
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))

	user := &models.User{}
	err := h.db.NewSelect().Model(user).
		Where("email = ?", creds.Email).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errorJSON(c, http.StatusUnauthorized, "UNAUTHORIZED", "Incorrect email or password")
		}
		return errorJSON(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return errorJSON(c, http.StatusUnauthorized, "UNAUTHORIZED", "Incorrect email or password")
	}

	expiresAt := time.Now().AddDate(0, 0, 30)
	claims := &mw.Claims{
		Email:    creds.Email,
		UserHash: mw.UserHashFromEmail(creds.Email, h.JWTKey),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.JWTKey)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}

	return c.JSON(http.StatusOK, map[string]string{"token": tokenString})
}

func isAdminUser(email string) bool {
	adminUsers := strings.TrimSpace(os.Getenv("ADMIN_USERS"))
	if adminUsers == "" {
		adminUsers = "admin@racecards.app"
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, admin := range strings.Split(adminUsers, ",") {
		if normalized == strings.ToLower(strings.TrimSpace(admin)) {
			return true
		}
	}

	return false
}

// PasswordHash returns a bcrypt hash from email/password input for manual
// user provisioning. Access is limited to authenticated admin users.
func (h *Handler) PasswordHash(c echo.Context) error {
	requester, _ := c.Get("email").(string)
	requester = strings.TrimSpace(requester)
	if requester == "" {
		return errorJSON(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	}

	exists, err := h.db.NewSelect().Model((*models.User)(nil)).
		Where("email = ?", requester).
		Exists(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
	if !exists {
		return errorJSON(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	}
	if !isAdminUser(requester) {
		return errorJSON(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
	}

	var creds credentials
	if err := c.Bind(&creds); err != nil {
		return errorJSON(c, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	}
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return errorJSON(c, http.StatusBadRequest, "BAD_REQUEST", "Email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"email":         strings.ToLower(strings.TrimSpace(creds.Email)),
		"password_hash": string(hash),
	})
}
