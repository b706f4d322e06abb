package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/racecards/models"
	"github.com/padraicbc/racecards/racing"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	JWTKey []byte
	racing *racing.Service
}

// New creates a Handler with the given database connection, JWT signing key
// and race-card service.
func New(db *bun.DB, jwtKey []byte, svc *racing.Service) *Handler {
	return &Handler{db: db, JWTKey: jwtKey, racing: svc}
}

// errorJSON writes the uniform {error:{code,message}} envelope.
func errorJSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, models.ErrorResponse{
		Error: models.ErrorBody{Code: code, Message: message},
	})
}
