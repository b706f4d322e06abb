package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/racecards/models"
)

type raceCardsMeta struct {
	Cached    bool   `json:"cached"`
	FetchedAt string `json:"fetchedAt"`
	Stale     bool   `json:"stale,omitempty"`
}

type raceCardsResponse struct {
	Data []models.Meeting `json:"data"`
	Meta raceCardsMeta    `json:"meta"`
}

// RaceCards returns today's race meetings with cache metadata. Any failure
// out of the cache layer – upstream or storage – is reported as an upstream
// error; the request log carries the underlying cause.
func (h *Handler) RaceCards(c echo.Context) error {
	date := time.Now().UTC().Format(time.DateOnly)

	result, err := h.racing.MeetingsWithCache(c.Request().Context(), date)
	if err != nil {
		return errorJSON(c, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	}

	meta := raceCardsMeta{
		Cached:    result.Cached,
		FetchedAt: result.FetchedAt.UTC().Format(time.RFC3339),
		Stale:     result.Stale,
	}
	return c.JSON(http.StatusOK, raceCardsResponse{Data: result.Data, Meta: meta})
}
