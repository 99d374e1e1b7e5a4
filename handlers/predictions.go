package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Tom-Draper/Premier-League/models"
)

// Upcoming serves a team's next fixture with head-to-head history. A team
// with no fixture left has finished its season.
func (h *Handler) Upcoming(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}

	if c.QueryParam("team") == "" {
		return c.JSON(http.StatusOK, snap.Upcoming)
	}
	team, err := h.team(c, snap)
	if err != nil {
		return err
	}
	fixture, ok := snap.Upcoming[team]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "season finished for team")
	}
	return c.JSON(http.StatusOK, fixture)
}

// Prediction serves the scoreline forecast for a team's next fixture.
func (h *Handler) Prediction(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}
	team, err := h.team(c, snap)
	if err != nil {
		return err
	}

	p, ok := snap.Predictions[team]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "season finished for team")
	}
	return c.JSON(http.StatusOK, p)
}

type ledgerEntry struct {
	models.Prediction
	Date string `json:"date"`
	// Classification is "pending", "exact", "correct-result" or
	// "incorrect".
	Classification string `json:"classification"`
}

// Predictions serves the full prediction ledger, newest date first, each
// entry classified against its actual result.
func (h *Handler) Predictions(c echo.Context) error {
	book, err := h.ledger.Load()
	if err != nil {
		h.log.Error("ledger read failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "ledger unavailable")
	}

	dates := make([]string, 0, len(book.Predictions))
	for date := range book.Predictions {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	out := []ledgerEntry{}
	for _, date := range dates {
		for _, p := range book.Predictions[date] {
			out = append(out, ledgerEntry{
				Prediction:     p,
				Date:           date,
				Classification: p.Classification(),
			})
		}
	}
	return c.JSON(http.StatusOK, out)
}

// Accuracy serves the running accuracy over resolved predictions. Ratios
// are null until the first prediction resolves.
func (h *Handler) Accuracy(c echo.Context) error {
	book, err := h.ledger.Load()
	if err != nil {
		h.log.Error("ledger read failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "ledger unavailable")
	}
	return c.JSON(http.StatusOK, book.Accuracy)
}

// Refresh triggers an immediate pipeline run. Guarded by the JWT
// middleware; the run happens inline so the caller sees failures.
func (h *Handler) Refresh(c echo.Context) error {
	started := time.Now()
	if err := h.pipe.Refresh(c.Request().Context()); err != nil {
		h.log.Error("refresh failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "refresh failed")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "refreshed",
		"took":   time.Since(started).String(),
	})
}
