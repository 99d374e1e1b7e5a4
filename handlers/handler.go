// Package handlers exposes the derived tables over a JSON API.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Tom-Draper/Premier-League/analysis"
	"github.com/Tom-Draper/Premier-League/ledger"
	"github.com/Tom-Draper/Premier-League/teams"
)

// Handler serves read endpoints from the pipeline's current snapshot and
// the guarded refresh trigger.
type Handler struct {
	pipe   *analysis.Pipeline
	ledger *ledger.Store
	reg    *teams.Registry
	log    *zap.Logger
}

func New(pipe *analysis.Pipeline, led *ledger.Store, reg *teams.Registry, log *zap.Logger) *Handler {
	return &Handler{pipe: pipe, ledger: led, reg: reg, log: log}
}

// Register attaches all read routes to the group.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/teams", h.Teams)
	g.GET("/standings", h.Standings)
	g.GET("/table-snippet", h.TableSnippet)
	g.GET("/ratings", h.Ratings)
	g.GET("/home-advantages", h.HomeAdvantages)
	g.GET("/form", h.Form)
	g.GET("/season-stats", h.SeasonStats)
	g.GET("/upcoming", h.Upcoming)
	g.GET("/prediction", h.Prediction)
	g.GET("/predictions", h.Predictions)
	g.GET("/accuracy", h.Accuracy)
}

// snapshot fetches the current snapshot or reports that the first build
// has not completed yet.
func (h *Handler) snapshot() (*analysis.Snapshot, error) {
	snap := h.pipe.Current()
	if snap == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "data not yet available")
	}
	return snap, nil
}

// team resolves the ?team= query parameter against the snapshot roster,
// accepting either the full name or the three-letter initials.
func (h *Handler) team(c echo.Context, snap *analysis.Snapshot) (string, error) {
	q := c.QueryParam("team")
	if q == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "team query parameter required")
	}

	if name, err := h.reg.Name(q); err == nil {
		q = name
	}
	for _, name := range snap.TeamNames {
		if name == q {
			return name, nil
		}
	}
	return "", echo.NewHTTPError(http.StatusNotFound, "unknown team")
}
