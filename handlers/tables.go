package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Tom-Draper/Premier-League/analysis"
	"github.com/Tom-Draper/Premier-League/models"
)

type teamEntry struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

// Teams lists the current season's roster with initials.
func (h *Handler) Teams(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}

	out := make([]teamEntry, 0, len(snap.TeamNames))
	for _, name := range snap.TeamNames {
		out = append(out, teamEntry{Name: name, Initials: h.reg.Initials(name)})
	}
	return c.JSON(http.StatusOK, out)
}

// Standings serves the league table. With no season parameter it serves the
// current season; prior retained seasons are available via ?season=.
func (h *Handler) Standings(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}

	season := snap.Season
	if q := c.QueryParam("season"); q != "" {
		season, err = strconv.Atoi(q)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "bad season year")
		}
	}
	table, ok := snap.Standings[season]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "season not retained")
	}
	return c.JSON(http.StatusOK, table)
}

type snippetResponse struct {
	Rows []models.StandingsRow `json:"rows"`
	// TeamIndex is the queried team's index within Rows.
	TeamIndex int `json:"teamIndex"`
}

// TableSnippet serves the seven-row slice of the current table around a
// team.
func (h *Handler) TableSnippet(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}
	team, err := h.team(c, snap)
	if err != nil {
		return err
	}

	rows, idx, err := analysis.TableSnippet(snap.CurrentTable(), team)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "team not in table")
	}
	return c.JSON(http.StatusOK, snippetResponse{Rows: rows, TeamIndex: idx})
}

// Ratings serves every team's cross-season rating, strongest first.
func (h *Handler) Ratings(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap.Ratings)
}

// HomeAdvantages serves every team's home advantage, largest first.
func (h *Handler) HomeAdvantages(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap.HomeAdvantages)
}
