package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tom-Draper/Premier-League/analysis"
	"github.com/Tom-Draper/Premier-League/models"
)

// Form serves a team's form. With ?team= it returns the full per-game form
// history; without it, the summary view for every team.
func (h *Handler) Form(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}

	if c.QueryParam("team") == "" {
		summaries := make([]models.FormSummary, 0, len(snap.TeamNames))
		for _, name := range snap.TeamNames {
			tf, ok := snap.Form[name]
			if !ok {
				tf = &models.TeamForm{Team: name}
			}
			summaries = append(summaries, analysis.Summarise(tf))
		}
		return c.JSON(http.StatusOK, summaries)
	}

	team, err := h.team(c, snap)
	if err != nil {
		return err
	}
	tf, ok := snap.Form[team]
	if !ok {
		tf = &models.TeamForm{Team: team, Records: []models.FormRecord{}}
	}
	return c.JSON(http.StatusOK, tf)
}

// SeasonStats serves attack and defence ratios. With ?team= it narrows to
// one team.
func (h *Handler) SeasonStats(c echo.Context) error {
	snap, err := h.snapshot()
	if err != nil {
		return err
	}

	if c.QueryParam("team") == "" {
		return c.JSON(http.StatusOK, snap.SeasonStats)
	}
	team, err := h.team(c, snap)
	if err != nil {
		return err
	}
	stats, ok := snap.SeasonStats[team]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no stats for team")
	}
	return c.JSON(http.StatusOK, stats)
}
