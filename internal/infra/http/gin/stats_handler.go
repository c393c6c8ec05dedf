package ginserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	statssvc "frontdesk/internal/app/services/stats"
)

type StatsHTTP interface {
	Dashboard(c *gin.Context)
}

type StatsHandler struct {
	Service *statssvc.Service
	Logger  *slog.Logger
}

// Dashboard aggregates occupancy, revenue and expenses over the
// requested period, defaulting to the current calendar month.
func (h StatsHandler) Dashboard(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	from, to, err := parsePeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dashboard, err := h.Service.Dashboard(c.Request.Context(), from, to)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("dashboard build failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// parsePeriod reads from/to query params in RFC 3339 or date-only form.
func parsePeriod(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if raw := c.Query("from"); raw != "" {
		parsed, err := parseTimeParam(raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from: %w", err)
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseTimeParam(raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to: %w", err)
		}
		to = parsed
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to must be after from")
	}
	return from, to, nil
}

func parseTimeParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

var _ StatsHTTP = (*StatsHandler)(nil)
