package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	reportssvc "frontdesk/internal/app/services/reports"
)

type ReportHTTP interface {
	ExportStays(c *gin.Context)
}

type ReportHandler struct {
	Service *reportssvc.Service
	Logger  *slog.Logger
}

// ExportStays writes a CSV of checked-out stays for the period to object
// storage and returns the download URL.
func (h ReportHandler) ExportStays(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	from, to, err := parsePeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	url, err := h.Service.ExportStays(c.Request.Context(), from, to)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("stay export failed", "error", err)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "export failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

var _ ReportHTTP = (*ReportHandler)(nil)
