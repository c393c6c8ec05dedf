package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/app/dto"
	frontdesksvc "frontdesk/internal/app/services/frontdesk"
	"frontdesk/internal/domain/expense"
)

type ExpenseHTTP interface {
	Record(c *gin.Context)
	List(c *gin.Context)
}

type ExpenseHandler struct {
	Service *frontdesksvc.Service
	Logger  *slog.Logger
}

type recordExpenseRequest struct {
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	IncurredAt  time.Time `json:"incurred_at"`
}

func (h ExpenseHandler) Record(c *gin.Context) {
	staff, ok := requireRole(c, "reception")
	if !ok {
		return
	}
	var req recordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	category, err := expense.ParseCategory(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.Service.RecordExpense(c.Request.Context(), frontdesksvc.RecordExpenseParams{
		Category:    category,
		Description: req.Description,
		Amount:      req.Amount,
		IncurredAt:  req.IncurredAt,
		RecordedBy:  staff.ID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapExpense(entry))
}

func (h ExpenseHandler) List(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	from, to, err := parsePeriod(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entries, err := h.Service.ListExpenses(c.Request.Context(), from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := dto.ExpenseCollection{Items: make([]dto.ExpenseView, 0, len(entries))}
	for _, entry := range entries {
		resp.Items = append(resp.Items, dto.MapExpense(entry))
	}
	c.JSON(http.StatusOK, resp)
}

func (h ExpenseHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, expense.ErrCategoryRequired),
		errors.Is(err, expense.ErrDescriptionRequired),
		errors.Is(err, expense.ErrNonPositiveAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("expense operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ ExpenseHTTP = (*ExpenseHandler)(nil)
