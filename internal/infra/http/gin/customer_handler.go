package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/app/dto"
	frontdesksvc "frontdesk/internal/app/services/frontdesk"
	"frontdesk/internal/domain/customer"
)

type CustomerHTTP interface {
	Register(c *gin.Context)
	List(c *gin.Context)
	History(c *gin.Context)
}

type CustomerHandler struct {
	Service *frontdesksvc.Service
	Logger  *slog.Logger
}

type registerCustomerRequest struct {
	FullName   string `json:"full_name"`
	DocumentID string `json:"document_id"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes"`
}

// Register creates a guest profile, or refreshes contact details when
// the document id is already on file.
func (h CustomerHandler) Register(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	var req registerCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	guest, err := h.Service.RegisterCustomer(c.Request.Context(), frontdesksvc.RegisterCustomerParams{
		FullName:   req.FullName,
		DocumentID: req.DocumentID,
		Phone:      req.Phone,
		Notes:      req.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapCustomer(guest))
}

func (h CustomerHandler) List(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	guests, err := h.Service.ListCustomers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := dto.CustomerCollection{Items: make([]dto.CustomerView, 0, len(guests))}
	for _, guest := range guests {
		resp.Items = append(resp.Items, dto.MapCustomer(guest))
	}
	c.JSON(http.StatusOK, resp)
}

func (h CustomerHandler) History(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	guest, stays, err := h.Service.CustomerHistory(c.Request.Context(), customer.ID(c.Param("id")))
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := dto.CustomerHistory{
		Customer: dto.MapCustomer(guest),
		Stays:    make([]dto.ReservationView, 0, len(stays)),
	}
	for _, stay := range stays {
		resp.Stays = append(resp.Stays, dto.MapReservation(stay))
	}
	c.JSON(http.StatusOK, resp)
}

func (h CustomerHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, customer.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, customer.ErrNameRequired), errors.Is(err, customer.ErrDocumentRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, customer.ErrDocumentTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("customer operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ CustomerHTTP = (*CustomerHandler)(nil)
