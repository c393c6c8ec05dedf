package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/app/dto"
	frontdesksvc "frontdesk/internal/app/services/frontdesk"
	"frontdesk/internal/domain/customer"
	"frontdesk/internal/domain/reservation"
	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/infra/db/mongo"
)

type ReservationHTTP interface {
	CheckIn(c *gin.Context)
	EditStay(c *gin.Context)
	AddExtras(c *gin.Context)
	CheckOut(c *gin.Context)
	Cancel(c *gin.Context)
	Get(c *gin.Context)
}

type ReservationHandler struct {
	Service *frontdesksvc.Service
	Logger  *slog.Logger
}

type checkInRequest struct {
	CustomerID string    `json:"customer_id"`
	RoomID     string    `json:"room_id"`
	RateType   string    `json:"rate_type"`
	Adults     int       `json:"adults"`
	Children   int       `json:"children"`
	CheckOut   time.Time `json:"check_out"`
}

func (h ReservationHandler) CheckIn(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	res, err := h.Service.CheckIn(c.Request.Context(), frontdesksvc.CheckInParams{
		CustomerID: req.CustomerID,
		RoomID:     rooms.RoomID(req.RoomID),
		RateType:   rooms.RateType(req.RateType),
		Adults:     req.Adults,
		Children:   req.Children,
		CheckOut:   req.CheckOut,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapReservation(res))
}

type editStayRequest struct {
	RoomID   string    `json:"room_id"`
	RateType string    `json:"rate_type"`
	CheckOut time.Time `json:"check_out"`
}

// EditStay applies a room, rate or checkout change to an in-progress
// stay and returns the reservation together with the cost breakdown.
func (h ReservationHandler) EditStay(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	var req editStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	res, outcome, err := h.Service.EditStay(c.Request.Context(), frontdesksvc.EditStayParams{
		ReservationID: reservation.ReservationID(c.Param("id")),
		RoomID:        rooms.RoomID(req.RoomID),
		RateType:      rooms.RateType(req.RateType),
		CheckOut:      req.CheckOut,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReservationWithBreakdown{
		Reservation: dto.MapReservation(res),
		Breakdown:   dto.MapBreakdown(outcome),
	})
}

type addExtrasRequest struct {
	Items []struct {
		Name      string `json:"name"`
		UnitPrice int64  `json:"unit_price"`
		Quantity  int64  `json:"quantity"`
	} `json:"items"`
}

func (h ReservationHandler) AddExtras(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	var req addExtrasRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	items := make([]frontdesksvc.ExtraItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, frontdesksvc.ExtraItem{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	res, err := h.Service.AddExtras(c.Request.Context(), reservation.ReservationID(c.Param("id")), items)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(res))
}

func (h ReservationHandler) CheckOut(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	res, err := h.Service.CheckOut(c.Request.Context(), reservation.ReservationID(c.Param("id")))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(res))
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h ReservationHandler) Cancel(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	var req cancelRequest
	_ = c.ShouldBindJSON(&req) // reason is optional
	res, err := h.Service.Cancel(c.Request.Context(), reservation.ReservationID(c.Param("id")), req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(res))
}

func (h ReservationHandler) Get(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	res, err := h.Service.Reservations.ByID(c.Request.Context(), reservation.ReservationID(c.Param("id")))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(res))
}

func (h ReservationHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrNotFound),
		errors.Is(err, customer.ErrNotFound),
		errors.Is(err, rooms.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, frontdesksvc.ErrRoomUnavailable),
		errors.Is(err, frontdesksvc.ErrRoomOccupied),
		errors.Is(err, reservation.ErrInvalidState),
		errors.Is(err, rooms.ErrInvalidTransition),
		errors.Is(err, mongo.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, reservation.ErrCheckOutTooEarly),
		errors.Is(err, reservation.ErrInvalidGuests),
		errors.Is(err, reservation.ErrInvalidExtra),
		errors.Is(err, reservation.ErrExtraCurrency):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("reservation operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ ReservationHTTP = (*ReservationHandler)(nil)
