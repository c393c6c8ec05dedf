package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/app/dto"
	frontdesksvc "frontdesk/internal/app/services/frontdesk"
	"frontdesk/internal/domain/rooms"
	"frontdesk/internal/infra/db/mongo"
)

type RoomHTTP interface {
	Board(c *gin.Context)
	Create(c *gin.Context)
	SetStatus(c *gin.Context)
	Rates(c *gin.Context)
	SetRate(c *gin.Context)
}

type RoomHandler struct {
	Service *frontdesksvc.Service
	Logger  *slog.Logger
}

// Board returns every room with its live status and active stay.
func (h RoomHandler) Board(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	entries, err := h.Service.RoomBoard(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapBoard(entries))
}

type createRoomRequest struct {
	Number   string `json:"number"`
	Floor    int    `json:"floor"`
	RateType string `json:"rate_type"`
	Notes    string `json:"notes"`
}

func (h RoomHandler) Create(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	room, err := h.Service.CreateRoom(c.Request.Context(), frontdesksvc.CreateRoomParams{
		Number:   req.Number,
		Floor:    req.Floor,
		RateType: rooms.RateType(req.RateType),
		Notes:    req.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapRoom(room))
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h RoomHandler) SetStatus(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	status, err := rooms.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.Service.SetRoomStatus(c.Request.Context(), rooms.RoomID(c.Param("id")), status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapRoom(room))
}

func (h RoomHandler) Rates(c *gin.Context) {
	if _, ok := requireRole(c, "reception"); !ok {
		return
	}
	plan, err := h.Service.RatePlan(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapRatePlan(plan))
}

type setRateRequest struct {
	RateType string `json:"rate_type"`
	Nightly  int64  `json:"nightly"`
}

func (h RoomHandler) SetRate(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	var req setRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	plan, err := h.Service.SetNightlyRate(c.Request.Context(), rooms.RateType(req.RateType), req.Nightly)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapRatePlan(plan))
}

func (h RoomHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rooms.ErrRoomNotFound), errors.Is(err, rooms.ErrRatePlanNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, rooms.ErrNumberTaken),
		errors.Is(err, rooms.ErrInvalidTransition),
		errors.Is(err, frontdesksvc.ErrRoomOccupied),
		errors.Is(err, mongo.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, rooms.ErrNumberRequired),
		errors.Is(err, rooms.ErrRateTypeRequired),
		errors.Is(err, rooms.ErrNegativeRate),
		errors.Is(err, rooms.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("room operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ RoomHTTP = (*RoomHandler)(nil)
