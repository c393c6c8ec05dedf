package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/app/dto"
	authsvc "frontdesk/internal/app/services/auth"
	domainuser "frontdesk/internal/domain/user"
)

type AdminHTTP interface {
	CreateStaff(c *gin.Context)
	ListStaff(c *gin.Context)
	SetBlocked(c *gin.Context)
	AssignRoles(c *gin.Context)
}

type AdminHandler struct {
	Auth   *authsvc.Service
	Logger *slog.Logger
}

type createStaffRequest struct {
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

func (h AdminHandler) CreateStaff(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	var req createStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	staff, err := h.Auth.CreateStaff(c.Request.Context(), authsvc.CreateStaffParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Roles:    toRoles(req.Roles),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapUserProfile(staff))
}

func (h AdminHandler) ListStaff(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	staff, err := h.Auth.ListStaff(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := dto.UserList{Items: make([]dto.UserProfile, 0, len(staff))}
	for _, member := range staff {
		resp.Items = append(resp.Items, dto.MapUserProfile(member))
	}
	c.JSON(http.StatusOK, resp)
}

type setBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

func (h AdminHandler) SetBlocked(c *gin.Context) {
	caller, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	id := c.Param("id")
	if id == caller.ID {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cannot block own account"})
		return
	}
	var req setBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	staff, err := h.Auth.SetBlocked(c.Request.Context(), domainuser.ID(id), req.Blocked)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapUserProfile(staff))
}

type assignRolesRequest struct {
	Roles []string `json:"roles"`
}

func (h AdminHandler) AssignRoles(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	var req assignRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	staff, err := h.Auth.AssignRoles(c.Request.Context(), domainuser.ID(c.Param("id")), toRoles(req.Roles))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapUserProfile(staff))
}

func (h AdminHandler) respondError(c *gin.Context, err error) {
	handler := AuthHandler{Logger: h.Logger}
	handler.respondAuthError(c, err)
}

func toRoles(raw []string) []domainuser.Role {
	roles := make([]domainuser.Role, 0, len(raw))
	for _, r := range raw {
		roles = append(roles, domainuser.Role(r))
	}
	return roles
}

var _ AdminHTTP = (*AdminHandler)(nil)
