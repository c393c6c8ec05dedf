package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/infra/config"
	"frontdesk/internal/infra/obs"
)

type Handlers struct {
	Auth           AuthHTTP
	Reservations   ReservationHTTP
	Rooms          RoomHTTP
	Customers      CustomerHTTP
	Expenses       ExpenseHTTP
	Stats          StatsHTTP
	Reports        ReportHTTP
	Admin          AdminHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Rooms != nil {
		api.GET("/rooms/board", h.Rooms.Board)
		api.POST("/rooms", h.Rooms.Create)
		api.PATCH("/rooms/:id/status", h.Rooms.SetStatus)
		api.GET("/rooms/rates", h.Rooms.Rates)
		api.PUT("/rooms/rates", h.Rooms.SetRate)
	}
	if h.Reservations != nil {
		api.POST("/reservations/check-in", h.Reservations.CheckIn)
		api.GET("/reservations/:id", h.Reservations.Get)
		api.POST("/reservations/:id/edit-stay", h.Reservations.EditStay)
		api.POST("/reservations/:id/extras", h.Reservations.AddExtras)
		api.POST("/reservations/:id/check-out", h.Reservations.CheckOut)
		api.POST("/reservations/:id/cancel", h.Reservations.Cancel)
	}
	if h.Customers != nil {
		api.POST("/customers", h.Customers.Register)
		api.GET("/customers", h.Customers.List)
		api.GET("/customers/:id/history", h.Customers.History)
	}
	if h.Expenses != nil {
		api.POST("/expenses", h.Expenses.Record)
		api.GET("/expenses", h.Expenses.List)
	}
	if h.Stats != nil {
		api.GET("/stats/dashboard", h.Stats.Dashboard)
	}
	if h.Reports != nil {
		api.POST("/reports/stays", h.Reports.ExportStays)
	}
	if h.Admin != nil {
		adminGroup := api.Group("/admin")
		adminGroup.POST("/staff", h.Admin.CreateStaff)
		adminGroup.GET("/staff", h.Admin.ListStaff)
		adminGroup.PATCH("/staff/:id/blocked", h.Admin.SetBlocked)
		adminGroup.PUT("/staff/:id/roles", h.Admin.AssignRoles)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
