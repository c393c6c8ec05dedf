package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	appoutbox "frontdesk/internal/app/outbox"
	authsvc "frontdesk/internal/app/services/auth"
	frontdesksvc "frontdesk/internal/app/services/frontdesk"
	reportssvc "frontdesk/internal/app/services/reports"
	statssvc "frontdesk/internal/app/services/stats"
	domainauth "frontdesk/internal/domain/auth"
	"frontdesk/internal/domain/customer"
	"frontdesk/internal/domain/expense"
	"frontdesk/internal/domain/reservation"
	"frontdesk/internal/domain/rooms"
	domainuser "frontdesk/internal/domain/user"
	"frontdesk/internal/infra/broker/kafka"
	"frontdesk/internal/infra/config"
	mongodb "frontdesk/internal/infra/db/mongo"
	ginserver "frontdesk/internal/infra/http/gin"
	"frontdesk/internal/infra/obs"
	infraoutbox "frontdesk/internal/infra/outbox"
	"frontdesk/internal/infra/security"
	"frontdesk/internal/infra/session"
	"frontdesk/internal/infra/storage/memory"
	"frontdesk/internal/infra/storage/s3"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger("dev").Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	deps, err := buildDependencies(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	authService := &authsvc.Service{
		Users:      deps.users,
		Sessions:   deps.sessions,
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}
	deskService := &frontdesksvc.Service{
		Reservations: deps.reservations,
		Rooms:        deps.rooms,
		RatePlans:    deps.ratePlans,
		Customers:    deps.customers,
		Expenses:     deps.expenses,
		Outbox:       deps.outbox,
		Encoder:      appoutbox.JSONEventEncoder{},
		Logger:       logger,
		Currency:     cfg.Currency,
	}
	statsService := &statssvc.Service{
		Reservations: deps.reservations,
		Rooms:        deps.rooms,
		Expenses:     deps.expenses,
		RatePlans:    deps.ratePlans,
	}
	reportService := &reportssvc.Service{
		Reservations: deps.reservations,
		Uploader:     deps.uploader,
		Logger:       logger,
	}

	seedAdmin(ctx, cfg, authService, logger)

	handlers := ginserver.Handlers{
		Auth:           ginserver.AuthHandler{Service: authService, Logger: logger},
		Reservations:   ginserver.ReservationHandler{Service: deskService, Logger: logger},
		Rooms:          ginserver.RoomHandler{Service: deskService, Logger: logger},
		Customers:      ginserver.CustomerHandler{Service: deskService, Logger: logger},
		Expenses:       ginserver.ExpenseHandler{Service: deskService, Logger: logger},
		Stats:          ginserver.StatsHandler{Service: statsService, Logger: logger},
		Reports:        ginserver.ReportHandler{Service: reportService, Logger: logger},
		Admin:          ginserver.AdminHandler{Auth: authService, Logger: logger},
		AuthMiddleware: ginserver.AuthMiddleware{Service: authService, Logger: logger}.Handle,
	}
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: deps.ready,
	}, handlers)

	if deps.worker != nil {
		go func() {
			if err := deps.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		if deps.close != nil {
			deps.close()
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type dependencies struct {
	reservations reservation.Repository
	rooms        rooms.Repository
	ratePlans    rooms.RatePlanRepository
	customers    customer.Repository
	expenses     expense.Repository
	users        domainuser.Repository
	sessions     domainauth.SessionStore
	outbox       appoutbox.Outbox
	uploader     reportssvc.Uploader
	worker       *infraoutbox.Worker
	ready        func() error
	close        func()
}

func buildDependencies(cfg config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{ready: func() error { return nil }}

	switch cfg.StorageMode {
	case config.StorageMongo:
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		deps.reservations = mongodb.NewReservationRepository(client.DB)
		deps.rooms = mongodb.NewRoomRepository(client.DB)
		deps.ratePlans = mongodb.NewRatePlanRepository(client.DB)
		deps.customers = mongodb.NewCustomerRepository(client.DB)
		deps.expenses = mongodb.NewExpenseRepository(client.DB)
		deps.users = mongodb.NewStaffRepository(client.DB)
		deps.ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		deps.close = func() { _ = client.Close(context.Background()) }

		store := infraoutbox.NewStore(client.DB)
		deps.outbox = store
		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaClientID, nil)
			if err != nil {
				return nil, err
			}
			deps.worker = &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
		} else {
			logger.Warn("kafka brokers not configured, outbox events stay queued")
		}
	case config.StorageMemory:
		plan, err := rooms.NewRatePlan(cfg.Currency, time.Now())
		if err != nil {
			return nil, err
		}
		deps.reservations = memory.NewReservationRepository()
		deps.rooms = memory.NewRoomRepository()
		deps.ratePlans = memory.NewRatePlanRepository(plan)
		deps.customers = memory.NewCustomerRepository()
		deps.expenses = memory.NewExpenseRepository()
		deps.users = memory.NewUserRepository()
		deps.outbox = memory.NewOutbox()
		logger.Warn("using in-memory storage, data is lost on restart")
	}

	switch cfg.SessionStore {
	case config.SessionsRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		deps.sessions = session.NewRedisStore(client)
	case config.SessionsMemory:
		deps.sessions = memory.NewSessionStore()
	}

	uploader, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
	if err != nil {
		logger.Warn("object storage unavailable, report export disabled", "error", err)
		deps.uploader = s3.NoopUploader{}
	} else {
		deps.uploader = uploader
	}
	return deps, nil
}

// seedAdmin creates the bootstrap admin account on first start.
func seedAdmin(ctx context.Context, cfg config.Config, auth *authsvc.Service, logger *slog.Logger) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	_, err := auth.CreateStaff(ctx, authsvc.CreateStaffParams{
		Email:    cfg.AdminEmail,
		Name:     "Administrator",
		Password: cfg.AdminPassword,
		Roles:    []domainuser.Role{domainuser.RoleAdmin, domainuser.RoleReception},
	})
	switch {
	case err == nil:
		logger.Info("bootstrap admin created", "email", cfg.AdminEmail)
	case errors.Is(err, domainuser.ErrEmailAlreadyUsed):
	default:
		logger.Warn("bootstrap admin creation failed", "error", err)
	}
}
