package main // Entry point package

import (
	"context"   // shutdown and consumer lifetime
	"errors"    // errors.Is for the server close error
	"log/slog"  // structured logging
	"net/http"  // http.ErrServerClosed
	"os"        // process exit and stdout
	"os/signal" // graceful shutdown on SIGINT/SIGTERM
	"syscall"   // SIGTERM
	"time"      // shutdown timeout

	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // request id, recover, request logging
	"github.com/redis/go-redis/v9"                  // limiter/cache backend

	"github.com/iliyamo/conference-room-booking/internal/booking"
	"github.com/iliyamo/conference-room-booking/internal/config"
	"github.com/iliyamo/conference-room-booking/internal/database"
	"github.com/iliyamo/conference-room-booking/internal/handler"
	"github.com/iliyamo/conference-room-booking/internal/middleware"
	"github.com/iliyamo/conference-room-booking/internal/queue"
	"github.com/iliyamo/conference-room-booking/internal/repository"
	"github.com/iliyamo/conference-room-booking/internal/router"
	"github.com/iliyamo/conference-room-booking/internal/service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		slog.Error("database open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			slog.Error("migration failed", "err", err)
			os.Exit(1)
		}
	}

	// Repositories
	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	rooms := repository.NewRoomRepo(db)
	engine := booking.NewEngine(
		repository.NewEnrollmentRepo(db),
		repository.NewTicketRepo(db),
		booking.SQLStore{Repo: repository.NewBookingRepo(db)},
	)

	// Booking events
	var events *service.BookingEvents
	if cfg.EventsEnabled {
		pub := service.NewPublisher(cfg.RabbitURL)
		defer pub.Close()
		events = service.NewBookingEvents(pub)
		engine.SetNotifier(events)
	}
	if cfg.ConsumerEnabled {
		go func() {
			if err := queue.StartBookingConsumer(ctx, cfg.RabbitURL, queue.NewAuditLog("logs/booking.log")); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("booking consumer stopped", "err", err)
			}
		}()
	}

	// Redis-backed middleware degrade to pass-through without a client.
	limiter, cache := noop, noop
	if rdb := config.NewRedisClient(); rdb != nil {
		defer rdb.Close()
		limiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), redis.Scripter(rdb))
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"request_id", v.RequestID,
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				slog.Error("request", append(attrs, "err", v.Error)...)
				return nil
			}
			slog.Info("request", attrs...)
			return nil
		},
	}))

	jwtAuth := middleware.JWTAuth(cfg.JWTSecret, sessions)
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, sessions), jwtAuth)
	router.RegisterRooms(e, handler.NewRoomHandler(rooms), cache)
	router.RegisterBooking(e, handler.NewBookingHandler(engine), jwtAuth, limiter)

	addr := ":" + cfg.Port
	go func() {
		slog.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "err", err)
	}
	if events != nil {
		if err := events.Close(shutdownCtx); err != nil {
			slog.Warn("booking events not drained", "err", err)
		}
	}
}

func noop(next echo.HandlerFunc) echo.HandlerFunc { return next }
