package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"schedule-board/internal/config"
	"schedule-board/internal/domain"
	apphttp "schedule-board/internal/http"
	"schedule-board/internal/repository/memory"
	"schedule-board/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo := memory.NewUserRepository()
	blockRepo := memory.NewBlockRepository()

	hours := domain.HourMarks()
	userService := service.NewUserService(userRepo, blockRepo, cfg.Schedule.Palette, logger)
	blockService := service.NewBlockService(blockRepo, userRepo, hours)
	occupancyService := service.NewOccupancyService(blockRepo, userRepo, hours, cfg.Schedule.FallbackColor)

	if cfg.Seed.Demo {
		seedDemoUsers(ctx, userService, logger)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, blockService, occupancyService, cfg.Messages)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func seedDemoUsers(ctx context.Context, users service.UserService, logger *logrus.Logger) {
	demo := []service.CreateUserParams{
		{Name: "Alice Johnson", Address: "123 Maple St, Springfield", Phone: "555-1234", Email: "alice@example.com"},
		{Name: "Bob Smith", Address: "456 Oak Ave, Metropolis", Phone: "555-5678", Email: "bob@example.com"},
		{Name: "Charlie Brown", Address: "789 Pine Rd, Gotham", Phone: "555-9012", Email: "charlie@example.com"},
	}
	for _, params := range demo {
		if _, err := users.Create(ctx, params); err != nil {
			logger.Warnf("seed user %s: %v", params.Email, err)
		}
	}
}
