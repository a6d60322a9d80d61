package main

import (
	"bufio"
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"taskdeck/internal/cache"
	"taskdeck/internal/config"
	"taskdeck/internal/controller"
	"taskdeck/internal/database"
	"taskdeck/internal/gateway"
	"taskdeck/internal/queries"
	"taskdeck/internal/queue"
	"taskdeck/internal/routes"
	"taskdeck/internal/scheduler"
	"taskdeck/internal/service"
	"taskdeck/internal/store"
	"taskdeck/internal/worker"
	"taskdeck/pkg/logger"
)

func main() {
	loadEnvFile(".env")

	ctx := context.Background()
	cfg := config.Get()

	db := database.InitDB(ctx)
	if db == nil {
		logger.Error(ctx, "Database not available; exiting")
		os.Exit(1)
	}
	if err := database.MigrateOrCreateSchema(ctx); err != nil {
		logger.Error(ctx, "Schema migration failed", "error", err)
		os.Exit(1)
	}

	// Pre-warm Redis (optional; reads fall through to the store when
	// the cache is unavailable)
	rdb := cache.Client(ctx)

	// Pre-warm Kafka producer and ensure the reminder topic exists
	queue.Producer(ctx)
	queue.EnsureTopic(ctx)

	// Layering: controller -> service -> store -> gateway, each
	// collaborator handed in at construction.
	gw := gateway.NewPostgres(db)
	authStore := store.NewAuthStore(gw)
	todoStore := store.NewTodoStore(gw, db)
	resourceCache := cache.New(rdb, time.Duration(cfg.CacheTTL)*time.Second)
	orchestrator := queries.New(resourceCache)
	authSvc := service.NewAuth(authStore)
	todoSvc := service.NewTodo(todoStore, orchestrator)

	authCtl := controller.NewAuth(authSvc, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	todosCtl := controller.NewTodos(todoSvc)
	tasksCtl := controller.NewTasks(todoSvc, cfg.DueSoonHorizonDays)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	// Reminder pipeline: scheduler publishes, worker pool consumes
	go worker.Run(runCtx)
	sched := scheduler.New(todoStore, queue.KafkaPublisher{},
		time.Duration(cfg.ReminderScanSec)*time.Second, cfg.DueSoonHorizonDays)
	go sched.Run(runCtx)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.Router(authCtl, todosCtl, tasksCtl),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	logger.Info(ctx, "Server stopped")
}

// loadEnvFile reads a .env file and sets env vars (only if not already set).
func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
			val = strings.Trim(val, `"`)
		} else if strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
			val = strings.Trim(val, "'")
		}
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}
