package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lanternhq/lantern/internal/app"
	"github.com/lanternhq/lantern/internal/auth"
	"github.com/lanternhq/lantern/internal/clients"
	"github.com/lanternhq/lantern/internal/decisions"
	"github.com/lanternhq/lantern/internal/events"
	"github.com/lanternhq/lantern/internal/notes"
	"github.com/lanternhq/lantern/internal/observability"
	"github.com/lanternhq/lantern/internal/platform/cache"
	"github.com/lanternhq/lantern/internal/platform/db"
	"github.com/lanternhq/lantern/internal/projects"
	"github.com/lanternhq/lantern/internal/tasks"
	"github.com/lanternhq/lantern/internal/users"
	"github.com/lanternhq/lantern/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	hasher := auth.BcryptHasher{}
	codec := auth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	revoked := auth.NewRevocationList(redisClient)
	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, hasher, codec, revoked)
	authHandler := auth.NewHandler(logger, authService, cfg.IsProduction())
	authMiddleware := auth.Middleware{
		Resolver: auth.NewResolver(codec, authRepo, revoked),
		Logger:   logger,
	}

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	usersHandler := users.NewHandler(logger, users.NewService(users.NewRepository(pool), hasher))
	clientsHandler := clients.NewHandler(logger, clients.NewService(clients.NewRepository(pool)))
	projectsHandler := projects.NewHandler(logger, projects.NewService(projects.NewRepository(pool)))
	decisionsHandler := decisions.NewHandler(logger, decisions.NewService(decisions.NewRepository(pool)))
	tasksHandler := tasks.NewHandler(logger, tasks.NewService(tasks.NewRepository(pool)))
	notesHandler := notes.NewHandler(logger, notes.NewService(notes.NewRepository(pool)))
	eventsHandler := events.NewHandler(logger, events.NewService(events.NewRepository(pool), jobClient))

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthMiddleware:   authMiddleware,
		AuthHandler:      authHandler,
		UsersHandler:     usersHandler,
		ClientsHandler:   clientsHandler,
		ProjectsHandler:  projectsHandler,
		DecisionsHandler: decisionsHandler,
		TasksHandler:     tasksHandler,
		NotesHandler:     notesHandler,
		EventsHandler:    eventsHandler,
		Metrics:          observability.NewMetrics(),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
