package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/slideforge/slideforge-backend/internal/clients/imagegen"
	"github.com/slideforge/slideforge-backend/internal/clients/llm"
	"github.com/slideforge/slideforge-backend/internal/config"
	"github.com/slideforge/slideforge-backend/internal/db"
	"github.com/slideforge/slideforge-backend/internal/handlers"
	"github.com/slideforge/slideforge-backend/internal/media"
	"github.com/slideforge/slideforge-backend/internal/middleware"
	"github.com/slideforge/slideforge-backend/internal/observability"
	"github.com/slideforge/slideforge-backend/internal/platform/envutil"
	"github.com/slideforge/slideforge-backend/internal/platform/logger"
	"github.com/slideforge/slideforge-backend/internal/render"
	"github.com/slideforge/slideforge-backend/internal/repos"
	"github.com/slideforge/slideforge-backend/internal/server"
	"github.com/slideforge/slideforge-backend/internal/services"
	"github.com/slideforge/slideforge-backend/internal/slides"
)

func main() {
	log, err := logger.New(envutil.Str("APP_ENV", "development"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	shutdownTracing, err := observability.Setup(log)
	if err != nil {
		log.Fatal("tracing setup failed", "error", err)
	}

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("postgres setup failed", "error", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Fatal("postgres migration failed", "error", err)
	}

	llmClient, err := llm.NewClient(log)
	if err != nil {
		log.Fatal("llm client setup failed", "error", err)
	}

	// The image provider is optional. Without credentials every slide
	// picture comes from the local placeholder generator.
	placeholder := media.NewPlaceholderGenerator(log)
	var generator media.Generator = placeholder
	if providerClient, perr := imagegen.NewClient(log); perr != nil {
		log.Warn("image provider unavailable, using placeholders", "error", perr)
	} else {
		generator = media.NewFallbackGenerator(log, providerClient, placeholder)
	}

	renderCfg := config.FromEnv(log)
	renderer := render.NewRenderer(log, generator, renderCfg)
	assembler := slides.NewAssembler(log)

	conn := pg.DB()
	deckService := services.NewDeckService(
		log,
		llmClient,
		assembler,
		renderer,
		repos.NewPromptRepo(conn, log),
		repos.NewDeckRepo(conn, log),
		repos.NewGenerationEventRepo(conn, log),
		repos.NewMediaAssetRepo(conn, log),
	)

	authMiddleware, err := middleware.NewAuthMiddleware(log, os.Getenv("JWT_SECRET"))
	if err != nil {
		log.Fatal("auth setup failed", "error", err)
	}

	router := server.NewRouter(server.RouterConfig{
		AuthHandler:    handlers.NewAuthHandler(log, authMiddleware, os.Getenv("SERVICE_API_KEY")),
		AuthMiddleware: authMiddleware,
		DeckHandler:    handlers.NewDeckHandler(log, deckService),
	})

	addr := ":" + envutil.Str("PORT", "8080")
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		log.Error("tracing shutdown failed", "error", err)
	}
}
