package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/agent-hub/agent-hub/internal/api/http"
	"github.com/agent-hub/agent-hub/internal/application/dispatch"
	"github.com/agent-hub/agent-hub/internal/application/intent"
	"github.com/agent-hub/agent-hub/internal/application/registry"
	extsync "github.com/agent-hub/agent-hub/internal/application/sync"
	"github.com/agent-hub/agent-hub/internal/config"
	"github.com/agent-hub/agent-hub/internal/domain/agent"
	"github.com/agent-hub/agent-hub/internal/domain/execution"
	"github.com/agent-hub/agent-hub/internal/infrastructure/memory"
	"github.com/agent-hub/agent-hub/internal/infrastructure/postgres"
	"github.com/agent-hub/agent-hub/internal/llm"
	"github.com/agent-hub/agent-hub/internal/prompt"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()

	// The registry is in-memory. Postgres is only attached for the
	// execution trail when a DSN is configured.
	var trail execution.Repository
	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db error: %v", err)
		}
		defer pool.Close()
		if err := postgres.RunMigrations(ctx, pool, "internal/migrations"); err != nil {
			log.Fatalf("migration error: %v", err)
		}
		trail = postgres.NewExecutionRepository(pool)
	}

	repo := memory.NewAgentRepository()
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	llmClient := llm.NewClient(cfg.LLMAPIKey, cfg.LLMAPIBase, cfg.LLMModel, cfg.HTTPTimeout, logger)
	prompts := prompt.NewStore(cfg.PromptDir)

	// services
	registrySvc := registry.NewService(repo, logger)
	intentSvc := intent.NewService(repo, llmClient, intent.NewSessionStore(), logger)
	external := dispatch.NewExternalProcessor(httpClient, dispatch.DefaultEndpoints(cfg.ExternalAPIBase), cfg.ExternalAPIBase+"/process", logger)
	dispatchSvc := dispatch.NewService(repo, dispatch.BuiltinHandlers(llmClient, prompts), dispatch.EchoHandler{}, external, trail, logger)
	syncSvc := extsync.NewService(repo, httpClient, cfg.ExternalDirectoryURL, cfg.SyncFilter, logger)

	// built-in agents
	for _, spec := range dispatch.Builtins() {
		_, created, err := registrySvc.RegisterBuiltin(registry.RegisterInput{
			Name:         spec.Name,
			Description:  spec.Description,
			Type:         agent.TypeWorker,
			Capabilities: spec.Capabilities,
		})
		if err != nil {
			log.Fatalf("builtin registration error: %v", err)
		}
		if created {
			logger.Info().Str("agent", spec.Name).Msg("built-in agent registered")
		}
	}

	// API server
	apiServer := httpapi.NewServer(registrySvc, intentSvc, dispatchSvc, syncSvc, logger)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
}
