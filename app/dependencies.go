package app

import (
	"fmt"
	"net/http"

	"github.com/modelrelay/relay/config"
	"github.com/modelrelay/relay/handlers"
	"github.com/modelrelay/relay/services/relay"
	"github.com/modelrelay/relay/services/routing"
	"github.com/modelrelay/relay/services/secrets"
	"github.com/modelrelay/relay/services/upstream"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection: the routing
// table and credential store are built once here and shared read-only by
// every request.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger

	// Domain
	RoutingTable *routing.Table
	SecretStore  secrets.Store
	RelayService *relay.Service

	// Handlers
	ChatHandler   *handlers.ChatHandler
	ModelsHandler *handlers.ModelsHandler
	HealthHandler *handlers.HealthHandler
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	table, err := routing.LoadTable(cfg.Routes.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load routing table: %w", err)
	}
	logger.Info("routing table loaded",
		zap.Int("routes", table.Len()),
		zap.String("source", routesSource(cfg)))

	store := secrets.NewEnvStore()

	client := upstream.NewClient(&http.Client{Timeout: cfg.Upstream.Timeout}, logger)

	service := relay.NewService(table, store, client, logger)

	deps := &Dependencies{
		Config:       cfg,
		Logger:       logger,
		RoutingTable: table,
		SecretStore:  store,
		RelayService: service,

		ChatHandler:   handlers.NewChatHandler(service, logger),
		ModelsHandler: handlers.NewModelsHandler(table, logger),
		HealthHandler: handlers.NewHealthHandler(table.Len(), logger),
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close() error {
	d.Logger.Info("shutting down dependencies")
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}
	return nil
}

func routesSource(cfg *config.Config) string {
	if cfg.Routes.File == "" {
		return "builtin"
	}
	return cfg.Routes.File
}
