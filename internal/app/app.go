// Package app assembles the service from its configuration.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/PratikDhanave/car-inventory-bot/internal/assistant"
	"github.com/PratikDhanave/car-inventory-bot/internal/completion"
	"github.com/PratikDhanave/car-inventory-bot/internal/config"
	"github.com/PratikDhanave/car-inventory-bot/internal/handlers"
	"github.com/PratikDhanave/car-inventory-bot/internal/httpserver"
	"github.com/PratikDhanave/car-inventory-bot/internal/line"
	"github.com/PratikDhanave/car-inventory-bot/internal/store"
)

// App is the wired service. Close releases the store.
type App struct {
	Router *gin.Engine
	Store  store.Backend
}

// schemaEnsurer is implemented by backends that can create their table.
type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// New connects the store and builds the router. Clients are created once
// here and shared by every request.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if cfg.DBAutoMigrate {
		if s, ok := st.(schemaEnsurer); ok {
			if err := s.EnsureSchema(ctx); err != nil {
				_ = st.Close()
				return nil, fmt.Errorf("ensure schema: %w", err)
			}
			log.Info("inventory schema ensured", zap.String("table", cfg.InventoryTable))
		}
	}

	comp := completion.NewClient(completion.Options{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})

	responder := assistant.NewResponder(comp, st, assistant.Options{
		SystemPrompt: cfg.SystemPrompt,
		CallTimeout:  cfg.UpstreamTimeout,
		Logger:       log,
	})

	router := httpserver.NewRouter(httpserver.Deps{
		Store:  st,
		Logger: log,
		Webhook: handlers.WebhookDeps{
			ChannelSecret: cfg.LineChannelSecret,
			Responder:     responder,
			Replier:       line.NewClient(cfg.LineChannelAccessToken, cfg.LineAPIBase),
			Logger:        log,
			ReplyTimeout:  cfg.UpstreamTimeout,
		},
	})

	log.Info("service wired",
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("model", comp.Model()))

	return &App{Router: router, Store: st}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
