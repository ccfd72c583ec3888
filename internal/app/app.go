// Package app assembles the store-facing pieces shared by the server and the CLI tools.
package app

import (
	"context"

	"github.com/gogotex/usergateway/internal/config"
	"github.com/gogotex/usergateway/internal/database"
	"github.com/gogotex/usergateway/internal/gateway"
	"github.com/gogotex/usergateway/internal/models"
	"github.com/gogotex/usergateway/pkg/logger"
)

// App owns the connection manager and the gateways built on it.
type App struct {
	Config  *config.Config
	Manager *database.Manager
	Users   *gateway.Gateway[models.User]
}

// New builds the gateways for the configured backend. With the mongo backend
// it blocks until the connection is established; a failure terminates the process.
func New(ctx context.Context, cfg *config.Config) *App {
	a := &App{Config: cfg, Manager: database.NewManager()}
	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Warnf("using in-memory document store; data is lost on exit")
		a.Users = gateway.New[models.User](models.UsersCollection,
			gateway.NewMemoryCollection[models.User](models.UserRequiredFields...))
	default:
		h := a.Manager.Establish(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
		if h == nil {
			return nil
		}
		a.Users = gateway.NewMongo[models.User](h, models.UsersCollection, models.UserRequiredFields...)
	}
	return a
}

// Ready reports whether the store can serve requests.
func (a *App) Ready(ctx context.Context) error {
	if a.Config.Store.Backend == config.BackendMemory {
		return nil
	}
	return a.Manager.Ready(ctx)
}

// Close releases the store connection, if any.
func (a *App) Close(ctx context.Context) {
	h, err := a.Manager.Current()
	if err != nil {
		return
	}
	if err := h.Disconnect(ctx); err != nil {
		logger.Warnf("mongo disconnect: %v", err)
	}
}
