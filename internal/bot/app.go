// Package bot orchestrates inbound dialogue events: it owns the session
// registry lookups, drives the state machine, triggers rendering and
// journaling on finalize, and adapts everything to the Telegram transport.
package bot

import (
	"github.com/marinops/fleetcheck/internal/core/assets"
	"github.com/marinops/fleetcheck/internal/core/catalog"
	"github.com/marinops/fleetcheck/internal/core/config"
	"github.com/marinops/fleetcheck/internal/data/db"
	"github.com/marinops/fleetcheck/internal/data/stores"
)

// App is the central entry point for all fleetcheck operations. Commands
// consume App instead of cherry-picking raw dependencies.
type App struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Sessions *stores.SessionStore
	Journal  *stores.JournalStore
	Assets   *assets.Manager
	Service  *Service
	DB       *db.DB
}

// NewApp constructs an App from explicit dependencies.
func NewApp(
	cfg *config.Config,
	cat *catalog.Catalog,
	sessions *stores.SessionStore,
	journal *stores.JournalStore,
	assetMgr *assets.Manager,
	svc *Service,
	database *db.DB,
) *App {
	return &App{
		Config:   cfg,
		Catalog:  cat,
		Sessions: sessions,
		Journal:  journal,
		Assets:   assetMgr,
		Service:  svc,
		DB:       database,
	}
}
