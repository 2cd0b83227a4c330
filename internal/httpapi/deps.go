package httpapi

import (
	"database/sql"
	"sync/atomic"

	"cinematch-engine/internal/catalog"
	"cinematch-engine/internal/config"
	"cinematch-engine/internal/events"
	"cinematch-engine/internal/session"
)

type Deps struct {
	Catalog  *catalog.Catalog
	Sessions *session.Manager
	DB       *sql.DB

	Hub *events.Hub

	// Atomic store so PUT /config swaps apply without a restart
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
