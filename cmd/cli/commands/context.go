package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/stroke-rate/boathouse/internal/config"
	"github.com/stroke-rate/boathouse/pkg/core/events"
	"github.com/stroke-rate/boathouse/pkg/db"
	"github.com/stroke-rate/boathouse/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Store    db.Store
	Sink     events.Sink
	Logger   *zap.Logger
	Ctx      context.Context
}
