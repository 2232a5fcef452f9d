// Package enginefx provides an fx module for a woodpusher engine session.
package enginefx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/woodpusher"
	"github.com/discochess/woodpusher/internal/stats"
	"github.com/discochess/woodpusher/internal/stats/logger"
)

// Module provides a *woodpusher.Session wired to the application's
// logger and lifecycle. Requires a *zap.Logger to be provided.
var Module = fx.Module("woodpusher",
	fx.Provide(
		newStatsCollector,
		newSession,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("woodpusher.stats"))
}

// Params holds dependencies for creating the session.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided session.
type Result struct {
	fx.Out

	Session *woodpusher.Session
}

func newSession(p Params) (Result, error) {
	session, err := woodpusher.New(
		woodpusher.WithStats(p.Collector),
		woodpusher.WithLogger(p.Logger.Named("woodpusher")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return session.Close()
		},
	})

	return Result{Session: session}, nil
}
