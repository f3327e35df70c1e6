package recorder

import (
	"context"
	"fmt"
	"time"

	"delta_bot/internal/modules/config"
	"delta_bot/internal/modules/recorder/service"
	"delta_bot/pkg/db"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("recorder",
		fx.Provide(
			func(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, tm *db.PgTxManager) (service.Recorder, error) {
				rec, err := newRecorder(ctx, cfg, tm)
				if err != nil {
					return nil, err
				}
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error { return rec.Close() },
				})
				return rec, nil
			},
		),
	)
}

func newRecorder(ctx context.Context, cfg *config.Config, tm *db.PgTxManager) (service.Recorder, error) {
	switch cfg.Recorder {
	case "csv":
		return service.NewCSV(cfg.LogDir, cfg.LogfileName(time.Now()))
	case "postgres":
		if tm == nil {
			return nil, fmt.Errorf("recorder: postgres backend requires db_dsn")
		}
		return service.NewPg(ctx, tm)
	default:
		return service.Nop{}, nil
	}
}
