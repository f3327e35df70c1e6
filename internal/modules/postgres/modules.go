package postgres

import (
	"context"
	"fmt"

	"delta_bot/internal/modules/config"
	"delta_bot/pkg/db"

	"go.uber.org/fx"
)

// Module поднимает пул только когда рекордеру нужен Postgres;
// иначе провайдер отдаёт nil и рекордер выбирает другой бэкенд.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config) (*db.PgTxManager, error) {
				if cfg.Recorder != "postgres" {
					return nil, nil
				}
				poolMaster, err := db.NewPool(ctx, db.PoolConfig{
					DSN: cfg.DB,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create poolMaster: %w", err)
				}

				if err := poolMaster.Ping(ctx); err != nil {
					return nil, err
				}

				return db.NewPgTxManager(poolMaster), nil
			},
		),
	)
}
