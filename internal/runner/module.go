package runner

import (
	"context"

	aggsvc "delta_bot/internal/modules/aggregator/service"
	"delta_bot/internal/modules/config"
	healthsvc "delta_bot/internal/modules/health/service"
	recordersvc "delta_bot/internal/modules/recorder/service"
	strategysvc "delta_bot/internal/modules/strategy/service"
	"delta_bot/internal/notify"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			// Notifier: если TELEGRAM_* нет — используем stdout
			func(cfg *config.Config) notify.Notifier {
				if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
					if tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID); err == nil {
						return tg
					}
				}
				return notify.NewStdout()
			},
			func(
				cfg *config.Config,
				agg *aggsvc.Aggregator,
				engine strategysvc.Engine,
				state *healthsvc.State,
				n notify.Notifier,
				rec recordersvc.Recorder,
			) *Runner {
				return New(cfg.SampleInterval, agg, engine, state, n, rec)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, r *Runner, ctx context.Context) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go r.Start(ctx)
					return nil
				},
			})
		}),
	)
}
