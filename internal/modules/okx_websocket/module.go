package okx_websocket

import (
	"context"
	"time"

	"delta_bot/internal/modules/config"
	healthsvc "delta_bot/internal/modules/health/service"
	"delta_bot/internal/modules/okx_websocket/service"

	"go.uber.org/fx"
)

// Feeds — по одному соединению и фиду книги на каждый из двух рынков.
type Feeds struct {
	Spot *service.BookFeed
	Perp *service.BookFeed
}

func NewFeeds(cfg *config.Config) *Feeds {
	return &Feeds{
		Spot: service.NewBookFeed(service.NewConn(service.PublicWSURL, cfg.ConnectTimeout), cfg.SpotMarket),
		Perp: service.NewBookFeed(service.NewConn(service.PublicWSURL, cfg.ConnectTimeout), cfg.PerpFuture),
	}
}

func Module() fx.Option {
	return fx.Module("okx_websocket",
		fx.Provide(
			NewFeeds,
		),
		// health-флаг wsConnected обновляется фоновым вотчером
		fx.Invoke(func(lc fx.Lifecycle, f *Feeds, state *healthsvc.State) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					go func() {
						t := time.NewTicker(2 * time.Second)
						defer t.Stop()
						for range t.C {
							state.SetWSConnected(f.Spot.Connected() && f.Perp.Connected())
						}
					}()
					return nil
				},
			})
		}),
	)
}
