package aggregator

import (
	"delta_bot/internal/modules/aggregator/service"
	"delta_bot/internal/modules/config"
	"delta_bot/internal/modules/okx_websocket"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("aggregator",
		fx.Provide(
			func(cfg *config.Config, feeds *okx_websocket.Feeds) *service.Aggregator {
				return service.New(feeds.Spot, feeds.Perp, cfg.MaxVisibleLength)
			},
		),
	)
}
