package bootstrap

import (
	"context"
	"log"

	bootstrap "delta_bot/internal/modules/bootstrap/service"
	healthsvc "delta_bot/internal/modules/health/service"
	okxclient "delta_bot/internal/modules/okx_client/service"
	"delta_bot/internal/modules/okx_websocket"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(
			okxclient.NewClient,
			bootstrap.NewValidator,
		),
		fx.Invoke(func(lc fx.Lifecycle, v *bootstrap.Validator, feeds *okx_websocket.Feeds, state *healthsvc.State) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					// кривые имена рынков валят процесс до любого стрима
					if err := v.ValidateMarkets(ctx); err != nil {
						return err
					}
					log.Printf("[BOOT] markets validated: %s %s", feeds.Spot.InstID(), feeds.Perp.InstID())

					// первые Connect; дальше автомат живёт сам,
					// неудача здесь не фатальна — Send дотянется позже
					if err := feeds.Spot.Start(); err != nil {
						log.Printf("[BOOT] spot connect: %v", err)
					}
					if err := feeds.Perp.Start(); err != nil {
						log.Printf("[BOOT] perp connect: %v", err)
					}

					state.SetReady(true)
					return nil
				},
			})
		}),
	)
}
