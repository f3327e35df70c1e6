package dashboard

import (
	"context"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"

	appcfg "delta_bot/internal/modules/config"
	"delta_bot/internal/modules/dashboard/service"
)

func Module() fx.Option {
	return fx.Module("dashboard",
		fx.Provide(
			service.NewHandlers,
		),
		fx.Invoke(func(lc fx.Lifecycle, cfg *appcfg.Config, h *service.Handlers) {
			srv := &http.Server{
				Addr:              cfg.Service.PublicAddr,
				Handler:           h.Mux(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					ln, err := net.Listen("tcp", cfg.Service.PublicAddr)
					if err != nil {
						return err
					}
					go func() { _ = srv.Serve(ln) }()
					return nil
				},
				OnStop: func(ctx context.Context) error {
					return srv.Shutdown(ctx)
				},
			})
		}),
	)
}
