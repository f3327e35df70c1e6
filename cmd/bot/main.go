package main

import (
	"context"
	"log"

	"delta_bot/internal/modules/aggregator"
	"delta_bot/internal/modules/bootstrap"
	"delta_bot/internal/modules/config"
	"delta_bot/internal/modules/dashboard"
	"delta_bot/internal/modules/health"
	"delta_bot/internal/modules/okx_websocket"
	"delta_bot/internal/modules/postgres"
	"delta_bot/internal/modules/recorder"
	"delta_bot/internal/modules/strategy"
	"delta_bot/internal/runner"
	"delta_bot/pkg/logger"
	"delta_bot/pkg/tracing"

	"go.uber.org/fx"
)

const serviceName = "delta_bot"

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName(serviceName)
	tracing.SetServiceName(serviceName)

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		health.Module(),
		okx_websocket.Module(),
		aggregator.Module(),
		strategy.Module(),
		postgres.Module(),
		recorder.Module(),
		dashboard.Module(),
		bootstrap.Module(),
		runner.Module(),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			if !cfg.Jaeger.Enabled {
				return nil
			}
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closeTracer()
					return nil
				},
			})
			return nil
		}),
	)
	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}
	<-app.Done()
	if err := app.Stop(context.Background()); err != nil {
		log.Fatal(err)
	}
}
