package components

import (
	"context"
	"log/slog"

	"cinema-seat-hold/internal/infra/broker"
	"cinema-seat-hold/internal/pkg/clock"
	"cinema-seat-hold/internal/pkg/config"
	"cinema-seat-hold/internal/usecase/lifecycle"
	"cinema-seat-hold/internal/usecase/queries"

	"go.uber.org/fx"
)

var ClockModule = fx.Module("clock",
	fx.Provide(
		clock.NewRealClock,
	),
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseLifecycleModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	NewEventSink,
	fx.Annotate(
		lifecycle.NewRandomCodes,
		fx.As(new(lifecycle.CodeGenerator)),
	),
)

var usecaseLifecycleModule = fx.Module("usecase/lifecycle",
	fx.Provide(
		NewEngine,
		func(e *lifecycle.Engine) lifecycle.HoldService { return e },
	),
	fx.Invoke(RunJanitor),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewScreeningQueries,
	),
)

// NewEventSink publishes to AMQP when enabled and logs events otherwise.
func NewEventSink(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) lifecycle.EventSink {
	if !cfg.Broker.Enabled {
		return broker.NewLogSink(logger)
	}
	publisher := broker.NewPublisher(cfg.Broker, nil, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			publisher.Close()
			return nil
		},
	})
	return publisher
}

type EngineParams struct {
	fx.In

	Config  config.Config
	Backend lifecycle.Backend
	History lifecycle.HoldHistory
	Events  lifecycle.EventSink
	Codes   lifecycle.CodeGenerator
	Clock   clock.Clock
	Logger  *slog.Logger
}

func NewEngine(p EngineParams) *lifecycle.Engine {
	return lifecycle.NewEngine(p.Backend, p.History, p.Events, p.Codes, p.Clock, p.Logger, lifecycle.Options{
		ReleaseOnExpire: p.Config.Hold.ReleaseOnExpire,
		Retention:       p.Config.Hold.Retention,
		SweepInterval:   p.Config.Hold.SweepInterval,
	})
}

// RunJanitor sweeps resolved holds in the background until the app stops,
// then cancels every pending expiry timer.
func RunJanitor(lc fx.Lifecycle, engine *lifecycle.Engine) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				engine.RunJanitor(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			engine.Shutdown()
			return nil
		},
	})
}
