//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"showtimer/internal"
	"showtimer/internal/controllers"
	"showtimer/internal/engine"
	"showtimer/internal/persistence"
	"showtimer/internal/providers"
	"showtimer/internal/services"
	"showtimer/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		engine.NewClock,

		persistence.NewCompressor,
		persistence.NewCodec,
		persistence.NewFileManager,
		persistence.NewStore,
		persistence.NewScheduler,
		wire.Bind(new(services.SnapshotStore), new(*persistence.Store)),
		wire.Bind(new(controllers.StoreStatus), new(*persistence.Store)),

		services.NewTimerService,
		wire.Bind(new(services.TimerServiceInterface), new(*services.TimerService)),
		controllers.NewTimerController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

// InitInspector builds the read-only view of the snapshot used by the inspect command.
func InitInspector(cfg *structures.CliFlags) (*internal.Inspector, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		engine.NewClock,

		persistence.NewCompressor,
		persistence.NewCodec,
		persistence.NewFileManager,
		persistence.NewStore,
		wire.Bind(new(services.SnapshotStore), new(*persistence.Store)),

		services.NewTimerService,
		wire.Bind(new(services.TimerServiceInterface), new(*services.TimerService)),
		internal.NewInspector,
	)

	return nil, nil
}
