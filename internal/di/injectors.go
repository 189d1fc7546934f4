//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"tracespace/internal"
	"tracespace/internal/controllers"
	"tracespace/internal/models"
	"tracespace/internal/pipeline"
	"tracespace/internal/providers"
	"tracespace/internal/services"
	"tracespace/internal/storage"
	"tracespace/internal/storage/interfaces"
	"tracespace/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		models.NewRealClock,
		models.NewUUIDGenerator,

		storage.NewGzipCompressor,
		storage.NewHotStore,
		storage.NewWarmStore,
		storage.NewColdStore,
		storage.NewMigrator,
		storage.NewRangeReader,
		storage.NewUsageReporter,
		storage.NewScheduler,

		services.NewSnapshotService,

		pipeline.NewPositioner,
		pipeline.NewSources,
		pipeline.NewAggregator,
		pipeline.NewPipeline,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitScheduler(cfg *structures.CliFlags) (interfaces.SchedulerInterface, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,

		models.NewRealClock,
		models.NewUUIDGenerator,

		storage.NewGzipCompressor,
		storage.NewHotStore,
		storage.NewWarmStore,
		storage.NewColdStore,
		storage.NewMigrator,
		storage.NewRangeReader,
		storage.NewUsageReporter,
		storage.NewScheduler,

		services.NewSnapshotService,

		pipeline.NewPositioner,
		pipeline.NewSources,
		pipeline.NewAggregator,
		pipeline.NewPipeline,
	)

	return nil, nil
}
