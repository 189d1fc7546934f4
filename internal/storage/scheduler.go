package storage

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"tracespace/internal/models"
	"tracespace/internal/providers"
	"tracespace/internal/storage/interfaces"
	"tracespace/internal/structures"
)

// Scheduler drives the two periodic jobs: the refresh cycle that feeds the
// hot tier and the maintenance run that ages data down the tiers.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	pipeline interfaces.PipelineInterface
	migrator *Migrator
	usage    *UsageReporter
	metrics  providers.MetricsProviderInterface
	clock    models.Clock
	cron     *cron.Cron

	// opsMu serializes cycle and maintenance runs; the stores assume a
	// single writer.
	opsMu sync.Mutex
}

func NewScheduler(
	config *structures.Config,
	logger providers.Logger,
	pipeline interfaces.PipelineInterface,
	migrator *Migrator,
	usage *UsageReporter,
	metrics providers.MetricsProviderInterface,
	clock models.Clock,
) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		pipeline: pipeline,
		migrator: migrator,
		usage:    usage,
		metrics:  metrics,
		clock:    clock,
	}
}

func (s *Scheduler) Init() {
	s.cron = cron.New()

	s.cron.Schedule(cron.Every(s.config.Pipeline.RefreshInterval), cron.FuncJob(func() {
		if err := s.RunCycle(); err != nil {
			s.logger.Errorf(providers.TypePipeline, "Refresh cycle failed: %s", err)
		}
	}))

	s.cron.Schedule(cron.Every(s.config.Maintenance.Interval), cron.FuncJob(func() {
		if err := s.RunMaintenance(); err != nil {
			s.logger.Errorf(providers.TypeStore, "Maintenance run failed: %s", err)
		}
	}))

	s.cron.Start()
	s.logger.Infof(providers.TypeApp, "Scheduler started: refresh every %s, maintenance every %s",
		s.config.Pipeline.RefreshInterval, s.config.Maintenance.Interval)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunCycle runs one refresh cycle.
func (s *Scheduler) RunCycle() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	return s.pipeline.RunCycle(context.Background())
}

// RunMaintenance runs one tier migration pass and refreshes the usage
// numbers.
func (s *Scheduler) RunMaintenance() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeStore, "Running tier maintenance...")
	report := s.migrator.RunMigration(s.clock.Now())
	s.metrics.ObserveMigrationDuration(report.Duration)
	s.metrics.AddMigratedBuckets(report.MigratedBuckets)
	s.logger.Infof(providers.TypeStore, "Maintenance done in %s: %d buckets (%d snapshots) migrated, %d cold-eligible, %d failures",
		report.Duration.Round(time.Millisecond), report.MigratedBuckets, report.MigratedSnapshots,
		report.ColdEligible, len(report.Errors))

	usage, err := s.usage.Report()
	if err != nil {
		return err
	}
	s.metrics.SetTierBytes("hot", usage.HotBytes)
	s.metrics.SetTierBytes("warm", usage.WarmBytes)
	s.metrics.SetTierBytes("cold", usage.ColdBytes)
	s.logger.Infof(providers.TypeStore, "Tier usage: hot=%dB warm=%dB cold=%dB total=%dB",
		usage.HotBytes, usage.WarmBytes, usage.ColdBytes, usage.TotalBytes)

	if len(report.Errors) > 0 {
		return report.Errors[0]
	}
	return nil
}
