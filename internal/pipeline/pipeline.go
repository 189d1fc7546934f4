package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"tracespace/internal/models"
	"tracespace/internal/providers"
	"tracespace/internal/services"
	"tracespace/internal/storage/interfaces"
	"tracespace/internal/structures"
)

// Pipeline runs one refresh cycle end to end: collect organisms from every
// source, aggregate them into the entity, store the results as snapshots
// and publish the scene for the frontend.
type Pipeline struct {
	conf       *structures.Config
	sources    []Source
	aggregator *Aggregator
	service    services.SnapshotServiceInterface
	logger     providers.Logger
	clock      models.Clock
	idgen      models.IDGenerator
	metrics    providers.MetricsProviderInterface
}

func NewPipeline(
	conf *structures.Config,
	sources []Source,
	aggregator *Aggregator,
	service services.SnapshotServiceInterface,
	logger providers.Logger,
	clock models.Clock,
	idgen models.IDGenerator,
	metrics providers.MetricsProviderInterface,
) interfaces.PipelineInterface {
	return &Pipeline{
		conf:       conf,
		sources:    sources,
		aggregator: aggregator,
		service:    service,
		logger:     logger,
		clock:      clock,
		idgen:      idgen,
		metrics:    metrics,
	}
}

func (p *Pipeline) RunCycle(ctx context.Context) error {
	cycleID := p.idgen.NewID()
	start := time.Now()
	p.logger.Infof(providers.TypePipeline, "Cycle %s: collecting %d sources", cycleID, len(p.sources))

	var organisms []*models.Organism
	for _, source := range p.sources {
		collected, err := source.Collect(ctx)
		if err != nil {
			p.logger.Errorf(providers.TypePipeline, "Cycle %s: source %s failed: %s", cycleID, source.Name(), err)
			continue
		}
		p.logger.Infof(providers.TypePipeline, "Cycle %s: source %s produced %d organisms", cycleID, source.Name(), len(collected))
		organisms = append(organisms, collected...)
	}
	if len(organisms) == 0 {
		return fmt.Errorf("cycle %s: no organisms collected", cycleID)
	}

	component, err := p.aggregator.Aggregate("social_media", organisms)
	if err != nil {
		return fmt.Errorf("cycle %s: %w", cycleID, err)
	}
	entity, err := p.aggregator.Aggregate("internet_consciousness", []*models.Organism{&component.Organism})
	if err != nil {
		return fmt.Errorf("cycle %s: %w", cycleID, err)
	}

	viz := &models.Visualization{
		Timestamp:  p.clock.Now().Format(time.RFC3339),
		Entity:     &entity.Organism,
		Components: []*models.Organism{&component.Organism},
		Organisms:  organisms,
		Stats: models.VisualizationStats{
			TotalOrganisms:  len(organisms),
			ComponentCount:  1,
			TotalEngagement: totalEngagement(organisms),
		},
	}

	vizJSON, err := json.Marshal(viz)
	if err != nil {
		return fmt.Errorf("cycle %s: failed to encode visualization: %w", cycleID, err)
	}
	if _, err := p.service.SaveSnapshot(vizJSON, models.SourceFull); err != nil {
		return fmt.Errorf("cycle %s: failed to save %s: %w", cycleID, models.SourceFull, err)
	}
	p.metrics.IncSnapshotsWritten(models.SourceFull)

	subJSON, err := json.Marshal(organisms)
	if err != nil {
		return fmt.Errorf("cycle %s: failed to encode subcomponents: %w", cycleID, err)
	}
	if _, err := p.service.SaveSnapshot(subJSON, models.SourceSubcomponents); err != nil {
		return fmt.Errorf("cycle %s: failed to save %s: %w", cycleID, models.SourceSubcomponents, err)
	}
	p.metrics.IncSnapshotsWritten(models.SourceSubcomponents)

	if err := p.publishLatest(vizJSON); err != nil {
		p.logger.Warnf(providers.TypePipeline, "Cycle %s: failed to publish latest scene: %s", cycleID, err)
	}

	p.metrics.ObserveCycleDuration(time.Since(start))
	p.logger.Infof(providers.TypePipeline, "Cycle %s: %d organisms aggregated, finished in %s",
		cycleID, len(organisms), time.Since(start).Round(time.Millisecond))
	return nil
}

// publishLatest drops the current scene where the static frontend picks it
// up. Best effort; retention does not depend on it.
func (p *Pipeline) publishLatest(vizJSON []byte) error {
	dir := p.conf.WebServer.DataDir
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "latest.json"), vizJSON, 0644)
}

func totalEngagement(organisms []*models.Organism) int {
	var total int
	for _, organism := range organisms {
		if organism.Metadata != nil {
			total += organism.Metadata.Engagement
		}
	}
	return total
}
