package pipeline

import (
	"errors"
	"math"

	"tracespace/internal/models"
)

var ErrNoOrganisms = errors.New("no organisms to aggregate")

// Composite sizes get their own clamp so higher aggregation levels render
// larger than any single post.
const (
	compositeMinSize = 1.0
	compositeMaxSize = 8.0
)

// Aggregator folds a group of organisms into one composite: mean position,
// log-damped total size, size-weighted color and mean velocity.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) Aggregate(id string, organisms []*models.Organism) (*models.CompositeOrganism, error) {
	if len(organisms) == 0 {
		return nil, ErrNoOrganisms
	}

	var position models.Position
	var totalSize, totalVelocity float64
	var totalEngagement int
	var weighted models.Color
	for _, organism := range organisms {
		position.X += organism.Position.X
		position.Y += organism.Position.Y
		position.Z += organism.Position.Z
		totalSize += organism.Size
		totalVelocity += organism.Velocity
		weighted.R += organism.Color.R * organism.Size
		weighted.G += organism.Color.G * organism.Size
		weighted.B += organism.Color.B * organism.Size
		if organism.Metadata != nil {
			totalEngagement += organism.Metadata.Engagement
		}
	}

	count := float64(len(organisms))
	position.X /= count
	position.Y /= count
	position.Z /= count

	if totalSize > 0 {
		weighted.R /= totalSize
		weighted.G /= totalSize
		weighted.B /= totalSize
	} else {
		for _, organism := range organisms {
			weighted.R += organism.Color.R
			weighted.G += organism.Color.G
			weighted.B += organism.Color.B
		}
		weighted.R /= count
		weighted.G /= count
		weighted.B /= count
	}

	size := math.Log1p(totalSize) * 2
	size = math.Min(math.Max(size, compositeMinSize), compositeMaxSize)

	return &models.CompositeOrganism{
		Organism: models.Organism{
			ID:       id,
			Position: position,
			Size:     size,
			Color:    weighted,
			Velocity: totalVelocity / count,
			Metadata: &models.OrganismMeta{
				ChildCount:      len(organisms),
				TotalEngagement: totalEngagement,
				AggregateMethod: "statistical",
			},
		},
		Children: organisms,
	}, nil
}
