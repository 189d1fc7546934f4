package pipeline

import (
	"context"
	"math"

	"tracespace/internal/models"
	"tracespace/internal/providers"
	"tracespace/internal/structures"
)

// Source produces organisms from one upstream feed.
type Source interface {
	Name() string
	Collect(ctx context.Context) ([]*models.Organism, error)
}

// NewSources builds the configured feed set.
func NewSources(conf *structures.Config, positioner *Positioner, logger providers.Logger) []Source {
	return []Source{
		NewBlueskySource(conf, positioner, logger),
	}
}

// organismSize maps engagement onto a render size, log-damped so a viral
// post does not dwarf the scene.
func organismSize(engagement float64, minSize, maxSize float64) float64 {
	size := math.Log1p(engagement)
	return math.Min(math.Max(size, minSize), maxSize)
}

// organismVelocity maps engagement onto movement speed, capped at 1.
func organismVelocity(engagement float64) float64 {
	return math.Min(engagement/100.0, 1.0)
}

func truncateText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
