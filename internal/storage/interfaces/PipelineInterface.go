package interfaces

import "context"

// PipelineInterface is the scheduler's view of the refresh pipeline.
type PipelineInterface interface {
	RunCycle(ctx context.Context) error
}
