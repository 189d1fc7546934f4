package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	"tracespace/internal/models"
	"tracespace/internal/providers"
	"tracespace/internal/structures"
)

// ErrNotImplemented marks the reserved cold tier. Callers must leave the
// source bundle where it is when they see this.
var ErrNotImplemented = errors.New("cold tier archiving is not implemented")

// ColdStore reserves the third tier. The directory exists and is counted in
// usage reports, but no format has been committed for it yet.
type ColdStore struct {
	dir    string
	logger providers.Logger
}

func NewColdStore(conf *structures.Config, logger providers.Logger) *ColdStore {
	return &ColdStore{
		dir:    conf.Storage.ColdDir,
		logger: logger,
	}
}

// EnsureDir creates the reserved cold directory.
func (c *ColdStore) EnsureDir() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cold tier directory: %w", err)
	}
	return nil
}

// Archive would move a warm bundle into the cold tier. Until a cold format
// is committed it only reports ErrNotImplemented.
func (c *ColdStore) Archive(date time.Time, bundlePath string) error {
	return fmt.Errorf("archive bundle %s: %w", date.Format(models.DateLayout), ErrNotImplemented)
}
