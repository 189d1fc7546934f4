package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tracespace/internal/models"
	"tracespace/internal/structures"
)

type UsageReporter struct {
	hotDir  string
	warmDir string
	coldDir string
}

func NewUsageReporter(conf *structures.Config) *UsageReporter {
	return &UsageReporter{
		hotDir:  conf.Storage.HotDir,
		warmDir: conf.Storage.WarmDir,
		coldDir: conf.Storage.ColdDir,
	}
}

// Report walks all three tier roots and sums file sizes. Files vanishing
// mid-walk are tolerated; the migrator may be moving data while we count.
func (u *UsageReporter) Report() (*models.UsageReport, error) {
	hot, err := dirSize(u.hotDir)
	if err != nil {
		return nil, fmt.Errorf("failed to measure hot tier: %w", err)
	}
	warm, err := dirSize(u.warmDir)
	if err != nil {
		return nil, fmt.Errorf("failed to measure warm tier: %w", err)
	}
	cold, err := dirSize(u.coldDir)
	if err != nil {
		return nil, fmt.Errorf("failed to measure cold tier: %w", err)
	}

	return &models.UsageReport{
		HotBytes:   hot,
		WarmBytes:  warm,
		ColdBytes:  cold,
		TotalBytes: hot + warm + cold,
	}, nil
}

func dirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
