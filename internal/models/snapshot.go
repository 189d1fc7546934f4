package models

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

// Layouts for the on-disk naming scheme. Day buckets and warm bundles are
// named after the snapshot date, hot files carry the time of day so that
// lexical order within a bucket is chronological order.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "1504"
)

// SnapshotExt is the serialization extension of a single hot snapshot file.
const SnapshotExt = ".json"

// Well-known snapshot sources produced by the refresh pipeline.
const (
	SourceFull          = "tracespace_full"
	SourceSubcomponents = "subcomponents"
)

// Snapshot is the unit of retention: one payload captured from one source at
// one point in time. The payload is carried as opaque JSON and is returned
// byte for byte by every tier.
type Snapshot struct {
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// BucketName returns the day bucket this snapshot belongs to.
func (s *Snapshot) BucketName() string {
	return s.Timestamp.Format(DateLayout)
}

// FileName returns the hot-tier file name for this snapshot. Snapshots from
// the same source within the same minute map to the same name and the later
// write wins.
func (s *Snapshot) FileName() string {
	return fmt.Sprintf("%s_%s%s", s.Source, s.Timestamp.Format(TimeLayout), SnapshotExt)
}
