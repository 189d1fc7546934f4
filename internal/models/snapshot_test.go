package models

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_FileName(t *testing.T) {
	snap := &Snapshot{
		Source:    "feedA",
		Timestamp: time.Date(2024, 1, 1, 2, 30, 0, 0, time.Local),
	}
	assert.Equal(t, "feedA_0230.json", snap.FileName())
}

func TestSnapshot_FileNamePadsHourAndMinute(t *testing.T) {
	snap := &Snapshot{
		Source:    "feedA",
		Timestamp: time.Date(2024, 1, 1, 9, 5, 0, 0, time.Local),
	}
	assert.Equal(t, "feedA_0905.json", snap.FileName())
}

func TestSnapshot_BucketName(t *testing.T) {
	snap := &Snapshot{
		Source:    "feedA",
		Timestamp: time.Date(2024, 1, 1, 23, 59, 0, 0, time.Local),
	}
	assert.Equal(t, "2024-01-01", snap.BucketName())
}

func TestSnapshot_PayloadSurvivesRoundtrip(t *testing.T) {
	snap := &Snapshot{
		Source:    "feedA",
		Timestamp: time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local),
		Payload:   json.RawMessage(`{"nested":{"deep":[1,2,3]},"flag":true}`),
	}

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, snap.Source, decoded.Source)
	assert.True(t, snap.Timestamp.Equal(decoded.Timestamp))
	assert.JSONEq(t, string(snap.Payload), string(decoded.Payload))
}
