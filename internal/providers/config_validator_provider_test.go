package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"tracespace/internal/structures"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: structures.StorageConfig{
			HotDir:            "/tmp/tracespace/hot",
			WarmDir:           "/tmp/tracespace/warm",
			ColdDir:           "/tmp/tracespace/cold",
			HotRetentionDays:  30,
			WarmRetentionDays: 730,
		},
		Pipeline: structures.PipelineConfig{
			RefreshInterval: time.Hour,
			FetchLimit:      10,
		},
		Maintenance: structures.MaintenanceConfig{
			Interval: 24 * time.Hour,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_EmptyHotDir(t *testing.T) {
	c := validConfig()
	c.Storage.HotDir = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroHotRetention(t *testing.T) {
	c := validConfig()
	c.Storage.HotRetentionDays = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_WarmShorterThanHot(t *testing.T) {
	c := validConfig()
	c.Storage.HotRetentionDays = 30
	c.Storage.WarmRetentionDays = 7
	v := NewCnfValidator(c)
	err := v.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "warmRetentionDays")
}

func TestConfigValidator_EqualRetentionsAllowed(t *testing.T) {
	c := validConfig()
	c.Storage.HotRetentionDays = 30
	c.Storage.WarmRetentionDays = 30
	v := NewCnfValidator(c)
	assert.NoError(t, v.Validate())
}
