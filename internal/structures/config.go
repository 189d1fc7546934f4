package structures

import "time"

type Server struct {
	Host      string `yaml:"host" validate:"required"`
	Port      int    `yaml:"port" validate:"required|uint|min:1|max:65535"`
	StaticDir string `yaml:"staticDir"`
	DataDir   string `yaml:"dataDir"`
}

type StorageConfig struct {
	HotDir            string `yaml:"hotDir" validate:"required|unixPath"`
	WarmDir           string `yaml:"warmDir" validate:"required|unixPath"`
	ColdDir           string `yaml:"coldDir" validate:"required|unixPath"`
	HotRetentionDays  int    `yaml:"hotRetentionDays" validate:"required|int|min:1"`
	WarmRetentionDays int    `yaml:"warmRetentionDays" validate:"required|int|min:1"`
}

type PipelineConfig struct {
	RefreshInterval time.Duration `yaml:"refreshInterval" validate:"required|min:1"`
	FetchLimit      int           `yaml:"fetchLimit" validate:"required|int|min:1"`
	FetchTimeout    time.Duration `yaml:"fetchTimeout"`
	BlueskyAPIBase  string        `yaml:"blueskyApiBase"`
	SearchQuery     string        `yaml:"searchQuery"`
	MaxFeatures     int           `yaml:"maxFeatures"`
	PositionRange   float64       `yaml:"positionRange"`
	MinOrganismSize float64       `yaml:"minOrganismSize"`
	MaxOrganismSize float64       `yaml:"maxOrganismSize"`
}

type MaintenanceConfig struct {
	Interval time.Duration `yaml:"interval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Storage     StorageConfig     `yaml:"storage"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
	WebServer   Server            `yaml:"webServer"`
	Logger      LoggerConfig      `yaml:"logger"`
	Cache       CacheConfig       `yaml:"cache"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}
