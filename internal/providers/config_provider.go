package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
	"tracespace/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("storage.hotRetentionDays", 30)
	viper.SetDefault("storage.warmRetentionDays", 730)
	viper.SetDefault("pipeline.refreshInterval", "1h")
	viper.SetDefault("pipeline.fetchLimit", 10)
	viper.SetDefault("pipeline.fetchTimeout", "10s")
	viper.SetDefault("pipeline.blueskyApiBase", "https://public.api.bsky.app")
	viper.SetDefault("pipeline.searchQuery", "the")
	viper.SetDefault("pipeline.maxFeatures", 50)
	viper.SetDefault("pipeline.positionRange", 5.0)
	viper.SetDefault("pipeline.minOrganismSize", 0.5)
	viper.SetDefault("pipeline.maxOrganismSize", 5.0)
	viper.SetDefault("maintenance.interval", "24h")

	viper.BindEnv("logger.level", "TRACESPACE_LOG_LEVEL")
	viper.BindEnv("storage.hotRetentionDays", "TRACESPACE_HOT_RETENTION_DAYS")
	viper.BindEnv("storage.warmRetentionDays", "TRACESPACE_WARM_RETENTION_DAYS")
	viper.BindEnv("pipeline.refreshInterval", "TRACESPACE_REFRESH_INTERVAL")
	viper.BindEnv("maintenance.interval", "TRACESPACE_MAINTENANCE_INTERVAL")
	viper.BindEnv("cache.enabled", "TRACESPACE_CACHE_ENABLED")
	viper.BindEnv("cache.size", "TRACESPACE_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "TraceSpace"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
