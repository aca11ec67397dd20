package providers

import (
	"fmt"
	"path/filepath"
	"showtimer/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("persistence.saveInterval", time.Second)
	v.SetDefault("persistence.format", "json")
	v.SetDefault("engine.refreshInterval", time.Second)
	v.SetDefault("engine.addTimeSeconds", 60)

	v.BindEnv("logger.level", "SHOWTIMER_LOG_LEVEL")
	v.BindEnv("persistence.saveInterval", "SHOWTIMER_SAVE_INTERVAL")
	v.BindEnv("persistence.filePath", "SHOWTIMER_SNAPSHOT_FILE")
	v.BindEnv("engine.refreshInterval", "SHOWTIMER_REFRESH_INTERVAL")
	v.BindEnv("cache.enabled", "SHOWTIMER_CACHE_ENABLED")
	v.BindEnv("cache.size", "SHOWTIMER_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ShowTimer"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
