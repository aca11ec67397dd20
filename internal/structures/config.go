package structures

import (
	"net/http"
	"time"
)

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}

type Server struct {
	Host string `yaml:"host" mapstructure:"host" validate:"required"`
	Port int    `yaml:"port" mapstructure:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" mapstructure:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" mapstructure:"saveInterval" validate:"required|min:1"`
	Compress     bool          `yaml:"compress" mapstructure:"compress"`
	Format       string        `yaml:"format" mapstructure:"format" validate:"in:json,cbor"`
}

type LoggerConfig struct {
	Level string `yaml:"level" mapstructure:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" mapstructure:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" mapstructure:"dir" validate:"required|unixPath"`
}

type EngineConfig struct {
	RefreshInterval time.Duration `yaml:"refreshInterval" mapstructure:"refreshInterval" validate:"required|min:1"`
	AddTimeSeconds  int           `yaml:"addTimeSeconds" mapstructure:"addTimeSeconds" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	Size    int  `yaml:"size" mapstructure:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Engine      EngineConfig  `yaml:"engine" mapstructure:"engine"`
	WebServer   Server        `yaml:"webServer" mapstructure:"webServer"`
	Persistence Persistence   `yaml:"persistence" mapstructure:"persistence"`
	Logger      LoggerConfig  `yaml:"logger" mapstructure:"logger"`
	Cache       CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Metrics     MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}
