package service

import (
	"fmt"

	"github.com/rs/zerolog"
)

type ServiceConfig struct {
	OpenTelemetryCollectorURL string
	LogLevel                  zerolog.Level
	LogFile                   string
	Env                       string
	ID                        string
	StorePath                 string
	HealthPort                uint16
	ApiPort                   uint16
}

type RawServiceConfig struct {
	OpenTelemetryCollectorURL string `mapstructure:"OpenTelemetryCollectorURL" json:"opentelemetryCollectorURL"`
	LogLevel                  string `mapstructure:"LogLevel" json:"logLevel" default:"info"`
	LogFile                   string `mapstructure:"LogFile" json:"logFile" default:"out.log"`
	Env                       string `mapstructure:"Env" json:"env"`
	ID                        string `mapstructure:"Id" json:"id"`
	StorePath                 string `mapstructure:"StorePath" json:"storePath" default:"./lvldbdata"`
	HealthPort                uint16 `mapstructure:"HealthPort" json:"healthPort" default:"9001"`
	ApiPort                   uint16 `mapstructure:"ApiPort" json:"apiPort" default:"9002"`
}

func (c *RawServiceConfig) Validate() error {
	return nil
}

// NewServiceConfig parses RawServiceConfig into ServiceConfig
func NewServiceConfig(rawConfig RawServiceConfig) (ServiceConfig, error) {
	config := ServiceConfig{}
	err := rawConfig.Validate()
	if err != nil {
		return config, err
	}

	logLevel, err := zerolog.ParseLevel(rawConfig.LogLevel)
	if err != nil {
		return config, fmt.Errorf("unknown log level: %s", rawConfig.LogLevel)
	}
	config.LogLevel = logLevel

	config.LogFile = rawConfig.LogFile
	config.OpenTelemetryCollectorURL = rawConfig.OpenTelemetryCollectorURL
	config.Env = rawConfig.Env
	config.ID = rawConfig.ID
	config.StorePath = rawConfig.StorePath
	config.HealthPort = rawConfig.HealthPort
	config.ApiPort = rawConfig.ApiPort

	return config, nil
}
