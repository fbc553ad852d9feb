// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"github.com/creasty/defaults"
	"github.com/imdario/mergo"
	"github.com/spf13/viper"

	"github.com/ChainSafe/bridge-settlement/config/service"
)

type Config struct {
	ServiceConfig service.ServiceConfig
	BridgeConfig  BridgeConfig
}

type RawConfig struct {
	ServiceConfig service.RawServiceConfig `mapstructure:"service" json:"service"`
	BridgeConfig  RawBridgeConfig          `mapstructure:"bridge" json:"bridge"`
}

// GetConfigFromENV reads config from Env variables, validates it and parses
// it into config suitable for application
//
// Properties of ServiceConfig are expected to be defined as separate Env variables
// where Env variable name reflects properties position in structure. Each Env variable needs to be prefixed with BRG.
//
// For example, if you want to set Config.ServiceConfig.HealthPort this would
// translate to Env variable named BRG_SERVICE_HEALTHPORT.
func GetConfigFromENV(config *Config) (*Config, error) {
	rawConfig, err := loadFromEnv()
	if err != nil {
		return config, err
	}

	return processRawConfig(rawConfig, config)
}

// GetConfigFromFile reads config from file, validates it and parses
// it into config suitable for application
func GetConfigFromFile(path string, config *Config) (*Config, error) {
	rawConfig := RawConfig{}

	viper.SetConfigFile(path)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return config, err
	}

	err = viper.Unmarshal(&rawConfig)
	if err != nil {
		return config, err
	}

	return processRawConfig(rawConfig, config)
}

func processRawConfig(rawConfig RawConfig, config *Config) (*Config, error) {
	if err := defaults.Set(&rawConfig); err != nil {
		return config, err
	}

	serviceConfig, err := service.NewServiceConfig(rawConfig.ServiceConfig)
	if err != nil {
		return config, err
	}

	bridgeConfig, err := NewBridgeConfig(rawConfig.BridgeConfig)
	if err != nil {
		return config, err
	}
	// Values absent from the source fall back to the passed-in base config.
	err = mergo.Merge(&bridgeConfig, config.BridgeConfig)
	if err != nil {
		return config, err
	}

	config.ServiceConfig = serviceConfig
	config.BridgeConfig = bridgeConfig
	return config, nil
}
