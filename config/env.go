// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type wrapper struct {
	Config RawConfig `json:"brg"`
}

const EnvPrefix = "BRG"

func loadFromEnv() (RawConfig, error) {
	jsonConfig, err := loadENVToJsonStructure()
	if err != nil {
		return RawConfig{}, err
	}
	c := &wrapper{}
	err = json.Unmarshal(jsonConfig, c)
	if err != nil {
		return RawConfig{}, err
	}
	rawConfig := c.Config

	// asset registrations come as whole JSON objects, one per variable
	index := 1
	for {
		rawAsset := os.Getenv(fmt.Sprintf("%s_ASSET_%d", EnvPrefix, index))
		if rawAsset == "" {
			break
		}
		var asset RawAsset
		err = json.Unmarshal([]byte(rawAsset), &asset)
		if err != nil {
			return RawConfig{}, err
		}
		rawConfig.BridgeConfig.Assets = append(rawConfig.BridgeConfig.Assets, asset)
		index++
	}

	return rawConfig, nil
}

func loadENVToJsonStructure() ([]byte, error) {
	structure := map[string]interface{}{}
	for _, e := range os.Environ() {
		if strings.Contains(e, EnvPrefix) {
			pair := strings.SplitN(e, "=", 2)
			indexes := strings.Split(pair[0], "_")
			mountMap(structure, indexes, pair[1])
		}
	}
	return json.MarshalIndent(structure, "", "    ")
}

func mountMap(m map[string]interface{}, i []string, v interface{}) {
	if len(i) > 1 {
		if _, ok := m[i[0]]; !ok {
			m[i[0]] = map[string]interface{}{}
		}
		asMap, ok := m[i[0]].(map[string]interface{})
		if !ok {
			return
		}
		mountMap(asMap, i[1:], v)
		v = asMap
	}
	m[i[0]] = v
}
