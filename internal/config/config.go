// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads setshard's runtime configuration the same way the
// teacher does: command-line flags first, then an optional YAML file that
// overrides field-by-field.
package config

import (
	"flag"
	"os"

	"github.com/mwinuka/setshard/internal/constants"
	"gopkg.in/yaml.v3"
)

type Config struct {
	BindAddr            string `yaml:"BindAddr"`
	Port                uint16 `yaml:"Port"`
	NumShards           int    `yaml:"NumShards"`
	SetMaxIntsetEntries int    `yaml:"SetMaxIntsetEntries"`
	JoinAddr            string `yaml:"JoinAddr"`
	DiscoveryPort       uint16 `yaml:"DiscoveryPort"`
	ScriptsDir          string `yaml:"ScriptsDir"`
	ConfigFile          string `yaml:"-"`
}

func DefaultConfig() Config {
	c := Config{
		BindAddr:            "localhost",
		Port:                7490,
		NumShards:           8,
		SetMaxIntsetEntries: 512,
		DiscoveryPort:       7491,
	}
	c.Clamp()
	return c
}

// GetConfig parses flags (falling back to DefaultConfig) and, if -config
// points at a YAML file, layers its values on top.
func GetConfig() (Config, error) {
	conf := DefaultConfig()

	bindAddr := flag.String("bind-addr", conf.BindAddr, "Address the RESP server binds to.")
	port := flag.Uint("port", uint(conf.Port), "Port the RESP server listens on.")
	numShards := flag.Int("num-shards", conf.NumShards, "Number of shards to partition the keyspace across.")
	maxIntsetEntries := flag.Int("set-max-intset-entries", conf.SetMaxIntsetEntries,
		"Upper bound on IntSet cardinality before a set is forced to upgrade to FlatSet. Hard-capped at 65536.")
	joinAddr := flag.String("join-addr", "", "Optional memberlist seed address for cluster peer discovery.")
	discoveryPort := flag.Uint("discovery-port", uint(conf.DiscoveryPort), "Port used for memberlist gossip.")
	scriptsDir := flag.String("scripts-dir", "", "Directory of *.lua files defining extra commands to register at startup.")
	configFile := flag.String("config", "", "Path to a YAML config file overriding the flags above.")

	flag.Parse()

	conf.BindAddr = *bindAddr
	conf.Port = uint16(*port)
	conf.NumShards = *numShards
	conf.SetMaxIntsetEntries = *maxIntsetEntries
	conf.JoinAddr = *joinAddr
	conf.DiscoveryPort = uint16(*discoveryPort)
	conf.ScriptsDir = *scriptsDir
	conf.ConfigFile = *configFile

	if conf.ConfigFile != "" {
		if err := conf.loadFile(conf.ConfigFile); err != nil {
			return Config{}, err
		}
	}

	conf.Clamp()

	return conf, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, c)
}

// Clamp enforces invariants that must hold no matter where a Config came
// from: DefaultConfig, GetConfig's flag/YAML path, or an embedder building
// one by hand. SetMaxIntsetEntries in particular is bounded above by
// constants.MaxIntsetEntriesHardCap regardless of what was requested.
func (c *Config) Clamp() {
	if c.SetMaxIntsetEntries <= 0 || c.SetMaxIntsetEntries > constants.MaxIntsetEntriesHardCap {
		c.SetMaxIntsetEntries = constants.MaxIntsetEntriesHardCap
	}
	if c.NumShards <= 0 {
		c.NumShards = 1
	}
}
