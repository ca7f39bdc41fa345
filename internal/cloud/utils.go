// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cloud provides configuration and collaborator clients. This file
// contains the hierarchical TOML configuration loader: a base file
// (.env.toml) is read first, then an environment-specific file
// (.env.<runtime>.toml) overwrites any values it sets. The directory prefix
// and runtime name come from environment variables, which is how the test
// suite points itself at test credentials and fake endpoints.
package cloud

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	ConfigFileBaseName  = ".env"              // Base name for configuration files.
	ConfigFileExtension = ".toml"             // Extension for configuration files.
	ConfigSeparator     = "."                 // Separator in override file names (".env.local.toml").
	EnvConfigFilePrefix = "GCP_CONFIG_PREFIX" // Env var naming the config directory.
	EnvConfigRuntime    = "GCP_RUNTIME"       // Env var naming the runtime ("local", "test", "prod").
)

// fileExists reports whether a file or directory exists at the given path.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig populates baseConfig from the base TOML file, then overlays the
// runtime-specific file if present. Decode failures are fatal: the process
// cannot run on a half-read configuration.
func LoadConfig(baseConfig interface{}) {
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "test"
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		if _, err := toml.DecodeFile(baseConfigFileName, baseConfig); err != nil {
			log.Fatalf("failed to decode base configuration file %s with error: %s", baseConfigFileName, err)
		}
	}

	if fileExists(envConfigFileName) {
		if _, err := toml.DecodeFile(envConfigFileName, baseConfig); err != nil {
			log.Fatalf("failed to decode environment configuration file: %s with error: %s", envConfigFileName, err)
		}
	}
}

// ApplyEnvOverrides lets deployment environments supply credentials without
// writing them into the TOML files. GEMINI_API_KEY and GOOGLE_API_KEY take
// precedence over their config-file counterparts.
func ApplyEnvOverrides(config *Config) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		config.Application.GeminiAPIKey = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		config.YouTube.APIKey = v
	}
}
