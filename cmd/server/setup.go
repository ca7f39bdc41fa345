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

package main

import (
	"context"
	"log"
	"os"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/api"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/cloud"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/services"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/workflow"
)

// agentModelName selects which configured Gemini model the genre-inference
// stage uses.
const agentModelName = "genre-flash"

// StateManager holds the shared components for the application.
type StateManager struct {
	config  *cloud.Config
	cloud   *cloud.ServiceClients
	handler *api.Handler
}

var state = &StateManager{}

func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "local")
	return err
}

func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup env: %v\n", err)
		}
		// Create a default cloud config
		config := cloud.NewConfig()
		// Load it from the TOML files, then let the environment supply
		// credentials the files leave blank.
		cloud.LoadConfig(&config)
		cloud.ApplyEnvOverrides(config)
		state.config = config
	}
	return state.config
}

// InitState initializes the application state and dependencies: the external
// clients, the upload service, the pipeline, and the HTTP handler.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = cloudClients

	uploadService := &services.UploadService{Directory: config.Uploads.Directory}
	if err := uploadService.EnsureDirectory(); err != nil {
		panic(err)
	}

	pipeline := workflow.NewFromClients(config, cloudClients, agentModelName)
	recommendationService := services.NewRecommendationService(pipeline, cloudClients.FaceAnalyzer)

	state.handler = &api.Handler{
		Uploads:         uploadService,
		Recommender:     recommendationService,
		Searcher:        cloudClients.YouTubeSearch,
		SearchQualifier: config.YouTube.SearchQualifier,
		MaxResults:      config.YouTube.MaxResults,
	}
}
