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
// assembles the ServiceClients container: every external client the
// application talks to, constructed once at startup from the loaded
// configuration and shared read-only for the life of the process.
package cloud

import (
	"context"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
	"google.golang.org/genai"
)

// ServiceClients is the dependency container for external collaborators.
// It is built once in cmd/server setup and handed to the workflow layer;
// per-request state never lives here.
type ServiceClients struct {
	GenAIClient   *genai.Client                           // Client for the Gemini API.
	AgentModels   map[string]*QuotaAwareGenerativeAIModel // Rate-limited Gemini models keyed by logical name.
	FaceAnalyzer  *FaceAnalyzerClient                     // HTTP client for the face-analysis sidecar.
	YouTubeSearch *YouTubeSearchClient                    // Client for YouTube Data API v3 search.
}

// NewCloudServiceClients initializes every external client from config.
// Failure here is fatal to startup: the pipeline is nothing but these
// collaborators, so a client that cannot be constructed means the service
// cannot do its one job.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.Application.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	agentModels := make(map[string]*QuotaAwareGenerativeAIModel)
	for amKey, values := range config.AgentModels {
		contentConfig := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			ResponseMIMEType:  values.OutputFormat,
		}
		agentModels[amKey] = NewQuotaAwareModel(contentConfig, values.Model, gc.Models, values.RateLimit)
	}

	yts, err := youtube.NewService(ctx, option.WithAPIKey(config.YouTube.APIKey))
	if err != nil {
		return nil, err
	}

	return &ServiceClients{
		GenAIClient:   gc,
		AgentModels:   agentModels,
		FaceAnalyzer:  NewFaceAnalyzerClient(config.FaceAnalyzer),
		YouTubeSearch: NewYouTubeSearchClient(yts),
	}, nil
}
