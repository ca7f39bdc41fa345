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

// Package cloud holds the application configuration, loaded from TOML files,
// and the clients for the three external collaborators the pipeline talks
// to: the face-analysis sidecar, the Gemini language model, and the YouTube
// Data API.
//
// Structs:
//   - Uploads: upload directory settings for the ingress stage.
//   - FaceAnalyzer: endpoint settings for the face-analysis sidecar.
//   - YouTube: search API credential and query settings.
//   - PromptTemplates: the text template for the genre-inference prompt.
//   - GenAiLLMModel: configuration for one Gemini model.
//   - Config: the top-level aggregate.
package cloud

import "google.golang.org/genai"

// DefaultSafetySettings disables content blocking for every harm category.
// The model only ever sees emotion-score JSON produced by our own pipeline,
// so the input is trusted and filtering would just add a failure mode.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// Uploads configures where uploaded images are written while a request is in
// flight. The directory is created at startup; files in it never outlive the
// request that wrote them.
type Uploads struct {
	Directory string `toml:"directory"` // Scoped temp location for uploaded images.
}

// FaceAnalyzer configures the HTTP client for the face-analysis sidecar.
type FaceAnalyzer struct {
	BaseURL          string `toml:"base_url"`           // Root URL of the sidecar, e.g. "http://localhost:5005".
	TimeoutInSeconds int    `toml:"timeout_in_seconds"` // Client timeout; 0 means no bound (analysis is model-latency dominated).
}

// YouTube configures the video search collaborator.
type YouTube struct {
	APIKey          string `toml:"api_key"`          // YouTube Data API v3 key. Overridable via GOOGLE_API_KEY.
	MaxResults      int64  `toml:"max_results"`      // Cap on returned items; single page only.
	SearchQualifier string `toml:"search_qualifier"` // Fixed phrase appended to the genre to form the query.
}

// PromptTemplates holds the prompt text templates sent to the language model.
type PromptTemplates struct {
	GenrePrompt string `toml:"genre"` // Template mapping an emotion report to genre labels.
}

// GenAiLLMModel is the configuration for one Gemini model.
type GenAiLLMModel struct {
	Model              string  `toml:"model"`               // Model identifier, e.g. "gemini-2.0-flash".
	SystemInstructions string  `toml:"system_instructions"` // System prompt for the model.
	Temperature        float32 `toml:"temperature"`
	TopP               float32 `toml:"top_p"`
	TopK               float32 `toml:"top_k"`
	MaxTokens          int32   `toml:"max_tokens"`
	OutputFormat       string  `toml:"output_format"` // Response MIME type, e.g. "text/plain".
	RateLimit          int     `toml:"rate_limit"`    // Requests per second allowed through the quota wrapper.
}

// Config is the root configuration object, populated once at startup from
// the TOML files and read-only afterwards.
type Config struct {
	Application struct {
		Name            string `toml:"name"`              // Service name, used for telemetry resources.
		GoogleProjectId string `toml:"google_project_id"` // Project for the Cloud Trace/Monitoring exporters.
		GeminiAPIKey    string `toml:"gemini_api_key"`    // Language-model credential. Overridable via GEMINI_API_KEY.
		Port            int    `toml:"port"`              // HTTP listen port.
	} `toml:"application"`
	Uploads         Uploads                  `toml:"uploads"`
	FaceAnalyzer    FaceAnalyzer             `toml:"face_analyzer"`
	YouTube         YouTube                  `toml:"youtube"`
	PromptTemplates PromptTemplates          `toml:"prompt_templates"`
	AgentModels     map[string]GenAiLLMModel `toml:"agent_models"` // Gemini models keyed by a logical name (e.g. "genre-flash").
}

// NewConfig returns a Config with its map fields initialized so the TOML
// decoder can populate them.
func NewConfig() *Config {
	return &Config{
		AgentModels: make(map[string]GenAiLLMModel),
	}
}
