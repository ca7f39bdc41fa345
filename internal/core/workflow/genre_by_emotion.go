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

// Package workflow assembles pipeline commands into executable chains.
// This file builds the genre-by-emotion pipeline: the three collaborator
// stages run strictly in order, each one's output piped into the next, and
// the chain stops at the first recorded error. The ingress (file save) and
// egress (response shaping) stages live in the HTTP layer; this chain is
// everything in between.
package workflow

import (
	"text/template"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/cloud"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/commands"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/cor"
)

// GenreByEmotionWorkflow is the chain for one full recommendation:
// detect-emotion → infer-genre → search-videos.
type GenreByEmotionWorkflow struct {
	cor.BaseCommand
	chain cor.Chain
}

// Execute runs the underlying chain. The caller provides the context with
// the saved image path in cor.CtxIn.
func (w *GenreByEmotionWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// NewGenreByEmotionWorkflow builds the pipeline from its collaborators.
// Commands accept interfaces, so tests assemble the same chain from fakes.
func NewGenreByEmotionWorkflow(
	analyzer commands.EmotionAnalyzer,
	generator commands.TextGenerator,
	searcher commands.VideoSearcher,
	genreTemplate *template.Template,
	searchQualifier string,
	maxResults int64) *GenreByEmotionWorkflow {

	out := cor.NewBaseChain("genre-by-emotion-pipeline")

	// Stage 2 of the request: image path in, emotion report out. A no-face
	// answer from the analyzer ends the chain with a validation error.
	out.AddCommand(commands.NewEmotionDetect("detect-emotion", analyzer))

	// Stage 3: emotion report in, free-text genre out. Single prompt,
	// single completion, answer trusted verbatim.
	out.AddCommand(commands.NewGenreInference("infer-genre", generator, genreTemplate))

	// Stage 4: genre in, bounded video list out.
	out.AddCommand(commands.NewVideoSearch("search-videos", searcher, searchQualifier, maxResults))

	return &GenreByEmotionWorkflow{
		BaseCommand: *cor.NewBaseCommand("genre-by-emotion-workflow"),
		chain:       out,
	}
}

// NewFromClients is the production wiring: it pulls the concrete
// collaborators out of the service container and parses the prompt template
// from configuration. Panics on a bad template, since the application
// cannot serve a single request without it.
func NewFromClients(config *cloud.Config, serviceClients *cloud.ServiceClients, agentModelName string) *GenreByEmotionWorkflow {
	genreTemplate, err := template.New("genre-template").Parse(config.PromptTemplates.GenrePrompt)
	if err != nil {
		panic(err)
	}

	return NewGenreByEmotionWorkflow(
		serviceClients.FaceAnalyzer,
		serviceClients.AgentModels[agentModelName],
		serviceClients.YouTubeSearch,
		genreTemplate,
		config.YouTube.SearchQualifier,
		config.YouTube.MaxResults,
	)
}
