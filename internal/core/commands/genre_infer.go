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

// Package commands provides the concrete Command implementations for the
// genre-by-emotion pipeline. This file defines the genre-inference stage:
// serialize the emotion report into a deterministic prompt, make a single
// synchronous call to the language model, and pass the trimmed text answer
// downstream.
//
// The model is instructed to pick from the recommended genre vocabulary and
// answer with labels only, but the answer is accepted verbatim — whatever
// text comes back becomes the search query for the next stage.
package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/cor"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/model"
)

// TextGenerator is the language-model collaborator as seen by this command.
// Production wiring uses cloud.QuotaAwareGenerativeAIModel; tests substitute
// fakes.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GenreInference is the command for the genre-inference stage.
type GenreInference struct {
	cor.BaseCommand
	generator TextGenerator
	template  *template.Template
}

// NewGenreInference constructs the stage with its collaborator and the
// parsed prompt template from configuration.
func NewGenreInference(name string, generator TextGenerator, template *template.Template) *GenreInference {
	return &GenreInference{
		BaseCommand: *cor.NewBaseCommand(name),
		generator:   generator,
		template:    template,
	}
}

// GetGenreParamName is the canonical context key for the inferred genre
// text, read by the orchestration layer when assembling the response.
func GetGenreParamName() string {
	return "__GENRE__"
}

// GenerateParams builds the template substitutions: the emotion report as
// JSON and the comma-joined recommended vocabulary.
func (c *GenreInference) GenerateParams(report *model.EmotionReport) (map[string]interface{}, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize emotion report: %w", err)
	}
	return map[string]interface{}{
		"REPORT_JSON": string(reportJSON),
		"GENRES":      strings.Join(model.RecommendedGenres, ", "),
	}, nil
}

// Execute renders the prompt from the emotion report and invokes the model
// once. The trimmed response text is the stage output, unvalidated.
func (c *GenreInference) Execute(context cor.Context) {
	report := context.Get(c.GetInputParam()).(*model.EmotionReport)

	params, err := c.GenerateParams(report)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), err)
		return
	}

	var buffer bytes.Buffer
	if err := c.template.Execute(&buffer, params); err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("failed to execute prompt template: %w", err))
		return
	}

	genre, err := c.generator.GenerateText(context.GetContext(), buffer.String())
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("genre inference failed: %w", err))
		return
	}
	genre = strings.TrimSpace(genre)
	if genre == "" {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("language model returned an empty genre"))
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(GetGenreParamName(), genre)
	context.Add(c.GetOutputParam(), genre)
}
