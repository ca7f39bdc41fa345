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
// genre-by-emotion pipeline, one per stage. This file defines the
// emotion-extraction stage: hand the saved image path to the face-analysis
// collaborator and put the structured emotion report on the context.
//
// There is no retry and no fallback detector. A no-face result is a domain
// validation failure that terminates the request; the analyzer's latency is
// bounded only by the collaborator client itself.
package commands

import (
	"context"
	"fmt"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/cor"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/model"
)

// EmotionAnalyzer is the face-analysis collaborator as seen by this command.
// Production wiring uses cloud.FaceAnalyzerClient; tests substitute fakes.
type EmotionAnalyzer interface {
	Analyze(ctx context.Context, imagePath string) (*model.EmotionReport, error)
}

// EmotionDetect is the command for the emotion-extraction stage.
type EmotionDetect struct {
	cor.BaseCommand
	analyzer EmotionAnalyzer
}

// NewEmotionDetect constructs the stage with its collaborator.
func NewEmotionDetect(name string, analyzer EmotionAnalyzer) *EmotionDetect {
	return &EmotionDetect{BaseCommand: *cor.NewBaseCommand(name), analyzer: analyzer}
}

// GetEmotionReportParamName is the canonical context key for the emotion
// report, for consumers that need it after the chain has moved on.
func GetEmotionReportParamName() string {
	return "__EMOTION_REPORT__"
}

// Execute reads the saved image path from the context and replaces it with
// the collaborator's emotion report. Validation errors (no face) propagate
// typed so the HTTP layer can distinguish them from outages.
func (c *EmotionDetect) Execute(context cor.Context) {
	imagePath := context.Get(c.GetInputParam()).(string)

	report, err := c.analyzer.Analyze(context.GetContext(), imagePath)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		if model.IsValidation(err) {
			context.AddError(c.GetName(), err)
		} else {
			context.AddError(c.GetName(), fmt.Errorf("emotion analysis failed: %w", err))
		}
		return
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(GetEmotionReportParamName(), report)
	context.Add(c.GetOutputParam(), report)
}
