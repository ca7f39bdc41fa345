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

// Package services contains the request-scoped business logic that sits
// between the HTTP layer and the pipeline. This file implements the
// orchestration of one genre-by-emotion request: run the three-stage chain
// over a saved image, collect the terminal outputs, and guarantee that the
// temporary file is removed on every exit path.
package services

import (
	"context"
	"os"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/commands"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/cor"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/model"
	"google.golang.org/api/youtube/v3"
)

// RecommendationService drives the emotion → genre → videos pipeline for
// one request at a time. It holds no per-request state; every execution
// gets a fresh cor.Context.
type RecommendationService struct {
	pipeline cor.Command
	analyzer commands.EmotionAnalyzer
}

// NewRecommendationService wires the service with the assembled pipeline
// chain and the face analyzer (used alone by the emotion-only endpoint).
func NewRecommendationService(pipeline cor.Command, analyzer commands.EmotionAnalyzer) *RecommendationService {
	return &RecommendationService{pipeline: pipeline, analyzer: analyzer}
}

// RecommendFromImage runs the full pipeline over the saved image at
// imagePath and returns the inferred genre and the video results. The image
// file is registered as a temporary file on the execution context and is
// removed when the context closes, whether the pipeline succeeded or failed
// at any stage. No partial results: an error at any stage discards
// everything computed before it.
func (s *RecommendationService) RecommendFromImage(ctx context.Context, imagePath string) (string, []*youtube.SearchResult, error) {
	execCtx := cor.NewBaseContext()
	defer execCtx.Close()

	execCtx.SetContext(ctx)
	execCtx.AddTempFile(imagePath)
	execCtx.Add(cor.CtxIn, imagePath)

	s.pipeline.Execute(execCtx)

	if execCtx.HasErrors() {
		return "", nil, firstError(execCtx.GetErrors())
	}

	genre, _ := execCtx.Get(commands.GetGenreParamName()).(string)
	videos, _ := execCtx.Get(commands.GetVideosParamName()).([]*youtube.SearchResult)
	return genre, videos, nil
}

// DetectEmotion runs only the emotion-extraction stage for the saved image
// at imagePath, with the same cleanup guarantee as the full pipeline.
func (s *RecommendationService) DetectEmotion(ctx context.Context, imagePath string) (*model.EmotionReport, error) {
	defer func() {
		if err := os.Remove(imagePath); err != nil && !os.IsNotExist(err) {
			return
		}
	}()
	return s.analyzer.Analyze(ctx, imagePath)
}

// firstError picks the error to surface. The chain stops at the first
// failing command so the map normally holds exactly one entry; validation
// errors win if a future chain ever records more than one.
func firstError(errs map[string]error) error {
	var fallback error
	for _, err := range errs {
		if model.IsValidation(err) {
			return err
		}
		fallback = err
	}
	return fallback
}
