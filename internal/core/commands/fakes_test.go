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

// Package commands_test contains unit tests for the pipeline stage
// commands. This file holds the fake collaborators shared by the tests;
// each fake records what it was called with so assertions can inspect the
// exact inputs a stage produced.
package commands_test

import (
	"context"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/cor"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/model"
	"google.golang.org/api/youtube/v3"
)

// fakeAnalyzer satisfies commands.EmotionAnalyzer.
type fakeAnalyzer struct {
	report   *model.EmotionReport
	err      error
	gotPath  string
	numCalls int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, imagePath string) (*model.EmotionReport, error) {
	f.numCalls++
	f.gotPath = imagePath
	return f.report, f.err
}

// fakeGenerator satisfies commands.TextGenerator.
type fakeGenerator struct {
	answer    string
	err       error
	gotPrompt string
	numCalls  int
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.numCalls++
	f.gotPrompt = prompt
	return f.answer, f.err
}

// fakeSearcher satisfies commands.VideoSearcher.
type fakeSearcher struct {
	items    []*youtube.SearchResult
	err      error
	gotQuery string
	gotMax   int64
	numCalls int
}

func (f *fakeSearcher) Search(_ context.Context, query string, maxResults int64) ([]*youtube.SearchResult, error) {
	f.numCalls++
	f.gotQuery = query
	f.gotMax = maxResults
	return f.items, f.err
}

// happyReport is the canonical single-face report used across the tests.
func happyReport() *model.EmotionReport {
	return &model.EmotionReport{
		Faces: []*model.FaceAnalysis{
			{
				Emotion:         map[string]float64{"happy": 97.4, "neutral": 2.1},
				DominantEmotion: "happy",
				Region:          model.FaceRegion{X: 10, Y: 20, W: 128, H: 128},
				FaceConfidence:  0.93,
			},
		},
	}
}

// newExecContext returns a ready execution context seeded with the given
// CtxIn value.
func newExecContext(in interface{}) cor.Context {
	execCtx := cor.NewBaseContext()
	execCtx.SetContext(context.Background())
	if in != nil {
		execCtx.Add(cor.CtxIn, in)
	}
	return execCtx
}
