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

// Package model_test contains unit tests for the data models. This file
// tests the emotion report structures and their JSON mapping to the
// face-analysis collaborator's response shape.
package model_test

import (
	"encoding/json"
	"testing"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/model"
	"github.com/stretchr/testify/assert"
)

// TestEmotionReportDecode verifies the struct tags line up with the
// analyzer's actual response: a "results" list of faces, each with emotion
// scores, a dominant label, a region, and a confidence.
func TestEmotionReportDecode(t *testing.T) {
	payload := `{
	  "results": [
	    {
	      "emotion": {"happy": 97.4, "neutral": 2.1, "sad": 0.5},
	      "dominant_emotion": "happy",
	      "region": {"x": 10, "y": 20, "w": 128, "h": 128},
	      "face_confidence": 0.93
	    }
	  ]
	}`

	var report model.EmotionReport
	err := json.Unmarshal([]byte(payload), &report)
	assert.NoError(t, err)
	assert.Len(t, report.Faces, 1)
	assert.Equal(t, "happy", report.Faces[0].DominantEmotion)
	assert.Equal(t, 128, report.Faces[0].Region.W)
	assert.InDelta(t, 97.4, report.Faces[0].Emotion["happy"], 0.001)
	assert.Equal(t, "happy", report.Dominant())
}

// TestDominantFallback covers the cases where the analyzer did not fill in
// dominant_emotion: the highest score wins, and degenerate reports return
// the empty string rather than panicking.
func TestDominantFallback(t *testing.T) {
	report := &model.EmotionReport{
		Faces: []*model.FaceAnalysis{
			{Emotion: map[string]float64{"sad": 61.2, "neutral": 30.0, "angry": 8.8}},
		},
	}
	assert.Equal(t, "sad", report.Dominant())

	assert.Equal(t, "", (&model.EmotionReport{}).Dominant())
	assert.Equal(t, "", (*model.EmotionReport)(nil).Dominant())
	assert.Equal(t, "", (&model.EmotionReport{Faces: []*model.FaceAnalysis{{}}}).Dominant())
}

// TestDominantUsesFirstFace checks that only the first detected face drives
// the result when the analyzer returns several.
func TestDominantUsesFirstFace(t *testing.T) {
	report := &model.EmotionReport{
		Faces: []*model.FaceAnalysis{
			{DominantEmotion: "surprise"},
			{DominantEmotion: "sad"},
		},
	}
	assert.Equal(t, "surprise", report.Dominant())
}

// TestRecommendedGenres pins the fixed vocabulary offered to the language
// model. The list shapes the prompt; the order is the order it appears in.
func TestRecommendedGenres(t *testing.T) {
	assert.Len(t, model.RecommendedGenres, 15)
	assert.Equal(t, "angry", model.RecommendedGenres[0])
	assert.Contains(t, model.RecommendedGenres, "in love")
	assert.Contains(t, model.RecommendedGenres, "tragic")
}
