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

// Package model defines the core data structures for the application.
// Every value here is request-scoped: it is produced by one stage of the
// genre-by-emotion pipeline, consumed by the next, and discarded when the
// response is written. Nothing in this package is persisted.
package model

import "sort"

// RecommendedGenres is the fixed vocabulary the language model is asked to
// choose from. The model's answer is passed downstream verbatim and is NOT
// validated against this list; the list only shapes the prompt.
var RecommendedGenres = []string{
	"angry", "fearful", "neutral", "surprised", "in love", "romantic",
	"sad", "happy", "action", "energetic", "cheery", "party", "melody",
	"fun", "tragic",
}

// FaceRegion is the bounding box of a detected face, in pixels relative to
// the uploaded image.
type FaceRegion struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// FaceAnalysis holds the per-face output of the face-analysis collaborator:
// a confidence score per emotion label plus the dominant label and the
// region the face was found in. The emotion keys come from the analyzer's
// fixed vocabulary (angry, disgust, fear, happy, sad, surprise, neutral).
type FaceAnalysis struct {
	Emotion         map[string]float64 `json:"emotion"`
	DominantEmotion string             `json:"dominant_emotion"`
	Region          FaceRegion         `json:"region"`
	FaceConfidence  float64            `json:"face_confidence"`
}

// EmotionReport is the structured result of the emotion-extraction stage.
// It exists only when the collaborator actually found at least one face;
// "no face" is a terminal validation failure, never an empty report.
type EmotionReport struct {
	Faces []*FaceAnalysis `json:"results"`
}

// Dominant returns the dominant emotion label of the first detected face.
// The analyzer orders faces by detection confidence, so the first entry is
// the one the rest of the pipeline reasons about.
func (r *EmotionReport) Dominant() string {
	if r == nil || len(r.Faces) == 0 {
		return ""
	}
	if d := r.Faces[0].DominantEmotion; d != "" {
		return d
	}
	// Fall back to the highest-scoring label when the analyzer did not
	// fill in dominant_emotion.
	type kv struct {
		k string
		v float64
	}
	scores := make([]kv, 0, len(r.Faces[0].Emotion))
	for k, v := range r.Faces[0].Emotion {
		scores = append(scores, kv{k, v})
	}
	if len(scores) == 0 {
		return ""
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].v > scores[j].v })
	return scores[0].k
}
