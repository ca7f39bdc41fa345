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

// Package test provides utility functions and mock data to support the
// application's test suite. It helps in setting up a consistent test
// environment, loading test-specific configurations, and providing sample
// collaborator payloads for pipeline and handler tests.
package test

import (
	"log"
	"os"
	"testing"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/cloud"
)

// StateManager acts as a simple in-memory cache for the application
// configuration during test runs, so the TOML files are read only once per
// test binary.
type StateManager struct {
	config *cloud.Config
}

// state holds the singleton instance of StateManager.
var state = &StateManager{}

// HandleErr fails the test when err is not nil. Convenience helper to cut
// down on boilerplate error checks in tests.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// GetTestEmotionReportText returns a hardcoded JSON string matching the
// face-analysis sidecar's success response for a single happy face. Used by
// the face client and pipeline tests as the canned analyzer payload.
func GetTestEmotionReportText() string {
	return `{
  "results": [
    {
      "emotion": {
        "angry": 0.03,
        "disgust": 0.0,
        "fear": 0.12,
        "happy": 97.41,
        "sad": 0.21,
        "surprise": 0.05,
        "neutral": 2.18
      },
      "dominant_emotion": "happy",
      "region": { "x": 112, "y": 84, "w": 256, "h": 256 },
      "face_confidence": 0.93
    }
  ]
}`
}

// GetTestNoFaceErrorText returns the sidecar's 400 error body for an image
// with no detectable face.
func GetTestNoFaceErrorText() string {
	return `{"error": "Face could not be detected in numpy array. Please confirm that the picture is a face photo or consider to set enforce_detection param to False."}`
}

// GetTestSearchListResponseText returns a hardcoded JSON string matching a
// YouTube Data API v3 search.list response with two video results. Used to
// back an httptest server standing in for the real API.
func GetTestSearchListResponseText() string {
	return `{
  "kind": "youtube#searchListResponse",
  "etag": "q5k97EMVGxODeKcDgp8gnMu79wM",
  "regionCode": "US",
  "pageInfo": { "totalResults": 1000000, "resultsPerPage": 6 },
  "items": [
    {
      "kind": "youtube#searchResult",
      "etag": "dhcPBYwBjJqmfgqwDF4DQfSCWhA",
      "id": { "kind": "youtube#video", "videoId": "dQw4w9WgXcQ" },
      "snippet": {
        "publishedAt": "2023-06-14T04:30:11Z",
        "channelId": "UC-9-kyTW8ZkZNDHQJ6FgpwQ",
        "title": "Happy Hits Mashup",
        "description": "Feel good songs to lift your mood.",
        "channelTitle": "Music Mix",
        "liveBroadcastContent": "none"
      }
    },
    {
      "kind": "youtube#searchResult",
      "etag": "b3CHI4fHjXVy0EWJ2k0mMJhoqPk",
      "id": { "kind": "youtube#video", "videoId": "kJQP7kiw5Fk" },
      "snippet": {
        "publishedAt": "2024-01-22T16:05:43Z",
        "channelId": "UCq-Fj5jknLsUf-MWSy4_brA",
        "title": "Upbeat Dance Anthem",
        "description": "High energy track for your playlist.",
        "channelTitle": "Hits Channel",
        "liveBroadcastContent": "none"
      }
    }
  ]
}`
}

// SetupOS configures the environment variables the configuration loader
// depends on, pointing it at the test configuration files
// (configs/.env.toml plus the .env.test.toml overrides).
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration. The TOML
// files are loaded on first use and cached for the rest of the run.
func GetConfig() *cloud.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}
