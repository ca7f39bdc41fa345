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
// implements the HTTP client for the face-analysis sidecar, a DeepFace-style
// service that takes an image path and an action list and returns per-face
// emotion scores.
//
// The sidecar's contract:
//
//	POST {base_url}/analyze
//	{"img_path": "<path>", "actions": ["emotion"]}
//
// Success (200) returns {"results": [{"emotion": {...}, "dominant_emotion",
// "region", "face_confidence"}]}. A 400 means the analyzer could not find a
// face — a caller problem, not an outage — and is surfaced as a domain
// validation error so the HTTP layer maps it to a 400 of its own. Any other
// failure is a collaborator error.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/model"
)

// actionEmotion is the only analysis action the pipeline requests. The
// sidecar also supports age/gender/race actions; they are never asked for.
const actionEmotion = "emotion"

// FaceAnalyzerClient calls the face-analysis sidecar over HTTP.
type FaceAnalyzerClient struct {
	baseURL string
	client  *http.Client
}

// analyzeRequest is the sidecar's request body.
type analyzeRequest struct {
	ImgPath string   `json:"img_path"`
	Actions []string `json:"actions"`
}

// analyzeError is the sidecar's error body.
type analyzeError struct {
	Error string `json:"error"`
}

// NewFaceAnalyzerClient builds a client from the face_analyzer config
// section. A zero timeout leaves the call unbounded: analysis latency is
// dominated by the sidecar's model and the serving layer owns the only
// deadline.
func NewFaceAnalyzerClient(cfg FaceAnalyzer) *FaceAnalyzerClient {
	return &FaceAnalyzerClient{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutInSeconds) * time.Second},
	}
}

// Analyze submits the image at imagePath for emotion analysis and returns
// the structured report. The report is produced only when the analyzer
// found at least one face; every no-face shape (sidecar 400, empty result
// list) comes back as a model.ValidationError carrying model.MsgNoFace.
func (c *FaceAnalyzerClient) Analyze(ctx context.Context, imagePath string) (*model.EmotionReport, error) {
	payload, err := json.Marshal(analyzeRequest{ImgPath: imagePath, Actions: []string{actionEmotion}})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("face analyzer unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusBadRequest {
		// The analyzer rejected the image, which in practice means it
		// found no face. The upstream detail is logged via the wrapped
		// error chain but the caller-facing message is fixed.
		var detail analyzeError
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		return nil, model.NewValidationError(model.MsgNoFace)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("face analyzer returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var report model.EmotionReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode analyzer response: %w", err)
	}
	if len(report.Faces) == 0 {
		return nil, model.NewValidationError(model.MsgNoFace)
	}
	return &report, nil
}
