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
// wraps the Generative AI model with a rate limiter (Decorator pattern) so
// the application cannot exceed the model's request quota. A failed call is
// NOT retried: the pipeline's contract is that any collaborator failure
// fails the whole request immediately.
package cloud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// QuotaAwareGenerativeAIModel decorates a genai model handle with a rate
// limiter and token-usage metrics. It is the production implementation of
// the TextGenerator interface consumed by the genre-inference command.
type QuotaAwareGenerativeAIModel struct {
	GenerativeContentConfig *genai.GenerateContentConfig
	ModelName               string
	ModelHandle             *genai.Models
	RateLimit               *rate.Limiter

	inputTokenCounter  metric.Int64Counter
	outputTokenCounter metric.Int64Counter
}

// NewQuotaAwareModel wraps the given model configuration and handle with a
// limiter allowing requestsPerSecond calls through per second.
func NewQuotaAwareModel(wrapped *genai.GenerateContentConfig, name string, modelHandle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	meter := otel.Meter(fmt.Sprintf("github.com/jaycherian/gcp-go-mood-tunes/model/%s", name))
	inputTokenCounter, _ := meter.Int64Counter("gemini.token.input")
	outputTokenCounter, _ := meter.Int64Counter("gemini.token.output")

	return &QuotaAwareGenerativeAIModel{
		GenerativeContentConfig: wrapped,
		ModelName:               name,
		ModelHandle:             modelHandle,
		RateLimit:               rate.NewLimiter(rate.Every(time.Second), requestsPerSecond),
		inputTokenCounter:       inputTokenCounter,
		outputTokenCounter:      outputTokenCounter,
	}
}

// GenerateContent blocks until the rate limiter admits the request, then
// makes a single call to the model. Errors propagate to the caller
// unmodified; the caller's request fails rather than being retried.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error) {
	if err := q.RateLimit.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := q.ModelHandle.GenerateContent(ctx, q.ModelName, content, q.GenerativeContentConfig)
	if err != nil {
		return nil, err
	}

	if resp.UsageMetadata != nil {
		q.inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
		q.outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
	}
	return resp, nil
}

// GenerateText sends a single text prompt and returns the concatenated,
// whitespace-trimmed text of the response. No conversation history, no
// streaming, no tools.
func (q *QuotaAwareGenerativeAIModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := q.GenerateContent(ctx, contents)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
