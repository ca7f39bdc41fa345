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
// genre-by-emotion pipeline. This file defines the content-lookup stage:
// concatenate the inferred genre with a fixed qualifier phrase, run one
// keyword search against the video platform, and put the bounded result
// list on the context. One page, no pagination, results verbatim.
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/cor"
	"google.golang.org/api/youtube/v3"
)

// VideoSearcher is the video-platform collaborator as seen by this command.
// Production wiring uses cloud.YouTubeSearchClient; tests substitute fakes.
type VideoSearcher interface {
	Search(ctx context.Context, query string, maxResults int64) ([]*youtube.SearchResult, error)
}

// VideoSearch is the command for the content-lookup stage.
type VideoSearch struct {
	cor.BaseCommand
	searcher   VideoSearcher
	qualifier  string
	maxResults int64
}

// NewVideoSearch constructs the stage. qualifier is the fixed phrase
// appended to the genre when building the query; maxResults caps the
// returned list.
func NewVideoSearch(name string, searcher VideoSearcher, qualifier string, maxResults int64) *VideoSearch {
	return &VideoSearch{
		BaseCommand: *cor.NewBaseCommand(name),
		searcher:    searcher,
		qualifier:   qualifier,
		maxResults:  maxResults,
	}
}

// GetVideosParamName is the canonical context key for the search results,
// read by the orchestration layer when assembling the response.
func GetVideosParamName() string {
	return "__VIDEOS__"
}

// Execute builds the query from the genre text piped in by the previous
// stage and runs a single search. The cap is enforced here as well as in
// the request so a misbehaving collaborator can never widen the response.
func (c *VideoSearch) Execute(context cor.Context) {
	genre := context.Get(c.GetInputParam()).(string)
	query := strings.TrimSpace(genre + " " + c.qualifier)

	items, err := c.searcher.Search(context.GetContext(), query, c.maxResults)
	if err != nil {
		c.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(c.GetName(), fmt.Errorf("video search failed: %w", err))
		return
	}
	if int64(len(items)) > c.maxResults {
		items = items[:c.maxResults]
	}

	c.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(GetVideosParamName(), items)
	context.Add(c.GetOutputParam(), items)
}
