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
// wraps the YouTube Data API v3 search.list call used by the content-lookup
// stage. Results are returned verbatim as the API's SearchResult items;
// ranking, snippets, and thumbnails are entirely the platform's.
package cloud

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/youtube/v3"
)

// YouTubeSearchClient issues single-page keyword searches for videos.
type YouTubeSearchClient struct {
	service *youtube.Service
}

// NewYouTubeSearchClient wraps an initialized *youtube.Service. Tests hand
// in a service pointed at an httptest endpoint.
func NewYouTubeSearchClient(service *youtube.Service) *YouTubeSearchClient {
	return &YouTubeSearchClient{service: service}
}

// Search runs a keyword search restricted to videos at snippet detail level
// and returns up to maxResults items from the first page. A non-success
// status from the API becomes an error that names the status code, so the
// orchestration layer can surface "YouTube API error: <code>" context.
func (c *YouTubeSearchClient) Search(ctx context.Context, query string, maxResults int64) ([]*youtube.SearchResult, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("YouTube API error: %d", apiErr.Code)
		}
		return nil, fmt.Errorf("YouTube search failed: %w", err)
	}

	// A response without items is a valid empty result, not a failure.
	if resp.Items == nil {
		return []*youtube.SearchResult{}, nil
	}
	return resp.Items, nil
}
