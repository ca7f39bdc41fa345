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

// Package api defines the HTTP surface of the service and the mapping from
// pipeline outcomes to response codes:
//
//	POST /genre-by-emotion  multipart image → {"genre": ..., "videos": [...]}
//	POST /emotion-by-face   multipart image → {"emotion": <report>}
//	GET  /youtube-search    ?genre=...      → {"items": [...]}
//
// Error contract (identical for every endpoint that takes an upload):
//
//	400 {"error": "No image file uploaded"}     missing multipart field
//	400 {"error": "No face detected: <detail>"} validation failures
//	500 {"error": "Something went wrong: <detail>"} everything else
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/commands"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/model"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/services"
	"google.golang.org/api/youtube/v3"
)

// MsgNoImageUploaded is the exact client error for a missing file field.
const MsgNoImageUploaded = "No image file uploaded"

// Handler bundles the dependencies the routes need. Everything is
// constructed once at startup; handlers keep no state of their own.
type Handler struct {
	Uploads         *services.UploadService
	Recommender     *services.RecommendationService
	Searcher        commands.VideoSearcher
	SearchQualifier string
	MaxResults      int64
}

// RegisterRoutes attaches every endpoint to the engine.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.POST("/genre-by-emotion", h.GenreByEmotion)
	r.POST("/emotion-by-face", h.EmotionByFace)
	r.GET("/youtube-search", h.YouTubeSearch)
}

// GenreByEmotion runs the full pipeline: save the upload, detect the
// emotion, infer a genre, search for videos. The saved file is deleted on
// every path once the pipeline owns it; a failed save leaves nothing to
// delete.
func (h *Handler) GenreByEmotion(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgNoImageUploaded})
		return
	}

	imagePath, err := h.Uploads.Save(fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	genre, videos, err := h.Recommender.RecommendFromImage(c.Request.Context(), imagePath)
	if err != nil {
		respondError(c, err)
		return
	}
	if videos == nil {
		videos = []*youtube.SearchResult{}
	}

	c.JSON(http.StatusOK, gin.H{"genre": genre, "videos": videos})
}

// EmotionByFace stops the pipeline after the emotion-extraction stage and
// returns the raw report.
func (h *Handler) EmotionByFace(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgNoImageUploaded})
		return
	}

	imagePath, err := h.Uploads.Save(fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.Recommender.DetectEmotion(c.Request.Context(), imagePath)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"emotion": report})
}

// YouTubeSearch is the direct search passthrough: no upload, no model, just
// the content-lookup stage for a caller-supplied genre.
func (h *Handler) YouTubeSearch(c *gin.Context) {
	genre := c.Query("genre")
	if genre == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing genre parameter"})
		return
	}

	items, err := h.Searcher.Search(c.Request.Context(), genre+" "+h.SearchQualifier, h.MaxResults)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// respondError maps the two error classes onto the wire contract.
// Validation errors are the caller's fault (400); anything else is an
// internal or collaborator failure (500) and gets logged.
func respondError(c *gin.Context, err error) {
	if model.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No face detected: " + err.Error()})
		return
	}
	slog.Error("request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong: " + err.Error()})
}
