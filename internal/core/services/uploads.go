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
// between the HTTP layer and the pipeline. This file implements the ingress
// stage: saving a multipart upload into the configured upload directory
// under a sanitized, collision-free name.
//
// Sanitization keeps only [A-Za-z0-9_.-] after stripping any directory
// components, which removes path-traversal sequences. A UUID prefix makes
// the stored name unique so concurrent uploads of "selfie.jpg" never race
// on the same path. The caller owns deletion of the returned file.
package services

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/model"
)

// UploadService writes uploaded images into a scoped directory.
type UploadService struct {
	Directory string
}

// NewUploadService returns a service rooted at the given directory.
func NewUploadService(directory string) *UploadService {
	return &UploadService{Directory: directory}
}

// EnsureDirectory creates the upload directory if it does not exist. Called
// once at process startup.
func (s *UploadService) EnsureDirectory() error {
	return os.MkdirAll(s.Directory, 0o755)
}

// SanitizeFilename reduces a client-supplied filename to a safe basename:
// directory components are dropped and every character outside
// [A-Za-z0-9_.-] becomes an underscore. Returns "" when nothing safe
// remains.
func SanitizeFilename(name string) string {
	// Normalize Windows separators before taking the basename so "a\\b.jpg"
	// cannot smuggle a path on non-Windows hosts.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '.', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	out := strings.Trim(sb.String(), "._")
	if out == "" || out == "." || out == ".." {
		return ""
	}
	return out
}

// Save persists one uploaded file and returns its path. An empty client
// filename is a domain validation error ("No selected file"), matching the
// ingress contract. Non-image content is logged but accepted — the format
// expectation is advisory, and the face analyzer gives the authoritative
// rejection.
func (s *UploadService) Save(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Filename == "" {
		return "", model.NewValidationError(model.MsgNoSelectedFile)
	}

	name := SanitizeFilename(fileHeader.Filename)
	if name == "" {
		name = "upload"
	}
	storedPath := filepath.Join(s.Directory, fmt.Sprintf("%s_%s", uuid.NewString(), name))

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(storedPath)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(storedPath)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(storedPath)
		return "", fmt.Errorf("failed to flush upload file: %w", err)
	}

	s.warnIfNotImage(storedPath)
	return storedPath, nil
}

// warnIfNotImage sniffs the stored file's magic bytes and logs when the
// content is not a recognized image type. Detection failures are ignored;
// this is diagnostics, not enforcement.
func (s *UploadService) warnIfNotImage(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, 261)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || !filetype.IsImage(head[:n]) {
		slog.Warn("uploaded file is not a recognized image", "path", path)
		return
	}
	if kind != matchers.TypeJpeg && kind != matchers.TypePng {
		slog.Warn("uploaded image is not JPEG or PNG", "path", path, "type", kind.Extension)
	}
}
