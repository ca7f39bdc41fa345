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
// tests the error taxonomy: the split between caller-fault validation
// errors and everything else is what drives the HTTP status mapping, so it
// has to survive wrapping.
package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/model"
	"github.com/stretchr/testify/assert"
)

// TestValidationErrorClassification verifies that IsValidation recognizes a
// ValidationError directly, through fmt.Errorf wrapping, and rejects plain
// errors.
func TestValidationErrorClassification(t *testing.T) {
	ve := model.NewValidationError(model.MsgNoFace)
	assert.True(t, model.IsValidation(ve))
	assert.Equal(t, model.MsgNoFace, ve.Error())

	// Wrapping must not strip the classification; commands wrap collaborator
	// errors with stage context before recording them.
	wrapped := fmt.Errorf("emotion analysis failed: %w", ve)
	assert.True(t, model.IsValidation(wrapped))

	assert.False(t, model.IsValidation(errors.New("connection refused")))
	assert.False(t, model.IsValidation(nil))
}

// TestValidationErrorf checks the formatted constructor carries the rendered
// reason as its message.
func TestValidationErrorf(t *testing.T) {
	err := model.NewValidationErrorf("bad input: %s", "empty frame")
	assert.True(t, model.IsValidation(err))
	assert.Equal(t, "bad input: empty frame", err.Error())
}

// TestCanonicalMessages pins the exact message strings. They are part of the
// wire contract and asserted by clients, so a rewording is a breaking change.
func TestCanonicalMessages(t *testing.T) {
	assert.Equal(t, "Face could not be detected. Please upload a clear face photo.", model.MsgNoFace)
	assert.Equal(t, "No selected file", model.MsgNoSelectedFile)
}
