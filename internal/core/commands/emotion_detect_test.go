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

// Package commands_test contains unit tests for the pipeline stage
// commands. This file covers the emotion-extraction stage.
package commands_test

import (
	"errors"
	"testing"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/commands"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/cor"
	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/model"
	"github.com/stretchr/testify/assert"
)

// TestEmotionDetectSuccess verifies the stage hands the image path to the
// analyzer verbatim and publishes the report both on the piping key and the
// named parameter.
func TestEmotionDetectSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{report: happyReport()}
	cmd := commands.NewEmotionDetect("detect-emotion", analyzer)

	execCtx := newExecContext("uploads/abc_selfie.jpg")
	cmd.Execute(execCtx)

	assert.False(t, execCtx.HasErrors())
	assert.Equal(t, "uploads/abc_selfie.jpg", analyzer.gotPath)
	assert.Equal(t, 1, analyzer.numCalls)

	report, ok := execCtx.Get(commands.GetEmotionReportParamName()).(*model.EmotionReport)
	assert.True(t, ok)
	assert.Equal(t, "happy", report.Dominant())
	assert.Same(t, report, execCtx.Get(cor.CtxOut))
}

// TestEmotionDetectNoFace checks a validation error from the analyzer is
// recorded unwrapped so the HTTP layer still classifies it as a 400.
func TestEmotionDetectNoFace(t *testing.T) {
	analyzer := &fakeAnalyzer{err: model.NewValidationError(model.MsgNoFace)}
	cmd := commands.NewEmotionDetect("detect-emotion", analyzer)

	execCtx := newExecContext("uploads/abc_selfie.jpg")
	cmd.Execute(execCtx)

	assert.True(t, execCtx.HasErrors())
	err := execCtx.GetErrors()["detect-emotion"]
	assert.True(t, model.IsValidation(err))
	assert.Equal(t, model.MsgNoFace, err.Error())
	assert.Nil(t, execCtx.Get(cor.CtxOut))
}

// TestEmotionDetectAnalyzerOutage checks that a transport failure is
// wrapped with stage context and is NOT a validation error.
func TestEmotionDetectAnalyzerOutage(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("connection refused")}
	cmd := commands.NewEmotionDetect("detect-emotion", analyzer)

	execCtx := newExecContext("uploads/abc_selfie.jpg")
	cmd.Execute(execCtx)

	assert.True(t, execCtx.HasErrors())
	err := execCtx.GetErrors()["detect-emotion"]
	assert.False(t, model.IsValidation(err))
	assert.Contains(t, err.Error(), "emotion analysis failed")
	assert.Contains(t, err.Error(), "connection refused")
}
