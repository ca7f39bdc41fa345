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

// Package workflow_test contains tests for the assembled pipelines. This
// file provides the suite-level setup: logging is initialized once so the
// chain's slog output during tests is structured instead of raw.
package workflow_test

import (
	"os"
	"testing"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/telemetry"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

const tName = "github.com/jaycherian/gcp-go-mood-tunes/tests/workflow"

var (
	tracer = otel.Tracer(tName)
	logger = otelslog.NewLogger(tName)
)

// TestMain initializes shared telemetry before the pipeline tests run. The
// tests use fake collaborators, so no external clients are constructed
// here.
func TestMain(m *testing.M) {
	telemetry.SetupLogging()
	logger.Info("completed test setup")

	os.Exit(m.Run())
}
