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

// Package cor_test exercises the chain-of-responsibility engine the
// pipeline runs on: in-order execution, output-to-input piping, and the
// stop-at-first-error behavior the no-partial-results guarantee depends on.
package cor_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaycherian/gcp-go-mood-tunes/internal/core/cor"
	"github.com/zeebo/assert"
)

// appendCommand is a trivial stage that appends its suffix to the string
// piped in and passes the result along.
type appendCommand struct {
	cor.BaseCommand
	suffix string
}

func (c *appendCommand) Execute(ctx cor.Context) {
	in := ctx.Get(c.GetInputParam()).(string)
	ctx.Add(c.GetOutputParam(), in+c.suffix)
}

// failingCommand records an error and produces no output.
type failingCommand struct {
	cor.BaseCommand
	executed *bool
}

func (c *failingCommand) Execute(ctx cor.Context) {
	*c.executed = true
	ctx.AddError(c.GetName(), errors.New("stage blew up"))
}

func newAppend(name, suffix string) *appendCommand {
	return &appendCommand{BaseCommand: *cor.NewBaseCommand(name), suffix: suffix}
}

// TestChainPipesOutputs runs two commands and checks the first one's CtxOut
// value arrives as the second one's CtxIn value.
func TestChainPipesOutputs(t *testing.T) {
	chain := cor.NewBaseChain("pipe-test").
		AddCommand(newAppend("first", "-a")).
		AddCommand(newAppend("second", "-b"))

	execCtx := cor.NewBaseContext()
	execCtx.SetContext(context.Background())
	execCtx.Add(cor.CtxIn, "seed")

	chain.Execute(execCtx)

	assert.False(t, execCtx.HasErrors())
	assert.Equal(t, "seed-a-b", execCtx.Get(cor.CtxIn))
}

// TestChainStopsOnFirstError verifies that once a command records an error
// the remaining commands never run, so a failed pipeline can never produce
// downstream results.
func TestChainStopsOnFirstError(t *testing.T) {
	var failRan, tailRan bool
	tail := &failingCommand{BaseCommand: *cor.NewBaseCommand("tail"), executed: &tailRan}

	chain := cor.NewBaseChain("halt-test").
		AddCommand(&failingCommand{BaseCommand: *cor.NewBaseCommand("boom"), executed: &failRan}).
		AddCommand(tail)

	execCtx := cor.NewBaseContext()
	execCtx.SetContext(context.Background())
	execCtx.Add(cor.CtxIn, "seed")

	chain.Execute(execCtx)

	assert.True(t, failRan)
	assert.False(t, tailRan)
	assert.True(t, execCtx.HasErrors())

	_, recorded := execCtx.GetErrors()["boom"]
	assert.True(t, recorded)
}

// TestChainSkipsNonExecutable checks that a command whose input is missing
// is skipped rather than invoked with a nil input.
func TestChainSkipsNonExecutable(t *testing.T) {
	chain := cor.NewBaseChain("skip-test").AddCommand(newAppend("needs-input", "-x"))

	execCtx := cor.NewBaseContext()
	execCtx.SetContext(context.Background())
	// No CtxIn value on purpose.

	chain.Execute(execCtx)

	assert.False(t, execCtx.HasErrors())
	assert.Nil(t, execCtx.Get(cor.CtxIn))
}

// TestContextCloseRemovesTempFiles verifies the cleanup contract: every
// registered file is deleted on Close, and files already gone do not
// disturb the rest of the cleanup.
func TestContextCloseRemovesTempFiles(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "upload-1.jpg")
	assert.NoError(t, os.WriteFile(present, []byte("img"), 0o644))
	missing := filepath.Join(dir, "upload-2.jpg")

	execCtx := cor.NewBaseContext()
	execCtx.AddTempFile(missing)
	execCtx.AddTempFile(present)
	execCtx.Close()

	_, err := os.Stat(present)
	assert.True(t, os.IsNotExist(err))
}
