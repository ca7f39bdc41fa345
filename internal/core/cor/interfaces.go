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

// Package cor implements a small Chain of Responsibility framework. A
// workflow is a Chain of Commands executed strictly in order; a shared
// Context carries state, errors, and temporary files between them. The
// genre-by-emotion pipeline is built on top of this package: one Command per
// stage, failure at any Command short-circuits the rest, and Context.Close
// guarantees temp-file cleanup on every exit path.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// CtxIn is the key a command reads its primary input from. The chain
	// fills it with the previous command's output.
	CtxIn = "__IN__"
	// CtxOut is the key a command writes its primary output to.
	CtxOut = "__OUT__"
)

// Context is the shared state for one workflow execution. It is a property
// bag for inter-command data, an error collector, and the owner of any
// temporary files created along the way.
type Context interface {
	// SetContext and GetContext manage the request-scoped Go context used
	// for cancellation and trace propagation.
	SetContext(context context.Context)
	GetContext() context.Context

	// Add stores a value under key; returns the Context for chaining.
	Add(key string, value interface{}) Context

	// Get returns the value stored under key, or nil.
	Get(key string) interface{}

	// Remove deletes the value stored under key.
	Remove(key string)

	// AddError records an error keyed by the name of the command that
	// produced it. A non-empty error map stops the chain.
	AddError(key string, err error)

	// GetErrors returns all recorded errors.
	GetErrors() map[string]error

	// HasErrors reports whether any command has failed.
	HasErrors() bool

	// AddTempFile registers a file for removal when the context closes.
	AddTempFile(file string)

	// GetTempFiles returns all registered temporary file paths.
	GetTempFiles() []string

	// Close removes every registered temporary file. Deferred by the
	// workflow owner; must run exactly once per execution.
	Close()
}

// Executable is anything with a core unit of work.
type Executable interface {
	// Execute reads inputs from the context and writes results or errors
	// back to it.
	Execute(context Context)
}

// Command is an atomic, named unit of work with OpenTelemetry
// instrumentation attached.
type Command interface {
	Executable

	// GetName identifies the command in traces, metrics, and error maps.
	GetName() string

	// GetInputParam and GetOutputParam name the context keys this command
	// reads from and writes to. They default to CtxIn / CtxOut so the
	// chain can pipe one command's output into the next.
	GetInputParam() string
	GetOutputParam() string

	// IsExecutable is the precondition check run before Execute.
	IsExecutable(context Context) bool

	GetTracer() trace.Tracer
	GetMeter() metric.Meter
	GetSuccessCounter() metric.Int64Counter
	GetErrorCounter() metric.Int64Counter
}

// Chain is an ordered sequence of commands. A Chain is itself a Command, so
// chains can nest.
type Chain interface {
	Command

	// ContinueOnFailure controls whether the chain keeps executing after a
	// command records an error. Default is to stop.
	ContinueOnFailure(bool) Chain

	// AddCommand appends a command to the execution sequence.
	AddCommand(command Command) Chain
}
