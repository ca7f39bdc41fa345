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

// Package model defines the core data structures for the application.
// This file holds the error taxonomy for the pipeline. There are exactly two
// classes the HTTP layer distinguishes:
//
//   - ValidationError: a business-rule failure caused by the caller's input
//     (no selectable file, no face in the image). Mapped to 400.
//   - everything else: collaborator or I/O failures. Mapped to 500.
package model

import (
	"errors"
	"fmt"
)

// MsgNoFace is the canonical detail message for the no-face condition. The
// wording is part of the API contract and is asserted by clients.
const MsgNoFace = "Face could not be detected. Please upload a clear face photo."

// MsgNoSelectedFile is the detail message for an upload whose filename is
// empty (browser submitted the field without choosing a file).
const MsgNoSelectedFile = "No selected file"

// ValidationError is a domain validation failure. It marks errors that are
// the caller's fault and therefore map to a 400 response rather than a 500.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError wraps a reason string in a ValidationError.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// NewValidationErrorf is the formatted variant of NewValidationError.
func NewValidationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err (or anything it wraps) is a
// ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
