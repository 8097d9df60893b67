/*
 *     Copyright 2026 The Valvesense Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package vserrors

import (
	"errors"
	"fmt"
)

// Code is the category of a VsError.
type Code int

const (
	CodeSchemaError Code = iota + 1000
	CodeInvalidArgument
	CodeShapeError
	CodeModelNotLoaded
)

// String returns the name of the code.
func (c Code) String() string {
	switch c {
	case CodeSchemaError:
		return "SchemaError"
	case CodeInvalidArgument:
		return "InvalidArgument"
	case CodeShapeError:
		return "ShapeError"
	case CodeModelNotLoaded:
		return "ModelNotLoaded"
	}

	return fmt.Sprintf("Code(%d)", int(c))
}

var (
	// ErrSchema represents a missing or malformed dataset column.
	ErrSchema = &VsError{CodeSchemaError, "schema error"}

	// ErrInvalidArgument represents an argument out of its valid range.
	ErrInvalidArgument = &VsError{CodeInvalidArgument, "invalid argument"}

	// ErrShape represents a dimension mismatch between matrices.
	ErrShape = &VsError{CodeShapeError, "shape error"}

	// ErrModelNotLoaded represents inference attempted without a classifier.
	ErrModelNotLoaded = &VsError{CodeModelNotLoaded, "model not loaded"}
)

type VsError struct {
	Code    Code
	Message string
}

func (e *VsError) Error() string {
	return fmt.Sprintf("[%s]%s", e.Code, e.Message)
}

// Is reports errors of the same code as equal, so errors.Is(err, ErrShape)
// matches every shape error regardless of its message.
func (e *VsError) Is(target error) bool {
	t, ok := target.(*VsError)
	return ok && t.Code == e.Code
}

func New(code Code, msg string) *VsError {
	return &VsError{
		Code:    code,
		Message: msg,
	}
}

func Newf(code Code, format string, a ...any) *VsError {
	return &VsError{
		Code:    code,
		Message: fmt.Sprintf(format, a...),
	}
}

// CheckError unwraps err and reports whether it carries the code.
func CheckError(err error, code Code) bool {
	if err == nil {
		return false
	}

	var e *VsError
	return errors.As(err, &e) && e.Code == code
}

// IsSchemaError checks the error is a SchemaError or not.
func IsSchemaError(err error) bool {
	return CheckError(err, CodeSchemaError)
}

// IsInvalidArgument checks the error is an InvalidArgument or not.
func IsInvalidArgument(err error) bool {
	return CheckError(err, CodeInvalidArgument)
}

// IsShapeError checks the error is a ShapeError or not.
func IsShapeError(err error) bool {
	return CheckError(err, CodeShapeError)
}

// IsModelNotLoaded checks the error is a ModelNotLoaded or not.
func IsModelNotLoaded(err error) bool {
	return CheckError(err, CodeModelNotLoaded)
}
