//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package tool

import (
	"errors"
	"fmt"
)

// ErrAsyncNotSupported is returned when RunAsync is invoked on a tool that
// has no asynchronous implementation. It is raised before any lifecycle
// notification is emitted.
var ErrAsyncNotSupported = errors.New("tool does not support asynchronous invocation")

// InvalidInputError reports raw input that failed schema validation. It is
// raised before the tool's function executes and before any lifecycle
// notification is emitted; the caller must fix the input and retry.
type InvalidInputError struct {
	// ToolName is the name of the tool that rejected the input.
	ToolName string
	// Err is the underlying validation failure.
	Err error
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for tool %q: %v", e.ToolName, e.Err)
}

// Unwrap returns the underlying validation failure.
func (e *InvalidInputError) Unwrap() error {
	return e.Err
}
