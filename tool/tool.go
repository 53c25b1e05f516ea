//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package tool provides the callable tool abstraction: declarations,
// schema-validated input, a uniform sync/async invoker, and lifecycle
// callbacks for observability.
package tool

import "context"

// Tool is the interface that all tools must implement.
type Tool interface {
	// Declaration returns the tool's metadata: name, description and
	// input/output schemas. The declaration is immutable after the tool
	// is constructed.
	Declaration() *Declaration
}

// CallableTool is a tool that can be invoked synchronously with
// JSON-encoded arguments.
type CallableTool interface {
	Tool

	// Call executes the tool with the provided JSON arguments and returns
	// the raw result.
	Call(ctx context.Context, jsonArgs []byte) (any, error)
}

// AsyncCallableTool is a tool that additionally owns an asynchronous
// implementation. RunAsync schedules CallAsync on the shared worker pool;
// CallAsync itself blocks the calling goroutine.
type AsyncCallableTool interface {
	CallableTool

	// AsyncSupported reports whether an asynchronous implementation exists.
	// RunAsync consults this before emitting any lifecycle notification.
	AsyncSupported() bool

	// CallAsync executes the asynchronous implementation with the provided
	// JSON arguments. Calling it on a tool without an asynchronous
	// implementation fails with ErrAsyncNotSupported.
	CallAsync(ctx context.Context, jsonArgs []byte) (any, error)
}

// Declaration describes a tool to the model that decides when and how to
// invoke it.
type Declaration struct {
	// Name is the unique name of the tool.
	Name string `json:"name"`
	// Description tells the model how, when and why to use the tool.
	Description string `json:"description"`
	// InputSchema describes the tool's accepted input fields. A nil schema
	// means the tool takes a single unvalidated string.
	InputSchema *Schema `json:"inputSchema,omitempty"`
	// OutputSchema describes the tool's result, when known.
	OutputSchema *Schema `json:"outputSchema,omitempty"`
}

// Outcome is the terminal value of an asynchronous tool run.
type Outcome struct {
	// Result is the raw result of the underlying function, nil on failure.
	Result any
	// Err is the execution or notification error, nil on success.
	Err error
}
