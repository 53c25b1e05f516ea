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
	"context"

	"github.com/google/uuid"
)

// ToolRun is the run-tracking handle for one tool invocation. The invoker
// injects it into the context before calling the tool's function; wrapped
// functions that want to emit nested lifecycle events opt in by retrieving
// it with RunFromContext.
type ToolRun struct {
	// ID uniquely identifies this run.
	ID string
	// ToolName is the name of the tool being run.
	ToolName string

	callbacks *Callbacks
}

func newToolRun(toolName string, callbacks *Callbacks) *ToolRun {
	return &ToolRun{
		ID:        uuid.NewString(),
		ToolName:  toolName,
		callbacks: callbacks,
	}
}

// Child returns the callback set to use for nested tool runs, so that
// events emitted by a tool's own sub-invocations reach the same channel.
func (r *ToolRun) Child() *Callbacks {
	if r == nil {
		return nil
	}
	return r.callbacks
}

// contextKeyToolRun is the context key type for the run-tracking handle.
type contextKeyToolRun struct{}

// ContextWithRun returns a context carrying the run-tracking handle.
func ContextWithRun(ctx context.Context, run *ToolRun) context.Context {
	return context.WithValue(ctx, contextKeyToolRun{}, run)
}

// RunFromContext retrieves the run-tracking handle from the context.
// Returns the handle and true if present, nil and false otherwise.
func RunFromContext(ctx context.Context) (*ToolRun, bool) {
	run, ok := ctx.Value(contextKeyToolRun{}).(*ToolRun)
	return run, ok
}
