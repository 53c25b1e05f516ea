//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package tool

import "context"

// StartArgs carries the tool-start notification payload.
type StartArgs struct {
	// ToolName is the name of the tool being run.
	ToolName string
	// Description is the tool's description.
	Description string
	// Input is the string form of the raw input.
	Input string
	// RunID identifies this run; nested notifications carry the same ID.
	RunID string
	// Color is an advisory display hint, not semantic.
	Color string
	// Verbose is the effective verbosity resolved for this run.
	Verbose bool
	// Extra holds caller-supplied metadata forwarded verbatim.
	Extra map[string]any
}

// EndArgs carries the tool-end notification payload.
type EndArgs struct {
	// ToolName is the name of the tool that ran.
	ToolName string
	// Output is the string form of the result.
	Output string
	// RunID identifies the run this notification belongs to.
	RunID string
	// Color is an advisory display hint, not semantic.
	Color string
	// Verbose is the effective verbosity resolved for this run.
	Verbose bool
	// Extra holds caller-supplied metadata forwarded verbatim.
	Extra map[string]any
}

// ErrorArgs carries the tool-error notification payload.
type ErrorArgs struct {
	// ToolName is the name of the tool that failed.
	ToolName string
	// RunID identifies the run this notification belongs to.
	RunID string
	// Err is the original execution error, never wrapped.
	Err error
}

// StartCallback is invoked when a tool run starts.
type StartCallback = func(ctx context.Context, args *StartArgs) error

// EndCallback is invoked when a tool run completes successfully.
type EndCallback = func(ctx context.Context, args *EndArgs) error

// ErrorCallback is invoked when the tool's underlying function fails.
type ErrorCallback = func(ctx context.Context, args *ErrorArgs) error

// Callbacks holds ordered lifecycle callbacks for tool runs. The zero
// value dispatches nothing.
type Callbacks struct {
	// OnStart is the list of callbacks invoked before the tool executes.
	OnStart []StartCallback
	// OnEnd is the list of callbacks invoked after a successful run.
	OnEnd []EndCallback
	// OnError is the list of callbacks invoked after a failed run.
	OnError []ErrorCallback
	// continueOnError controls whether dispatch continues past a failing
	// callback. Default: false (stop on first error).
	continueOnError bool
}

// CallbacksOption configures Callbacks behavior.
type CallbacksOption func(*Callbacks)

// WithContinueOnError sets whether to continue dispatching callbacks when
// one of them fails. The first error is still returned.
func WithContinueOnError(continueOnError bool) CallbacksOption {
	return func(c *Callbacks) {
		c.continueOnError = continueOnError
	}
}

// NewCallbacks creates a new Callbacks instance.
func NewCallbacks(opts ...CallbacksOption) *Callbacks {
	c := &Callbacks{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterOnToolStart registers a tool-start callback.
func (c *Callbacks) RegisterOnToolStart(cb StartCallback) *Callbacks {
	c.OnStart = append(c.OnStart, cb)
	return c
}

// RegisterOnToolEnd registers a tool-end callback.
func (c *Callbacks) RegisterOnToolEnd(cb EndCallback) *Callbacks {
	c.OnEnd = append(c.OnEnd, cb)
	return c
}

// RegisterOnToolError registers a tool-error callback.
func (c *Callbacks) RegisterOnToolError(cb ErrorCallback) *Callbacks {
	c.OnError = append(c.OnError, cb)
	return c
}

// RunOnToolStart dispatches the tool-start notification to all registered
// callbacks in order.
func (c *Callbacks) RunOnToolStart(ctx context.Context, args *StartArgs) error {
	if c == nil {
		return nil
	}
	var firstErr error
	for _, cb := range c.OnStart {
		if err := cb(ctx, args); err != nil {
			if !c.continueOnError {
				return err
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// RunOnToolEnd dispatches the tool-end notification to all registered
// callbacks in order.
func (c *Callbacks) RunOnToolEnd(ctx context.Context, args *EndArgs) error {
	if c == nil {
		return nil
	}
	var firstErr error
	for _, cb := range c.OnEnd {
		if err := cb(ctx, args); err != nil {
			if !c.continueOnError {
				return err
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// RunOnToolError dispatches the tool-error notification to all registered
// callbacks in order.
func (c *Callbacks) RunOnToolError(ctx context.Context, args *ErrorArgs) error {
	if c == nil {
		return nil
	}
	var firstErr error
	for _, cb := range c.OnError {
		if err := cb(ctx, args); err != nil {
			if !c.continueOnError {
				return err
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// ResolveCallbacks merges the call-scoped and tool-scoped callback sets.
// The call-scoped set always wins when present; otherwise the tool's own
// set is used.
func ResolveCallbacks(call, own *Callbacks) *Callbacks {
	if call != nil {
		return call
	}
	return own
}
