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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-tool-go/log"
)

const defaultColor = "green"

// RunOptions holds per-call options for Run and RunAsync.
type RunOptions struct {
	verbose    *bool
	startColor string
	color      string
	callbacks  *Callbacks
	extra      map[string]any
}

// RunOption configures a single tool run.
type RunOption func(*RunOptions)

// WithVerbose sets the call-level verbosity. A tool whose own verbose flag
// is true ignores this value; the call-level value applies only when the
// tool-level flag is false.
func WithVerbose(verbose bool) RunOption {
	return func(o *RunOptions) {
		o.verbose = &verbose
	}
}

// WithStartColor sets the advisory display color for the start
// notification.
func WithStartColor(color string) RunOption {
	return func(o *RunOptions) {
		o.startColor = color
	}
}

// WithColor sets the advisory display color for the end notification.
func WithColor(color string) RunOption {
	return func(o *RunOptions) {
		o.color = color
	}
}

// WithCallbacks sets the call-scoped callback set. When present it takes
// precedence over the tool's own callbacks.
func WithCallbacks(callbacks *Callbacks) RunOption {
	return func(o *RunOptions) {
		o.callbacks = callbacks
	}
}

// WithExtraArgs sets caller metadata forwarded verbatim to the lifecycle
// notifications. It is never passed to the tool's function.
func WithExtraArgs(extra map[string]any) RunOption {
	return func(o *RunOptions) {
		o.extra = extra
	}
}

func newRunOptions(opts []RunOption) *RunOptions {
	o := &RunOptions{
		startColor: defaultColor,
		color:      defaultColor,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// verboseTool is implemented by tools that carry their own verbose flag.
type verboseTool interface {
	Verbose() bool
}

// callbackTool is implemented by tools that carry their own callback set.
type callbackTool interface {
	Callbacks() *Callbacks
}

// Run invokes the tool synchronously: validate the raw input against the
// declared schema, emit the tool-start notification, execute the tool's
// function, then emit tool-end on success or tool-error on failure.
//
// Validation failures surface as *InvalidInputError before any side
// effect. Execution errors are reported once to the callback set and then
// returned unchanged, never wrapped.
func Run(ctx context.Context, t CallableTool, input Input, opts ...RunOption) (any, error) {
	o := newRunOptions(opts)
	decl := t.Declaration()
	jsonArgs, err := coerceInput(decl, input)
	if err != nil {
		return nil, err
	}
	run, callbacks, verbose := prepareRun(t, o)
	if err := emitStart(ctx, callbacks, run, decl, input, o, verbose); err != nil {
		return nil, fmt.Errorf("tool callback error: %w", err)
	}
	result, err := t.Call(ContextWithRun(ctx, run), jsonArgs)
	if err != nil {
		emitError(ctx, callbacks, run, err)
		return nil, err
	}
	if err := emitEnd(ctx, callbacks, run, result, o, verbose); err != nil {
		return result, fmt.Errorf("tool callback error: %w", err)
	}
	return result, nil
}

// RunAsync invokes the tool's asynchronous implementation on the shared
// goroutine pool. The contract matches Run except that ErrAsyncNotSupported
// is returned immediately, before validation and before any notification,
// when the tool has no asynchronous implementation. The terminal result or
// error is delivered on the returned channel.
func RunAsync(ctx context.Context, t CallableTool, input Input, opts ...RunOption) (<-chan Outcome, error) {
	at, ok := t.(AsyncCallableTool)
	if !ok || !at.AsyncSupported() {
		return nil, ErrAsyncNotSupported
	}
	o := newRunOptions(opts)
	decl := t.Declaration()
	jsonArgs, err := coerceInput(decl, input)
	if err != nil {
		return nil, err
	}
	run, callbacks, verbose := prepareRun(t, o)
	out := make(chan Outcome, 1)
	task := func() {
		if err := emitStart(ctx, callbacks, run, decl, input, o, verbose); err != nil {
			out <- Outcome{Err: fmt.Errorf("tool callback error: %w", err)}
			return
		}
		result, err := at.CallAsync(ContextWithRun(ctx, run), jsonArgs)
		if err != nil {
			emitError(ctx, callbacks, run, err)
			out <- Outcome{Err: err}
			return
		}
		if err := emitEnd(ctx, callbacks, run, result, o, verbose); err != nil {
			out <- Outcome{Result: result, Err: fmt.Errorf("tool callback error: %w", err)}
			return
		}
		out <- Outcome{Result: result}
	}
	if err := ants.Submit(task); err != nil {
		return nil, fmt.Errorf("schedule async tool run: %w", err)
	}
	return out, nil
}

// Invoke runs the tool with a bare string input and default display
// options, mirroring direct invocation of a tool object.
func Invoke(ctx context.Context, t CallableTool, input string, opts ...RunOption) (any, error) {
	return Run(ctx, t, StringInput(input), opts...)
}

// coerceInput validates the raw input against the declared schema and
// encodes it as JSON arguments for the tool's function. A bare string is
// bound to the schema's only field; a structured mapping is validated
// directly against the full schema.
func coerceInput(decl *Declaration, input Input) ([]byte, error) {
	var name string
	var schema *Schema
	if decl != nil {
		name = decl.Name
		schema = decl.InputSchema
	}
	if input.IsString() {
		if schema == nil {
			return json.Marshal(input.String())
		}
		field, ok := schema.SingleField()
		if !ok {
			return nil, &InvalidInputError{
				ToolName: name,
				Err:      errors.New("string input is only valid for tools with exactly one input field"),
			}
		}
		args := schema.ApplyDefaults(map[string]any{field: input.String()})
		if err := schema.Validate(args); err != nil {
			return nil, &InvalidInputError{ToolName: name, Err: err}
		}
		return json.Marshal(args)
	}
	args := input.Map()
	if args == nil {
		args = map[string]any{}
	}
	if schema != nil {
		// Defaults fill in before validation so that a required field with a
		// declared default never fails the presence check.
		args = schema.ApplyDefaults(args)
		if err := schema.Validate(args); err != nil {
			return nil, &InvalidInputError{ToolName: name, Err: err}
		}
	}
	return json.Marshal(args)
}

// prepareRun resolves the callback set, the run handle and the effective
// verbosity for one invocation.
func prepareRun(t Tool, o *RunOptions) (*ToolRun, *Callbacks, bool) {
	var own *Callbacks
	if ct, ok := t.(callbackTool); ok {
		own = ct.Callbacks()
	}
	callbacks := ResolveCallbacks(o.callbacks, own)

	// Tool-level true always wins; the call-level value only applies when
	// the tool's own flag is false.
	verbose := false
	if vt, ok := t.(verboseTool); ok {
		verbose = vt.Verbose()
	}
	if !verbose && o.verbose != nil {
		verbose = *o.verbose
	}

	name := ""
	if decl := t.Declaration(); decl != nil {
		name = decl.Name
	}
	return newToolRun(name, callbacks), callbacks, verbose
}

func emitStart(
	ctx context.Context,
	callbacks *Callbacks,
	run *ToolRun,
	decl *Declaration,
	input Input,
	o *RunOptions,
	verbose bool,
) error {
	description := ""
	if decl != nil {
		description = decl.Description
	}
	if verbose {
		log.Infof("tool %s started, input: %s", run.ToolName, input.String())
	}
	return callbacks.RunOnToolStart(ctx, &StartArgs{
		ToolName:    run.ToolName,
		Description: description,
		Input:       input.String(),
		RunID:       run.ID,
		Color:       o.startColor,
		Verbose:     verbose,
		Extra:       o.extra,
	})
}

func emitEnd(
	ctx context.Context,
	callbacks *Callbacks,
	run *ToolRun,
	result any,
	o *RunOptions,
	verbose bool,
) error {
	output := fmt.Sprintf("%v", result)
	if verbose {
		log.Infof("tool %s ended, output: %s", run.ToolName, output)
	}
	return callbacks.RunOnToolEnd(ctx, &EndArgs{
		ToolName: run.ToolName,
		Output:   output,
		RunID:    run.ID,
		Color:    o.color,
		Verbose:  verbose,
		Extra:    o.extra,
	})
}

// emitError reports the execution error to the callback set exactly once.
// A failure inside the error callbacks is logged and dropped so that the
// original execution error reaches the caller unchanged.
func emitError(ctx context.Context, callbacks *Callbacks, run *ToolRun, execErr error) {
	if err := callbacks.RunOnToolError(ctx, &ErrorArgs{
		ToolName: run.ToolName,
		RunID:    run.ID,
		Err:      execErr,
	}); err != nil {
		log.Errorf("tool %s error callback failed: %v", run.ToolName, err)
	}
}
