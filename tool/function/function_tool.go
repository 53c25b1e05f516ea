//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package function provides function-based tool implementations. It wraps
// a plain Go function as a schema-validated tool with an optional
// asynchronous counterpart.
package function

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	ischema "trpc.group/trpc-go/trpc-tool-go/internal/schema"
	"trpc.group/trpc-go/trpc-tool-go/tool"
)

// FunctionTool wraps a function pair as a tool: a required synchronous
// implementation and an optional asynchronous counterpart. The input
// schema is inferred from the input type I unless supplied explicitly.
type FunctionTool[I, O any] struct {
	declaration  *tool.Declaration
	fn           func(context.Context, I) (O, error)
	asyncFn      func(context.Context, I) (O, error)
	returnDirect bool
	verbose      bool
	callbacks    *tool.Callbacks
	unmarshaler  unmarshaler
}

// Option is a function that configures a FunctionTool.
type Option func(*options)

type options struct {
	name         string
	description  string
	inputSchema  *tool.Schema
	outputSchema *tool.Schema
	inferSchema  bool
	asyncFn      any
	returnDirect bool
	verbose      bool
	callbacks    *tool.Callbacks
	unmarshaler  unmarshaler
}

// WithName sets the name of the function tool. When absent, the name
// defaults to the wrapped function's own name.
//
// Note: Tool names must comply with LLM API requirements for
// compatibility. Use only English letters, numbers, underscores, and
// hyphens.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithDescription sets the description of the function tool. Go functions
// carry no documentation string at runtime, so a description is mandatory:
// construction fails without one.
func WithDescription(description string) Option {
	return func(o *options) {
		o.description = description
	}
}

// WithInputSchema sets a custom input schema. When provided, automatic
// schema inference is skipped.
func WithInputSchema(schema *tool.Schema) Option {
	return func(o *options) {
		o.inputSchema = schema
	}
}

// WithOutputSchema sets a custom output schema. When provided, automatic
// schema generation is skipped.
func WithOutputSchema(schema *tool.Schema) Option {
	return func(o *options) {
		o.outputSchema = schema
	}
}

// WithSchemaInference enables or disables automatic schema inference.
// Inference is on by default; with inference off and no explicit schema
// the tool declares no input schema and accepts a bare string unvalidated.
func WithSchemaInference(infer bool) Option {
	return func(o *options) {
		o.inferSchema = infer
	}
}

// WithAsyncFunc sets the asynchronous counterpart of the wrapped function.
// The value must have type func(context.Context, I) (O, error) for the
// tool's own I and O; construction fails otherwise. Without an
// asynchronous counterpart, RunAsync fails with ErrAsyncNotSupported.
func WithAsyncFunc(fn any) Option {
	return func(o *options) {
		o.asyncFn = fn
	}
}

// WithReturnDirect sets whether the tool's output should be returned
// directly, short-circuiting further processing in the outer loop.
func WithReturnDirect(returnDirect bool) Option {
	return func(o *options) {
		o.returnDirect = returnDirect
	}
}

// WithVerbose sets the tool's own verbose flag.
func WithVerbose(verbose bool) Option {
	return func(o *options) {
		o.verbose = verbose
	}
}

// WithCallbacks sets the tool's own lifecycle callback set. A call-scoped
// set passed to Run takes precedence over it.
func WithCallbacks(callbacks *tool.Callbacks) Option {
	return func(o *options) {
		o.callbacks = callbacks
	}
}

// New creates a FunctionTool from the given function. The name defaults to
// the function's own name, the description is mandatory, and the stored
// description is prefixed with the tool's name and input signature, e.g.
// "add(a: int, b: int) - Adds two numbers.".
func New[I, O any](fn func(context.Context, I) (O, error), opts ...Option) (*FunctionTool[I, O], error) {
	if fn == nil {
		return nil, fmt.Errorf("function tool: fn must not be nil")
	}
	o := &options{
		inferSchema: true,
		unmarshaler: &jsonUnmarshaler{},
	}
	for _, opt := range opts {
		opt(o)
	}

	name := o.name
	if name == "" {
		name = funcName(fn)
	}
	if name == "" {
		return nil, fmt.Errorf("function tool: name is required")
	}
	if o.description == "" {
		return nil, fmt.Errorf("function tool %q: description is required", name)
	}

	var emptyI I
	var emptyO O
	inputType := reflect.TypeOf(&emptyI).Elem()
	outputType := reflect.TypeOf(&emptyO).Elem()

	inputSchema := o.inputSchema
	if inputSchema == nil && o.inferSchema {
		inputSchema = ischema.Generate(inputType)
	}
	outputSchema := o.outputSchema
	if outputSchema == nil && o.inferSchema {
		outputSchema = ischema.Generate(outputType)
	}

	var asyncFn func(context.Context, I) (O, error)
	if o.asyncFn != nil {
		af, ok := o.asyncFn.(func(context.Context, I) (O, error))
		if !ok {
			return nil, fmt.Errorf(
				"function tool %q: async function must have type func(context.Context, %s) (%s, error)",
				name, inputType, outputType,
			)
		}
		asyncFn = af
	}

	description := fmt.Sprintf(
		"%s%s - %s", name, ischema.Signature(inputType), strings.TrimSpace(o.description),
	)
	return &FunctionTool[I, O]{
		declaration: &tool.Declaration{
			Name:         name,
			Description:  description,
			InputSchema:  inputSchema,
			OutputSchema: outputSchema,
		},
		fn:           fn,
		asyncFn:      asyncFn,
		returnDirect: o.returnDirect,
		verbose:      o.verbose,
		callbacks:    o.callbacks,
		unmarshaler:  o.unmarshaler,
	}, nil
}

// Declaration returns the tool's declaration information.
func (ft *FunctionTool[I, O]) Declaration() *tool.Declaration {
	return ft.declaration
}

// Call executes the synchronous implementation with the provided JSON
// arguments.
func (ft *FunctionTool[I, O]) Call(ctx context.Context, jsonArgs []byte) (any, error) {
	var input I
	if err := ft.unmarshaler.Unmarshal(jsonArgs, &input); err != nil {
		return nil, err
	}
	return ft.fn(ctx, input)
}

// AsyncSupported reports whether an asynchronous counterpart exists.
func (ft *FunctionTool[I, O]) AsyncSupported() bool {
	return ft.asyncFn != nil
}

// CallAsync executes the asynchronous counterpart with the provided JSON
// arguments. It fails with ErrAsyncNotSupported when the tool was built
// without one.
func (ft *FunctionTool[I, O]) CallAsync(ctx context.Context, jsonArgs []byte) (any, error) {
	if ft.asyncFn == nil {
		return nil, tool.ErrAsyncNotSupported
	}
	var input I
	if err := ft.unmarshaler.Unmarshal(jsonArgs, &input); err != nil {
		return nil, err
	}
	return ft.asyncFn(ctx, input)
}

// ReturnDirect reports whether the tool's output short-circuits further
// processing in the outer loop.
func (ft *FunctionTool[I, O]) ReturnDirect() bool {
	return ft.returnDirect
}

// Verbose reports the tool's own verbose flag. When true it overrides any
// call-level verbosity.
func (ft *FunctionTool[I, O]) Verbose() bool {
	return ft.verbose
}

// SetVerbose updates the tool's verbose flag. Together with SetCallbacks
// this is the only mutation allowed after construction.
func (ft *FunctionTool[I, O]) SetVerbose(verbose bool) {
	ft.verbose = verbose
}

// Callbacks returns the tool's own lifecycle callback set.
func (ft *FunctionTool[I, O]) Callbacks() *tool.Callbacks {
	return ft.callbacks
}

// SetCallbacks replaces the tool's own lifecycle callback set.
func (ft *FunctionTool[I, O]) SetCallbacks(callbacks *tool.Callbacks) {
	ft.callbacks = callbacks
}

// funcName derives a default tool name from the function's runtime name.
func funcName[I, O any](fn func(context.Context, I) (O, error)) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return ""
	}
	name := strings.TrimSuffix(f.Name(), "-fm")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

type unmarshaler interface {
	Unmarshal([]byte, any) error
}

type jsonUnmarshaler struct{}

// Unmarshal unmarshals JSON data into the provided value.
func (j *jsonUnmarshaler) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
