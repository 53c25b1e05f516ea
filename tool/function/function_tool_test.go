//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package function_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"trpc.group/trpc-go/trpc-tool-go/tool"
	"trpc.group/trpc-go/trpc-tool-go/tool/function"
)

type addArgs struct {
	A int `json:"a"`
	B int `json:"b"`
}

// add is package-level so that the default tool name derives from it.
func add(_ context.Context, args addArgs) (int, error) {
	return args.A + args.B, nil
}

func TestNewDefaultsFromFunction(t *testing.T) {
	ft, err := function.New(add, function.WithDescription("Adds two numbers."))
	require.NoError(t, err)

	decl := ft.Declaration()
	require.Equal(t, "add", decl.Name)
	require.True(t, strings.HasPrefix(decl.Description, "add(a: int, b: int) - Adds two numbers."))

	require.NotNil(t, decl.InputSchema)
	require.Len(t, decl.InputSchema.Properties, 2)
	require.Equal(t, "integer", decl.InputSchema.Properties["a"].Type)
	require.Equal(t, "integer", decl.InputSchema.Properties["b"].Type)
	require.ElementsMatch(t, []string{"a", "b"}, decl.InputSchema.Required)
}

func TestNewRequiresDescription(t *testing.T) {
	_, err := function.New(add)
	require.Error(t, err)
	require.Contains(t, err.Error(), "description is required")
}

func TestNewRequiresFunc(t *testing.T) {
	_, err := function.New[addArgs, int](nil, function.WithDescription("x"))
	require.Error(t, err)
}

func TestNewExplicitNameAndSchema(t *testing.T) {
	schema := &tool.Schema{
		Type:       "object",
		Properties: map[string]*tool.Schema{"a": {Type: "integer"}},
	}
	ft, err := function.New(
		add,
		function.WithName("sum"),
		function.WithDescription("Sums."),
		function.WithInputSchema(schema),
	)
	require.NoError(t, err)

	decl := ft.Declaration()
	require.Equal(t, "sum", decl.Name)
	require.Same(t, schema, decl.InputSchema)
}

func TestNewWithoutSchemaInference(t *testing.T) {
	ft, err := function.New(
		func(_ context.Context, s string) (string, error) { return strings.ToUpper(s), nil },
		function.WithName("upper"),
		function.WithDescription("Uppercases the input."),
		function.WithSchemaInference(false),
	)
	require.NoError(t, err)
	require.Nil(t, ft.Declaration().InputSchema)
	require.Nil(t, ft.Declaration().OutputSchema)

	// Without a schema a bare string passes through unvalidated.
	result, err := tool.Run(context.Background(), ft, tool.StringInput("hi"))
	require.NoError(t, err)
	require.Equal(t, "HI", result)
}

func TestCall(t *testing.T) {
	ft, err := function.New(add, function.WithDescription("Adds two numbers."))
	require.NoError(t, err)

	result, err := ft.Call(context.Background(), []byte(`{"a":2,"b":3}`))
	require.NoError(t, err)
	require.Equal(t, 5, result)
}

func TestCallUnmarshalError(t *testing.T) {
	ft, err := function.New(add, function.WithDescription("Adds two numbers."))
	require.NoError(t, err)

	_, err = ft.Call(context.Background(), []byte(`{"a":"x"}`))
	require.Error(t, err)
}

func TestCallAsyncWithoutImplementation(t *testing.T) {
	ft, err := function.New(add, function.WithDescription("Adds two numbers."))
	require.NoError(t, err)

	require.False(t, ft.AsyncSupported())
	_, err = ft.CallAsync(context.Background(), []byte(`{"a":1,"b":2}`))
	require.ErrorIs(t, err, tool.ErrAsyncNotSupported)
}

func TestWithAsyncFunc(t *testing.T) {
	asyncAdd := func(_ context.Context, args addArgs) (int, error) {
		return args.A + args.B, nil
	}
	ft, err := function.New(
		add,
		function.WithDescription("Adds two numbers."),
		function.WithAsyncFunc(asyncAdd),
	)
	require.NoError(t, err)
	require.True(t, ft.AsyncSupported())

	result, err := ft.CallAsync(context.Background(), []byte(`{"a":4,"b":5}`))
	require.NoError(t, err)
	require.Equal(t, 9, result)
}

func TestWithAsyncFuncTypeMismatch(t *testing.T) {
	_, err := function.New(
		add,
		function.WithDescription("Adds two numbers."),
		function.WithAsyncFunc(func(_ context.Context, s string) (string, error) { return s, nil }),
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "async function")
}

func TestMutableFlags(t *testing.T) {
	ft, err := function.New(add, function.WithDescription("Adds two numbers."))
	require.NoError(t, err)

	require.False(t, ft.Verbose())
	ft.SetVerbose(true)
	require.True(t, ft.Verbose())

	require.Nil(t, ft.Callbacks())
	callbacks := tool.NewCallbacks()
	ft.SetCallbacks(callbacks)
	require.Same(t, callbacks, ft.Callbacks())
}

func TestReturnDirect(t *testing.T) {
	ft, err := function.New(
		add,
		function.WithDescription("Adds two numbers."),
		function.WithReturnDirect(true),
	)
	require.NoError(t, err)
	require.True(t, ft.ReturnDirect())
}

func TestEndToEndStructuredRun(t *testing.T) {
	type upperArgs struct {
		Text string `json:"text"`
	}
	upper, err := function.New(
		func(_ context.Context, args upperArgs) (string, error) {
			return strings.ToUpper(args.Text), nil
		},
		function.WithName("upper"),
		function.WithDescription("Uppercases the text."),
	)
	require.NoError(t, err)

	var order []string
	callbacks := tool.NewCallbacks().
		RegisterOnToolStart(func(context.Context, *tool.StartArgs) error {
			order = append(order, "start")
			return nil
		}).
		RegisterOnToolEnd(func(context.Context, *tool.EndArgs) error {
			order = append(order, "end")
			return nil
		}).
		RegisterOnToolError(func(context.Context, *tool.ErrorArgs) error {
			order = append(order, "error")
			return nil
		})

	result, err := tool.Run(
		context.Background(), upper,
		tool.MapInput(map[string]any{"text": "hi"}),
		tool.WithCallbacks(callbacks),
	)
	require.NoError(t, err)
	require.Equal(t, "HI", result)
	require.Equal(t, []string{"start", "end"}, order)
}

func TestExecutionErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	ft, err := function.New(
		func(_ context.Context, args addArgs) (int, error) { return 0, boom },
		function.WithName("failing"),
		function.WithDescription("Always fails."),
	)
	require.NoError(t, err)

	_, err = tool.Run(context.Background(), ft, tool.MapInput(map[string]any{"a": 1, "b": 2}))
	require.Same(t, boom, err)
}
