//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package tool_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"trpc.group/trpc-go/trpc-tool-go/tool"
)

func TestSchemaSingleField(t *testing.T) {
	single := &tool.Schema{
		Type:       "object",
		Properties: map[string]*tool.Schema{"query": {Type: "string"}},
	}
	name, ok := single.SingleField()
	require.True(t, ok)
	require.Equal(t, "query", name)

	multi := &tool.Schema{
		Type: "object",
		Properties: map[string]*tool.Schema{
			"a": {Type: "integer"},
			"b": {Type: "integer"},
		},
	}
	_, ok = multi.SingleField()
	require.False(t, ok)

	empty := &tool.Schema{Type: "object"}
	_, ok = empty.SingleField()
	require.False(t, ok)

	var nilSchema *tool.Schema
	_, ok = nilSchema.SingleField()
	require.False(t, ok)
}

func TestSchemaValidateRequired(t *testing.T) {
	s := &tool.Schema{
		Type: "object",
		Properties: map[string]*tool.Schema{
			"name": {Type: "string"},
			"age":  {Type: "integer"},
		},
		Required: []string{"name"},
	}

	require.NoError(t, s.Validate(map[string]any{"name": "bob"}))
	require.Error(t, s.Validate(map[string]any{"age": 3}))
}

func TestSchemaValidateTypes(t *testing.T) {
	s := &tool.Schema{
		Type: "object",
		Properties: map[string]*tool.Schema{
			"s":    {Type: "string"},
			"i":    {Type: "integer"},
			"n":    {Type: "number"},
			"b":    {Type: "boolean"},
			"list": {Type: "array", Items: &tool.Schema{Type: "string"}},
			"obj":  {Type: "object"},
		},
	}

	require.NoError(t, s.Validate(map[string]any{
		"s":    "x",
		"i":    3,
		"n":    3.14,
		"b":    true,
		"list": []string{"a"},
		"obj":  map[string]any{"k": "v"},
	}))

	// JSON round-trips deliver integers as float64.
	require.NoError(t, s.Validate(map[string]any{"i": float64(3)}))

	require.Error(t, s.Validate(map[string]any{"s": 1}))
	require.Error(t, s.Validate(map[string]any{"i": 3.5}))
	require.Error(t, s.Validate(map[string]any{"n": "3.14"}))
	require.Error(t, s.Validate(map[string]any{"b": "true"}))
	require.Error(t, s.Validate(map[string]any{"list": "a"}))
	require.Error(t, s.Validate(map[string]any{"obj": 1}))
}

func TestSchemaValidateEnum(t *testing.T) {
	s := &tool.Schema{
		Type: "object",
		Properties: map[string]*tool.Schema{
			"unit": {Type: "string", Enum: []any{"celsius", "fahrenheit"}},
			"n":    {Type: "integer", Enum: []any{int64(1), int64(2)}},
		},
	}

	require.NoError(t, s.Validate(map[string]any{"unit": "celsius"}))
	require.Error(t, s.Validate(map[string]any{"unit": "kelvin"}))

	// Numeric enum values match across int renditions.
	require.NoError(t, s.Validate(map[string]any{"n": 1}))
	require.NoError(t, s.Validate(map[string]any{"n": float64(2)}))
	require.Error(t, s.Validate(map[string]any{"n": 3}))
}

func TestSchemaValidateIgnoresUnknownKeys(t *testing.T) {
	s := &tool.Schema{
		Type:       "object",
		Properties: map[string]*tool.Schema{"name": {Type: "string"}},
	}
	require.NoError(t, s.Validate(map[string]any{"name": "x", "unknown": 1}))
}

func TestSchemaApplyDefaults(t *testing.T) {
	s := &tool.Schema{
		Type: "object",
		Properties: map[string]*tool.Schema{
			"name":     {Type: "string"},
			"greeting": {Type: "string", Default: "hello"},
		},
	}

	in := map[string]any{"name": "bob"}
	out := s.ApplyDefaults(in)
	require.Equal(t, "hello", out["greeting"])
	require.Equal(t, "bob", out["name"])

	// The input mapping is left untouched.
	require.NotContains(t, in, "greeting")

	// An explicit value wins over the default.
	out = s.ApplyDefaults(map[string]any{"name": "bob", "greeting": "hey"})
	require.Equal(t, "hey", out["greeting"])
}
