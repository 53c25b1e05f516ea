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
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"trpc.group/trpc-go/trpc-tool-go/tool"
)

func namedTool(name string) tool.Tool {
	return &fakeTool{decl: &tool.Declaration{Name: name}}
}

func toolNames(tools []tool.Tool) []string {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Declaration().Name)
	}
	return names
}

func TestStaticToolSet(t *testing.T) {
	ts := tool.NewStaticToolSet("math", namedTool("add"), namedTool("sub"))
	require.Equal(t, "math", ts.Name())
	require.Equal(t, []string{"add", "sub"}, toolNames(ts.Tools(context.Background())))
	require.NoError(t, ts.Close())
}

func TestFilterTools(t *testing.T) {
	tools := []tool.Tool{namedTool("add"), namedTool("sub"), namedTool("mul")}

	included := tool.FilterTools(
		context.Background(), tools, tool.NewIncludeToolNamesFilter("add", "mul"),
	)
	require.Equal(t, []string{"add", "mul"}, toolNames(included))

	excluded := tool.FilterTools(
		context.Background(), tools, tool.NewExcludeToolNamesFilter("sub"),
	)
	require.Equal(t, []string{"add", "mul"}, toolNames(excluded))
}

func TestFilterToolSet(t *testing.T) {
	ts := tool.NewStaticToolSet("math", namedTool("add"), namedTool("sub"))
	filtered := tool.FilterToolSet(ts, tool.NewIncludeToolNamesFilter("sub"))

	require.Equal(t, "math", filtered.Name())
	require.Equal(t, []string{"sub"}, toolNames(filtered.Tools(context.Background())))
	require.NoError(t, filtered.Close())
}

func TestFilterToolSetNilFilter(t *testing.T) {
	ts := tool.NewStaticToolSet("math", namedTool("add"))
	filtered := tool.FilterToolSet(ts, nil)
	require.Len(t, filtered.Tools(context.Background()), 1)
}
