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

// ToolSet defines an interface for managing a set of tools.
type ToolSet interface {
	// Tools returns the tools available in the set for the given context.
	Tools(context.Context) []Tool

	// Close releases any resources held by the ToolSet.
	Close() error

	// Name returns the name of the ToolSet for identification and conflict
	// resolution.
	Name() string
}

// NewStaticToolSet creates a ToolSet over a fixed list of tools.
func NewStaticToolSet(name string, tools ...Tool) ToolSet {
	return &staticToolSet{name: name, tools: tools}
}

type staticToolSet struct {
	name  string
	tools []Tool
}

func (s *staticToolSet) Tools(context.Context) []Tool { return s.tools }

func (s *staticToolSet) Close() error { return nil }

func (s *staticToolSet) Name() string { return s.name }

// FilterFunc is a function that filters tools based on a context and a tool.
type FilterFunc func(ctx context.Context, t Tool) bool

// FilterTools filters tools from a list based on a filter function.
func FilterTools(ctx context.Context, tools []Tool, filter FilterFunc) []Tool {
	filtered := make([]Tool, 0, len(tools))
	for _, t := range tools {
		if filter(ctx, t) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FilterToolSet creates a new ToolSet that filters tools from the original
// ToolSet.
func FilterToolSet(toolset ToolSet, filter FilterFunc) ToolSet {
	return &filteredToolSet{
		original: toolset,
		filter:   filter,
	}
}

// filteredToolSet wraps a ToolSet to filter its tools.
type filteredToolSet struct {
	original ToolSet
	filter   FilterFunc
}

// Tools returns filtered tools from the original ToolSet.
func (f *filteredToolSet) Tools(ctx context.Context) []Tool {
	originalTools := f.original.Tools(ctx)
	if f.filter == nil {
		return originalTools
	}
	var result []Tool
	for _, t := range originalTools {
		if f.filter(ctx, t) {
			result = append(result, t)
		}
	}
	return result
}

// Close implements the ToolSet interface.
func (f *filteredToolSet) Close() error {
	return f.original.Close()
}

// Name implements the ToolSet interface.
func (f *filteredToolSet) Name() string {
	return f.original.Name()
}

// NewIncludeToolNamesFilter creates a FilterFunc that includes only the
// specified tool names.
func NewIncludeToolNamesFilter(names ...string) FilterFunc {
	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		allowed[name] = struct{}{}
	}
	return func(_ context.Context, t Tool) bool {
		decl := t.Declaration()
		if decl == nil {
			return false
		}
		_, ok := allowed[decl.Name]
		return ok
	}
}

// NewExcludeToolNamesFilter creates a FilterFunc that excludes the
// specified tool names.
func NewExcludeToolNamesFilter(names ...string) FilterFunc {
	excluded := make(map[string]struct{}, len(names))
	for _, name := range names {
		excluded[name] = struct{}{}
	}
	return func(_ context.Context, t Tool) bool {
		decl := t.Declaration()
		if decl == nil {
			return false
		}
		_, ok := excluded[decl.Name]
		return !ok
	}
}
