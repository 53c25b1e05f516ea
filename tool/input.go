//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package tool

import "fmt"

// Input is the raw input to a tool run: either a bare string or a
// structured mapping of field names to values. Tools with exactly one
// declared input field accept the string form; all other tools require
// the structured form.
type Input struct {
	str        string
	fields     map[string]any
	structured bool
}

// StringInput wraps a bare string as tool input.
func StringInput(s string) Input {
	return Input{str: s}
}

// MapInput wraps a structured mapping as tool input.
func MapInput(fields map[string]any) Input {
	return Input{fields: fields, structured: true}
}

// IsString reports whether the input is the bare string form.
func (in Input) IsString() bool {
	return !in.structured
}

// Map returns the structured fields, nil for string input.
func (in Input) Map() map[string]any {
	return in.fields
}

// String returns the display form of the input as passed to lifecycle
// notifications.
func (in Input) String() string {
	if in.structured {
		return fmt.Sprintf("%v", in.fields)
	}
	return in.str
}
