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
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Schema is a JSON-schema style description of a tool's accepted input
// fields, types and defaults.
type Schema struct {
	// Type is the JSON schema type: "object", "string", "integer",
	// "number", "boolean" or "array".
	Type string `json:"type,omitempty"`
	// Description describes the field.
	Description string `json:"description,omitempty"`
	// Properties maps field names to their schemas for object types.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Required lists the names of mandatory fields.
	Required []string `json:"required,omitempty"`
	// Items is the element schema for array types.
	Items *Schema `json:"items,omitempty"`
	// Enum restricts the field to a fixed set of values.
	Enum []any `json:"enum,omitempty"`
	// Default is the value assumed when the field is absent.
	Default any `json:"default,omitempty"`
	// AdditionalProperties is the value schema for map-like objects.
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`
	// Ref references a schema definition in Defs.
	Ref string `json:"$ref,omitempty"`
	// Defs holds reusable definitions for recursive types.
	Defs map[string]*Schema `json:"$defs,omitempty"`
}

// SingleField returns the name of the schema's only property. It reports
// false when the schema declares zero or multiple properties; only tools
// with exactly one declared field accept a bare string as their input.
func (s *Schema) SingleField() (string, bool) {
	if s == nil || len(s.Properties) != 1 {
		return "", false
	}
	for name := range s.Properties {
		return name, true
	}
	return "", false
}

// Validate checks a structured input mapping against the schema: every
// required field must be present and every known field must match its
// declared type. Unknown keys are ignored.
func (s *Schema) Validate(args map[string]any) error {
	if s == nil {
		return nil
	}
	for _, name := range s.Required {
		if _, ok := args[name]; !ok {
			return fmt.Errorf("missing required field %q", name)
		}
	}
	for name, value := range args {
		prop, ok := s.Properties[name]
		if !ok {
			continue
		}
		if err := prop.validateValue(name, value); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDefaults returns a copy of args with schema defaults filled in for
// absent fields. The input mapping is not modified.
func (s *Schema) ApplyDefaults(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	if s == nil {
		return out
	}
	for name, prop := range s.Properties {
		if prop == nil || prop.Default == nil {
			continue
		}
		if _, ok := out[name]; !ok {
			out[name] = prop.Default
		}
	}
	return out
}

func (s *Schema) validateValue(name string, value any) error {
	if s == nil || value == nil {
		return nil
	}
	switch s.Type {
	case "string":
		if _, ok := value.(string); !ok {
			return fmt.Errorf("field %q: expected string, got %T", name, value)
		}
	case "integer":
		if !isInteger(value) {
			return fmt.Errorf("field %q: expected integer, got %T", name, value)
		}
	case "number":
		if !isNumber(value) {
			return fmt.Errorf("field %q: expected number, got %T", name, value)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("field %q: expected boolean, got %T", name, value)
		}
	case "array":
		kind := reflect.ValueOf(value).Kind()
		if kind != reflect.Slice && kind != reflect.Array {
			return fmt.Errorf("field %q: expected array, got %T", name, value)
		}
	case "object":
		kind := reflect.ValueOf(value).Kind()
		if kind != reflect.Map && kind != reflect.Struct {
			return fmt.Errorf("field %q: expected object, got %T", name, value)
		}
	}
	if len(s.Enum) > 0 && !enumContains(s.Enum, value) {
		return fmt.Errorf("field %q: value %v is not one of the allowed values", name, value)
	}
	return nil
}

// isInteger accepts Go integer kinds plus integral floats and json.Number,
// since structured input frequently round-trips through encoding/json.
func isInteger(value any) bool {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return float64(v) == math.Trunc(float64(v))
	case float64:
		return v == math.Trunc(v)
	case json.Number:
		_, err := v.Int64()
		return err == nil
	default:
		return false
	}
}

func isNumber(value any) bool {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	case json.Number:
		_, err := v.Float64()
		return err == nil
	default:
		return false
	}
}

// enumContains compares with numeric normalization so that int and float64
// renditions of the same enum value match.
func enumContains(enum []any, value any) bool {
	for _, allowed := range enum {
		if reflect.DeepEqual(allowed, value) {
			return true
		}
		if isNumber(allowed) && isNumber(value) && toFloat(allowed) == toFloat(value) {
			return true
		}
	}
	return false
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return math.NaN()
	}
}
