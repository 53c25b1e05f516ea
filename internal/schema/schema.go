//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package schema infers tool input/output schemas from Go types via
// reflection.
package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"trpc.group/trpc-go/trpc-tool-go/log"
	"trpc.group/trpc-go/trpc-tool-go/tool"
)

// Generate derives a JSON schema from a reflect.Type. Struct fields map to
// schema properties one-to-one: exported fields only, named by their JSON
// tag, with fields tagged json:"-" stripped. Non-pointer fields without
// omitempty and without a declared default are required.
func Generate(t reflect.Type) *tool.Schema {
	g := &generator{
		visited: make(map[reflect.Type]string),
		defs:    make(map[string]*tool.Schema),
	}
	s := g.typeSchema(t, true)
	if len(g.defs) > 0 {
		s.Defs = g.defs
	}
	return s
}

// generator tracks visited types so that recursive structs become $defs
// references instead of infinite expansions.
type generator struct {
	visited map[reflect.Type]string
	defs    map[string]*tool.Schema
}

func (g *generator) typeSchema(t reflect.Type, isRoot bool) *tool.Schema {
	switch t.Kind() {
	case reflect.Ptr:
		return g.typeSchema(t.Elem(), isRoot)
	case reflect.Struct:
		return g.structSchema(t, isRoot)
	case reflect.String:
		return &tool.Schema{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &tool.Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &tool.Schema{Type: "number"}
	case reflect.Bool:
		return &tool.Schema{Type: "boolean"}
	case reflect.Slice, reflect.Array:
		return &tool.Schema{
			Type:  "array",
			Items: g.typeSchema(t.Elem(), false),
		}
	case reflect.Map:
		return &tool.Schema{
			Type:                 "object",
			AdditionalProperties: g.typeSchema(t.Elem(), false),
		}
	default:
		return &tool.Schema{Type: "object"}
	}
}

// structSchema builds an object schema for a struct type. Non-recursive
// structs are inlined; recursive structs are stored under $defs and
// referenced, with the full schema kept at the root.
func (g *generator) structSchema(t reflect.Type, isRoot bool) *tool.Schema {
	if name, ok := g.visited[t]; ok {
		return &tool.Schema{Ref: "#/$defs/" + name}
	}
	name := defName(t)
	recursive := hasRecursiveFields(t)
	if recursive {
		g.visited[t] = name
	}

	s := &tool.Schema{
		Type:       "object",
		Properties: make(map[string]*tool.Schema),
	}
	var required []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldName, omitEmpty, skip := jsonFieldName(field)
		if skip {
			continue
		}
		fieldSchema := g.typeSchema(field.Type, false)
		requiredByTag := false
		if fieldSchema.Ref == "" {
			var err error
			requiredByTag, err = applyTag(field.Type, field.Tag, fieldSchema)
			if err != nil {
				log.Errorf("schema tag for field %s: %v", fieldName, err)
			}
		}
		// A declared default makes the field optional unless the tag insists.
		optional := field.Type.Kind() == reflect.Ptr || omitEmpty || fieldSchema.Default != nil
		if !optional || requiredByTag {
			required = append(required, fieldName)
		}
		s.Properties[fieldName] = fieldSchema
	}
	if len(required) > 0 {
		s.Required = required
	}

	if recursive {
		g.defs[name] = &tool.Schema{
			Type:       s.Type,
			Properties: s.Properties,
			Required:   s.Required,
		}
		if !isRoot {
			return &tool.Schema{Ref: "#/$defs/" + name}
		}
	}
	return s
}

// jsonFieldName resolves a struct field's JSON name and whether it is
// omitempty or excluded entirely.
func jsonFieldName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	name = field.Name
	jsonTag := field.Tag.Get("json")
	if jsonTag == "-" {
		return "", false, true
	}
	if jsonTag == "" {
		return name, false, false
	}
	if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
		if jsonTag[:commaIdx] != "" {
			name = jsonTag[:commaIdx]
		}
		omitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
	} else {
		name = jsonTag
	}
	return name, omitEmpty, false
}

// applyTag parses the jsonschema struct tag and applies its settings.
// Supported entries: description=..., enum=... (repeatable), default=...,
// and the bare required marker. Enum and default values are coerced to the
// field's own type.
func applyTag(fieldType reflect.Type, tag reflect.StructTag, s *tool.Schema) (requiredByTag bool, err error) {
	raw := tag.Get("jsonschema")
	if raw == "" {
		return false, nil
	}
	for _, item := range strings.Split(raw, ",") {
		kv := strings.SplitN(item, "=", 2)
		switch {
		case len(kv) == 2 && kv[0] == "description":
			s.Description = kv[1]
		case len(kv) == 2 && kv[0] == "enum":
			v, convErr := coerceScalar(fieldType, kv[1])
			if convErr != nil {
				return requiredByTag, fmt.Errorf("enum value %q: %w", kv[1], convErr)
			}
			s.Enum = append(s.Enum, v)
		case len(kv) == 2 && kv[0] == "default":
			v, convErr := coerceScalar(fieldType, kv[1])
			if convErr != nil {
				return requiredByTag, fmt.Errorf("default value %q: %w", kv[1], convErr)
			}
			s.Default = v
		case len(kv) == 1 && kv[0] == "required":
			requiredByTag = true
		}
	}
	return requiredByTag, nil
}

// coerceScalar converts a tag literal to the field's Go type. Only scalar
// kinds are supported.
func coerceScalar(fieldType reflect.Type, value string) (any, error) {
	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse as int64: %w", err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse as float64: %w", err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse as bool: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported field type %v", fieldType)
	}
}

// defName creates a definition name for a type used in $defs.
func defName(t reflect.Type) string {
	if t.Name() != "" {
		return strings.ToLower(t.Name())
	}
	return "anonymousStruct"
}

// hasRecursiveFields reports whether a struct type references itself,
// directly or through pointers, slices or nested structs.
func hasRecursiveFields(t reflect.Type) bool {
	return checkRecursion(t, t, make(map[reflect.Type]bool))
}

func checkRecursion(target, current reflect.Type, visited map[reflect.Type]bool) bool {
	if visited[current] {
		return false
	}
	visited[current] = true

	switch current.Kind() {
	case reflect.Struct:
		for i := 0; i < current.NumField(); i++ {
			field := current.Field(i)
			if !field.IsExported() {
				continue
			}
			ft := field.Type
			for ft.Kind() == reflect.Ptr || ft.Kind() == reflect.Slice || ft.Kind() == reflect.Array {
				ft = ft.Elem()
			}
			if ft == target {
				return true
			}
			if ft.Kind() == reflect.Struct && checkRecursion(target, ft, visited) {
				return true
			}
		}
	case reflect.Slice, reflect.Array, reflect.Ptr:
		et := current.Elem()
		for et.Kind() == reflect.Ptr {
			et = et.Elem()
		}
		if et == target {
			return true
		}
		if et.Kind() == reflect.Struct && checkRecursion(target, et, visited) {
			return true
		}
	}
	return false
}
