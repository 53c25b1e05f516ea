//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

package schema

import (
	"reflect"
	"strings"
)

// Signature renders a display signature for a tool's input type, used to
// prefix tool descriptions, e.g. "(a: int, b: int)" for
// struct{ A int `json:"a"`; B int `json:"b"` }. Non-struct types render as
// their Go type name.
func Signature(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "()"
	}
	if t.Kind() != reflect.Struct {
		return "(" + t.String() + ")"
	}
	var params []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, skip := jsonFieldName(field)
		if skip {
			continue
		}
		params = append(params, name+": "+field.Type.String())
	}
	return "(" + strings.Join(params, ", ") + ")"
}
