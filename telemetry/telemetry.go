//
// Tencent is pleased to support the open source community by making trpc-tool-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tool-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry provides an OpenTelemetry-backed lifecycle callback
// handler: one span per tool run plus run count and duration metrics.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-tool-go/log"
	"trpc.group/trpc-go/trpc-tool-go/tool"
)

// Telemetry constants.
const (
	InstrumentName = "trpc.tool.go"

	SpanNamePrefixExecuteTool = "execute_tool"

	OperationExecuteTool = "execute_tool"
)

// Semantic convention attribute keys.
const (
	KeyOperationName = "gen_ai.operation.name"
	KeyToolName      = "gen_ai.tool.name"
	KeyToolInput     = "gen_ai.tool.input"
	KeyToolOutput    = "gen_ai.tool.output"
	KeyRunID         = "gen_ai.tool.call.id"
	KeyErrorType     = "error.type"
)

// Tracer is the tracer used for tool run spans. It resolves through the
// global tracer provider, so it is a no-op until one is installed.
var Tracer = otel.Tracer(InstrumentName)

// Handler bridges tool lifecycle callbacks to OpenTelemetry. A span is
// opened on tool-start and closed on tool-end or tool-error; run count and
// duration are recorded against the global meter provider.
type Handler struct {
	mu   sync.Mutex
	runs map[string]*runState

	runCounter  metric.Int64Counter
	runDuration metric.Float64Histogram
}

type runState struct {
	span  trace.Span
	name  string
	start time.Time
}

// NewHandler creates a telemetry handler. Instrument creation failures are
// logged and the affected instrument is skipped; the handler stays usable.
func NewHandler() *Handler {
	h := &Handler{runs: make(map[string]*runState)}
	meter := otel.Meter(InstrumentName)
	var err error
	if h.runCounter, err = meter.Int64Counter(
		"tool.run.count",
		metric.WithDescription("Total number of tool runs"),
		metric.WithUnit("1"),
	); err != nil {
		log.Errorf("telemetry: create tool run counter: %v", err)
	}
	if h.runDuration, err = meter.Float64Histogram(
		"tool.run.duration",
		metric.WithDescription("Duration of tool runs"),
		metric.WithUnit("s"),
	); err != nil {
		log.Errorf("telemetry: create tool run duration histogram: %v", err)
	}
	return h
}

// Callbacks returns a callback set that reports every tool run to
// OpenTelemetry. It can be installed per tool or passed per call.
func (h *Handler) Callbacks() *tool.Callbacks {
	return tool.NewCallbacks().
		RegisterOnToolStart(h.onStart).
		RegisterOnToolEnd(h.onEnd).
		RegisterOnToolError(h.onError)
}

func (h *Handler) onStart(ctx context.Context, args *tool.StartArgs) error {
	_, span := Tracer.Start(ctx, SpanNamePrefixExecuteTool+" "+args.ToolName)
	span.SetAttributes(
		attribute.String(KeyOperationName, OperationExecuteTool),
		attribute.String(KeyToolName, args.ToolName),
		attribute.String(KeyToolInput, args.Input),
		attribute.String(KeyRunID, args.RunID),
	)
	h.mu.Lock()
	h.runs[args.RunID] = &runState{span: span, name: args.ToolName, start: time.Now()}
	h.mu.Unlock()
	return nil
}

func (h *Handler) onEnd(ctx context.Context, args *tool.EndArgs) error {
	state := h.takeRun(args.RunID)
	if state == nil {
		return nil
	}
	state.span.SetAttributes(attribute.String(KeyToolOutput, args.Output))
	state.span.End()
	h.record(ctx, state, nil)
	return nil
}

func (h *Handler) onError(ctx context.Context, args *tool.ErrorArgs) error {
	state := h.takeRun(args.RunID)
	if state == nil {
		return nil
	}
	state.span.RecordError(args.Err)
	state.span.SetStatus(codes.Error, args.Err.Error())
	state.span.End()
	h.record(ctx, state, args.Err)
	return nil
}

func (h *Handler) takeRun(runID string) *runState {
	h.mu.Lock()
	defer h.mu.Unlock()
	state := h.runs[runID]
	delete(h.runs, runID)
	return state
}

func (h *Handler) record(ctx context.Context, state *runState, runErr error) {
	attrs := []attribute.KeyValue{
		attribute.String(KeyOperationName, OperationExecuteTool),
		attribute.String(KeyToolName, state.name),
	}
	if runErr != nil {
		attrs = append(attrs, attribute.String(KeyErrorType, "execution_error"))
	}
	if h.runCounter != nil {
		h.runCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if h.runDuration != nil {
		h.runDuration.Record(ctx, time.Since(state.start).Seconds(), metric.WithAttributes(attrs...))
	}
}
