// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package observability emits per-operation timing and outcome records as
// JSON lines, used by the scanner and detector when running with --debug.
package observability

import (
	"encoding/json"
	"io"
	"time"
)

// StandardObserver implements observability for all components
type StandardObserver struct {
	level  Level
	writer io.Writer
}

// Level controls how much the observer emits.
type Level int

const (
	LevelOff     Level = 0
	LevelMetrics Level = 1
	LevelDebug   Level = 2
)

// NewStandardObserver creates observability component
func NewStandardObserver(level Level, writer io.Writer) *StandardObserver {
	return &StandardObserver{
		level:  level,
		writer: writer,
	}
}

// StartTiming returns a function to complete timing for one operation.
func (o *StandardObserver) StartTiming(component, operation, filePath string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		duration := time.Since(start)

		o.LogOperation(OperationData{
			Component:  component,
			Operation:  operation,
			FilePath:   filePath,
			DurationMs: duration.Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// LogOperation logs one operation record.
func (o *StandardObserver) LogOperation(data OperationData) {
	if o == nil || o.level == LevelOff {
		return
	}
	data.Timestamp = time.Now().Format(time.RFC3339)

	// Only emit JSON lines in debug mode
	if o.level == LevelDebug {
		json.NewEncoder(o.writer).Encode(data)
	}
}

// OperationData is one timing/outcome record.
type OperationData struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	Timestamp  string                 `json:"timestamp"`
	FilePath   string                 `json:"file_path,omitempty"`
	DurationMs int64                  `json:"duration_ms,omitempty"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}
