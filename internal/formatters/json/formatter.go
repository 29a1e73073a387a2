// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"copyright-scan/internal/formatters"
	"copyright-scan/internal/normalize"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

// response is the document shape shared with the yaml formatter.
type response struct {
	Results        []normalize.Result `json:"results" yaml:"results"`
	ProcessedFiles int                `json:"processed_files" yaml:"processed_files"`
}

func (f *Formatter) Format(results []normalize.Result, options formatters.FormatterOptions) (string, error) {
	if results == nil {
		results = []normalize.Result{}
	}
	data, err := json.MarshalIndent(response{
		Results:        results,
		ProcessedFiles: len(results),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
