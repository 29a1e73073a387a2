// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"fmt"

	"copyright-scan/internal/formatters"
	"copyright-scan/internal/normalize"

	"gopkg.in/yaml.v3"
)

// Formatter implements YAML output formatting
type Formatter struct{}

// NewFormatter creates a new YAML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "yaml"
}

func (f *Formatter) Description() string {
	return "YAML format output, same structure as JSON"
}

func (f *Formatter) FileExtension() string {
	return ".yaml"
}

type response struct {
	Results        []normalize.Result `yaml:"results"`
	ProcessedFiles int                `yaml:"processed_files"`
}

func (f *Formatter) Format(results []normalize.Result, options formatters.FormatterOptions) (string, error) {
	if results == nil {
		results = []normalize.Result{}
	}
	data, err := yaml.Marshal(response{
		Results:        results,
		ProcessedFiles: len(results),
	})
	if err != nil {
		return "", fmt.Errorf("error formatting YAML: %w", err)
	}
	return string(data), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
