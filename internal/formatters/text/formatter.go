// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"copyright-scan/internal/formatters"
	"copyright-scan/internal/normalize"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"path":     color.New(color.FgWhite, color.Bold),
			"label":    color.New(color.FgCyan),
			"known":    color.New(color.FgGreen),
			"unknown":  color.New(color.FgYellow),
			"declared": color.New(color.FgWhite),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(results []normalize.Result, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	if len(results) == 0 {
		return "No copyright files found.\n", nil
	}

	var sb strings.Builder
	for i, result := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		f.writeResult(&sb, result, options)
	}

	sb.WriteString(fmt.Sprintf("\nProcessed %d copyright file(s).\n", len(results)))
	return sb.String(), nil
}

func (f *Formatter) writeResult(sb *strings.Builder, result normalize.Result, options formatters.FormatterOptions) {
	if result.Path != "" {
		sb.WriteString(f.colors["path"].Sprint(result.Path) + "\n")
	}

	detectedColor := f.colors["known"]
	if result.DetectedLicense == "unknown" {
		detectedColor = f.colors["unknown"]
	}
	sb.WriteString(fmt.Sprintf("  %s %s\n",
		f.colors["label"].Sprint("Detected license:"),
		detectedColor.Sprint(result.DetectedLicense)))

	if result.DeclaredLicense != "" {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			f.colors["label"].Sprint("Declared license:"),
			f.colors["declared"].Sprint(joinLines(result.DeclaredLicense))))
	}

	if !options.Verbose {
		return
	}
	if result.Copyrights != "" {
		sb.WriteString("  " + f.colors["label"].Sprint("Copyrights:") + "\n")
		for _, line := range strings.Split(result.Copyrights, "\n") {
			sb.WriteString("    " + line + "\n")
		}
	}
}

// joinLines folds a newline-joined declared license list onto one line.
func joinLines(s string) string {
	return strings.Join(strings.Split(s, "\n"), "; ")
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
