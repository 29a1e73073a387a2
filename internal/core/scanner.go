// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"copyright-scan/internal/aliases"
	"copyright-scan/internal/detector"
	"copyright-scan/internal/normalize"
	"copyright-scan/internal/observability"
)

// copyrightFileName is the file name selected when scanning directories,
// as installed under usr/share/doc/<package>/.
const copyrightFileName = "copyright"

// ScanConfig holds configuration for scanning operations.
type ScanConfig struct {
	// Path is a copyright file, or a directory to search for copyright
	// files.
	Path string

	Recursive bool

	// IncludePackaging keeps debian/* paragraphs in the results.
	IncludePackaging bool

	// NoSimplify disables canonical simplification of the combined
	// detected expression.
	NoSimplify bool

	// AliasFile overrides the embedded declared-to-detected table.
	AliasFile string

	Verbose bool
	Debug   bool
}

// ScanResult holds the results of a scanning operation.
type ScanResult struct {
	Results        []normalize.Result
	ProcessedFiles int
	FailedFiles    int
}

// ScanPath normalizes every copyright file under the configured path.
// Per-file failures are tolerated and counted; configuration errors (an
// unreadable alias file, a missing path) abort the scan.
func ScanPath(scanConfig ScanConfig) (*ScanResult, error) {
	level := observability.LevelMetrics
	if scanConfig.Debug {
		level = observability.LevelDebug
	}
	observer := observability.NewStandardObserver(level, os.Stderr)

	opts := normalize.DefaultOptions()
	opts.SkipDebianPackaging = !scanConfig.IncludePackaging
	opts.SimplifyLicenses = !scanConfig.NoSimplify

	if scanConfig.AliasFile != "" {
		table, err := aliases.Load(scanConfig.AliasFile)
		if err != nil {
			return nil, err
		}
		opts.Aliases = table
	}

	d := detector.NewDetector()
	d.SetObserver(observer)
	opts.Detector = d

	files, err := collectFiles(scanConfig.Path, scanConfig.Recursive)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{}
	for _, file := range files {
		finishTiming := observer.StartTiming("scanner", "normalize_file", file)

		res, err := normalize.NormalizeFile(file, opts)
		if err != nil {
			result.FailedFiles++
			if scanConfig.Verbose {
				fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", file, err)
			}
			finishTiming(false, nil)
			continue
		}

		result.Results = append(result.Results, res)
		result.ProcessedFiles++
		finishTiming(true, map[string]interface{}{
			"detected_license": res.DetectedLicense,
		})
	}

	return result, nil
}

// collectFiles resolves the scan path to the list of copyright files to
// normalize, in deterministic order.
func collectFiles(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access scan path: %w", err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	if recursive {
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && d.Name() == copyrightFileName {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		return files, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && entry.Name() == copyrightFileName {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	return files, nil
}
