// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package aliases maps common declared-license spellings found in Debian
// copyright files to pre-resolved license expressions. The mapping was
// derived from a large collection of Debian and Ubuntu copyright files.
package aliases

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed debian_licenses.txt
var defaultData []byte

// Table is an immutable mapping from a lowercase declared-license string
// to a detected license-expression string.
type Table struct {
	declaredToDetected map[string]string
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table built from the embedded data file. It is built
// once per process and safe for concurrent use.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = parse(bytes.NewReader(defaultData))
	})
	return defaultTable
}

// Load builds a table from a tab-separated data file on disk. A missing or
// unreadable file is a configuration error and is returned to the caller;
// there is no silent fallback to an empty table.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load license alias table: %w", err)
	}
	defer f.Close()
	return parse(f), nil
}

// parse reads one record per line, two fields separated by the first tab:
// declared string, then detected expression. Lines with a blank or missing
// second field are ignored. A duplicated declared string keeps the last
// detected expression seen.
func parse(r io.Reader) *Table {
	m := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		declared, detected, _ := strings.Cut(line, "\t")
		detected = strings.TrimSpace(detected)
		if detected == "" {
			continue
		}
		m[strings.TrimSpace(declared)] = detected
	}
	return &Table{declaredToDetected: m}
}

// Get returns the detected expression for a lowercase declared string.
// Callers are expected to lowercase before lookup; the data file itself is
// all-lowercase.
func (t *Table) Get(declaredLower string) (string, bool) {
	detected, ok := t.declaredToDetected[declaredLower]
	return detected, ok
}

// Len returns the number of declared strings in the table.
func (t *Table) Len() int {
	return len(t.declaredToDetected)
}
