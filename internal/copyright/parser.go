// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package copyright

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fieldLine matches a deb822 field line: a field name (printable characters
// other than colon or whitespace) followed by a colon and the rest of the
// line as the value.
var fieldLine = regexp.MustCompile(`^([!-9;-~]+):[ \t]?(.*)$`)

// ParseFile reads and parses one copyright file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read copyright file: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse parses copyright file content into a document. Parsing never fails:
// blocks that do not follow deb822 field syntax are kept as catch-all
// paragraphs so unstructured pre-DEP-5 files still yield usable text.
func Parse(content string) *Document {
	doc := &Document{}
	for _, block := range splitBlocks(content) {
		doc.Paragraphs = append(doc.Paragraphs, parseBlock(block))
	}
	return doc
}

// splitBlocks splits file content into paragraphs on blank lines, dropping
// deb822 comment lines.
func splitBlocks(content string) []string {
	var blocks []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, strings.TrimRight(line, "\r"))
	}
	flush()
	return blocks
}

// rawField is one parsed deb822 field: the lowercased name, the value on
// the field line itself, and any indented continuation lines.
type rawField struct {
	name          string
	value         string
	continuations []string
}

func parseBlock(block string) Paragraph {
	fields, ok := parseFields(block)
	if !ok {
		return &CatchAllParagraph{Text: block}
	}
	return classify(fields, block)
}

func parseFields(block string) ([]rawField, bool) {
	var fields []rawField
	for _, line := range strings.Split(block, "\n") {
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			if len(fields) == 0 {
				// Continuation before any field: not deb822.
				return nil, false
			}
			cont := strings.TrimPrefix(strings.TrimPrefix(line, " "), "\t")
			if strings.TrimSpace(cont) == "." {
				// A lone dot marks an intentionally blank line.
				cont = ""
			}
			last := &fields[len(fields)-1]
			last.continuations = append(last.continuations, cont)
			continue
		}
		m := fieldLine.FindStringSubmatch(line)
		if m == nil {
			return nil, false
		}
		fields = append(fields, rawField{
			name:  strings.ToLower(m[1]),
			value: strings.TrimSpace(m[2]),
		})
	}
	return fields, len(fields) > 0
}

func classify(fields []rawField, block string) Paragraph {
	byName := make(map[string]rawField, len(fields))
	for _, f := range fields {
		byName[f.name] = f
	}
	has := func(name string) bool {
		_, ok := byName[name]
		return ok
	}

	switch {
	case has("files"):
		return &FilesParagraph{
			Files:     byName["files"].value,
			Comment:   joinedValue(byName["comment"]),
			License:   licenseField(byName, has),
			Copyright: copyrightField(byName["copyright"]),
		}
	case has("format") || has("format-specification") || has("upstream-name") ||
		has("upstream-contact") || has("source") || has("copyright"):
		return &HeaderParagraph{
			Format:          byName["format"].value,
			UpstreamName:    byName["upstream-name"].value,
			UpstreamContact: byName["upstream-contact"].value,
			Source:          joinedValue(byName["source"]),
			Disclaimer:      joinedValue(byName["disclaimer"]),
			License:         licenseField(byName, has),
			Copyright:       copyrightField(byName["copyright"]),
		}
	case has("license"):
		return &LicenseParagraph{
			Comment: joinedValue(byName["comment"]),
			License: licenseField(byName, has),
		}
	default:
		// Fields we do not recognize; keep the raw text for detection.
		return &CatchAllParagraph{Text: block}
	}
}

// licenseField builds the license field: the first line is the short name,
// the continuation lines are the license text.
func licenseField(byName map[string]rawField, has func(string) bool) *LicenseField {
	if !has("license") {
		return nil
	}
	f := byName["license"]
	return &LicenseField{
		Name: f.value,
		Text: strings.TrimRight(strings.Join(f.continuations, "\n"), "\n"),
	}
}

// copyrightField collects the non-blank attribution lines of the Copyright
// field. Statements are NFC-normalized so the same author name always
// compares equal regardless of the file's unicode composition.
func copyrightField(f rawField) CopyrightField {
	var statements []string
	lines := append([]string{f.value}, f.continuations...)
	for _, line := range lines {
		line = strings.TrimSpace(norm.NFC.String(line))
		if line != "" {
			statements = append(statements, line)
		}
	}
	return CopyrightField{Statements: statements}
}

func joinedValue(f rawField) string {
	parts := append([]string{f.value}, f.continuations...)
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
