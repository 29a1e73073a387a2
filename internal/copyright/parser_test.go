// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package copyright

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const dep5Sample = `Format: https://www.debian.org/doc/packaging-manuals/copyright-format/1.0/
Upstream-Name: example
Upstream-Contact: Jane Maintainer <jane@example.org>
Source: https://example.org/source

Files: *
Copyright: 2010-2015 Jane Maintainer
           2016 Example Contributors
License: Expat

Files: debian/*
Copyright: 2015 Debian Packager
License: GPL-2+

License: Expat
 Permission is hereby granted, free of charge, to any person obtaining a
 copy of this software and associated documentation files.
`

func TestParse_DEP5(t *testing.T) {
	doc := Parse(dep5Sample)
	if len(doc.Paragraphs) != 4 {
		t.Fatalf("expected 4 paragraphs, got %d", len(doc.Paragraphs))
	}

	header, ok := doc.Paragraphs[0].(*HeaderParagraph)
	if !ok {
		t.Fatalf("paragraph 0: expected header, got %T", doc.Paragraphs[0])
	}
	if header.UpstreamName != "example" {
		t.Errorf("UpstreamName = %q", header.UpstreamName)
	}
	if !strings.Contains(header.Format, "copyright-format/1.0") {
		t.Errorf("Format = %q", header.Format)
	}

	files, ok := doc.Paragraphs[1].(*FilesParagraph)
	if !ok {
		t.Fatalf("paragraph 1: expected files, got %T", doc.Paragraphs[1])
	}
	if files.Files != "*" {
		t.Errorf("Files = %q", files.Files)
	}
	if files.License == nil || files.License.Name != "Expat" {
		t.Errorf("License = %+v", files.License)
	}
	want := []string{"2010-2015 Jane Maintainer", "2016 Example Contributors"}
	if len(files.Copyright.Statements) != len(want) {
		t.Fatalf("Statements = %v", files.Copyright.Statements)
	}
	for i, s := range want {
		if files.Copyright.Statements[i] != s {
			t.Errorf("Statements[%d] = %q, want %q", i, files.Copyright.Statements[i], s)
		}
	}

	packaging, ok := doc.Paragraphs[2].(*FilesParagraph)
	if !ok {
		t.Fatalf("paragraph 2: expected files, got %T", doc.Paragraphs[2])
	}
	if packaging.Files != "debian/*" {
		t.Errorf("Files = %q", packaging.Files)
	}

	lic, ok := doc.Paragraphs[3].(*LicenseParagraph)
	if !ok {
		t.Fatalf("paragraph 3: expected license, got %T", doc.Paragraphs[3])
	}
	if lic.License.Name != "Expat" {
		t.Errorf("License.Name = %q", lic.License.Name)
	}
	if !strings.Contains(lic.License.Text, "Permission is hereby granted") {
		t.Errorf("License.Text = %q", lic.License.Text)
	}
}

func TestParse_UnstructuredBecomesCatchAll(t *testing.T) {
	content := "This package was debianized by Someone <someone@debian.org>.\n" +
		"It was downloaded from https://example.org\n\n" +
		"The software is licensed under the MIT license.\n"
	doc := Parse(content)
	if len(doc.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(doc.Paragraphs))
	}
	for i, p := range doc.Paragraphs {
		ca, ok := p.(*CatchAllParagraph)
		if !ok {
			t.Fatalf("paragraph %d: expected catch-all, got %T", i, p)
		}
		if ca.Dumps() == "" {
			t.Errorf("paragraph %d: empty text", i)
		}
	}
}

func TestParse_DotMarksBlankLine(t *testing.T) {
	content := "License: MIT\n first line\n .\n second line\n"
	doc := Parse(content)
	lic, ok := doc.Paragraphs[0].(*LicenseParagraph)
	if !ok {
		t.Fatalf("expected license paragraph, got %T", doc.Paragraphs[0])
	}
	if lic.License.Text != "first line\n\nsecond line" {
		t.Errorf("Text = %q", lic.License.Text)
	}
}

func TestParse_CommentLinesSkipped(t *testing.T) {
	content := "# vim: ft=debcopyright\nFiles: *\nLicense: MIT\n"
	doc := Parse(content)
	if _, ok := doc.Paragraphs[0].(*FilesParagraph); !ok {
		t.Fatalf("expected files paragraph, got %T", doc.Paragraphs[0])
	}
}

func TestParse_FieldNamesCaseInsensitive(t *testing.T) {
	content := "FILES: *\nLICENSE: MIT\n"
	doc := Parse(content)
	files, ok := doc.Paragraphs[0].(*FilesParagraph)
	if !ok {
		t.Fatalf("expected files paragraph, got %T", doc.Paragraphs[0])
	}
	if files.License.Name != "MIT" {
		t.Errorf("License.Name = %q", files.License.Name)
	}
}

func TestParse_NFCNormalizesStatements(t *testing.T) {
	// "é" written as "e" + combining acute accent must compare equal to
	// the precomposed form after parsing.
	decomposed := "Copyright: 2001 Re\u0301my Author\n"
	doc := Parse(decomposed)
	header, ok := doc.Paragraphs[0].(*HeaderParagraph)
	if !ok {
		t.Fatalf("expected header paragraph, got %T", doc.Paragraphs[0])
	}
	if got := header.Copyright.Statements[0]; got != "2001 R\u00e9my Author" {
		t.Errorf("statement = %q, want precomposed form", got)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copyright")
	if err := os.WriteFile(path, []byte(dep5Sample), 0600); err != nil {
		t.Fatalf("failed to write sample: %v", err)
	}
	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Paragraphs) != 4 {
		t.Errorf("expected 4 paragraphs, got %d", len(doc.Paragraphs))
	}
}

func TestParseFile_Missing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestClone_DoesNotAliasOriginal(t *testing.T) {
	doc := Parse(dep5Sample)
	files := doc.Paragraphs[1].(*FilesParagraph)

	clone := files.Clone().(*FilesParagraph)
	clone.License.Name = "changed"
	clone.Copyright.Statements[0] = "changed"

	if files.License.Name == "changed" {
		t.Error("clone aliases the original license field")
	}
	if files.Copyright.Statements[0] == "changed" {
		t.Error("clone aliases the original statements")
	}
}
