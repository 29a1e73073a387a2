// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package copyright parses Debian copyright files into an ordered sequence
// of typed paragraphs. It handles DEP-5 machine-readable files, pre-DEP-5
// mostly machine-readable files and fully unstructured files (which come
// back as catch-all paragraphs).
package copyright

import "strings"

// Document is an ordered sequence of paragraphs parsed from one copyright
// file.
type Document struct {
	Paragraphs []Paragraph
}

// Paragraph is one structured record block within a copyright file. The
// concrete variants are HeaderParagraph, FilesParagraph, LicenseParagraph
// and CatchAllParagraph; consumers dispatch with a type switch.
type Paragraph interface {
	// Clone returns a deep copy so callers can rewrite paragraph fields
	// without mutating the original document.
	Clone() Paragraph

	isParagraph()
}

// LicenseField holds the License field of a paragraph: the first line is a
// short license name, indented continuation lines are the license text.
type LicenseField struct {
	Name string
	Text string
}

func (l *LicenseField) clone() *LicenseField {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

// CopyrightField holds the copyright attribution lines of a paragraph.
type CopyrightField struct {
	Statements []string
}

func (c CopyrightField) clone() CopyrightField {
	return CopyrightField{Statements: append([]string(nil), c.Statements...)}
}

// HeaderParagraph is the first paragraph of a DEP-5 file, describing the
// source package as a whole.
type HeaderParagraph struct {
	Format          string
	UpstreamName    string
	UpstreamContact string
	Source          string
	Disclaimer      string
	License         *LicenseField
	Copyright       CopyrightField
}

func (p *HeaderParagraph) isParagraph() {}

func (p *HeaderParagraph) Clone() Paragraph {
	c := *p
	c.License = p.License.clone()
	c.Copyright = p.Copyright.clone()
	return &c
}

// FilesParagraph covers a set of file patterns with one license and one
// set of copyright holders.
type FilesParagraph struct {
	Files     string
	Comment   string
	License   *LicenseField
	Copyright CopyrightField
}

func (p *FilesParagraph) isParagraph() {}

func (p *FilesParagraph) Clone() Paragraph {
	c := *p
	c.License = p.License.clone()
	c.Copyright = p.Copyright.clone()
	return &c
}

// LicenseParagraph is a standalone license paragraph holding the full text
// for a license name referenced from files paragraphs.
type LicenseParagraph struct {
	Comment string
	License *LicenseField
}

func (p *LicenseParagraph) isParagraph() {}

func (p *LicenseParagraph) Clone() Paragraph {
	c := *p
	c.License = p.License.clone()
	return &c
}

// CatchAllParagraph holds an unstructured block of text that could not be
// parsed into fields, as found in pre-DEP-5 copyright files.
type CatchAllParagraph struct {
	Text string
}

func (p *CatchAllParagraph) isParagraph() {}

func (p *CatchAllParagraph) Clone() Paragraph {
	c := *p
	return &c
}

// Dumps renders the paragraph's full text.
func (p *CatchAllParagraph) Dumps() string {
	return strings.TrimSpace(p.Text)
}
