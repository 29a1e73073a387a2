// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package normalize reconciles the license and copyright signals of one
// parsed Debian copyright file into three strings: the declared license
// labels, one detected license expression, and the deduplicated copyright
// statements.
package normalize

import (
	"fmt"
	"strings"

	"copyright-scan/internal/aliases"
	"copyright-scan/internal/copyright"
	"copyright-scan/internal/debpkg"
	"copyright-scan/internal/detector"
	"copyright-scan/internal/licensing"
)

// unknownLicense is the sentinel detected expression used when no license
// could be detected at all, or when a paragraph carries text that the
// detector does not recognize.
const unknownLicense = "unknown"

// Options controls one normalization run.
type Options struct {
	// SkipDebianPackaging excludes paragraphs that cover only the debian/*
	// packaging files, which describe the packaging wrapper rather than the
	// upstream software.
	SkipDebianPackaging bool

	// SimplifyLicenses reduces the combined detected expression to its
	// canonical simplified form.
	SimplifyLicenses bool

	// Aliases is the declared-to-detected lookup table. When nil, the
	// embedded table is used.
	Aliases *aliases.Table

	// Detector is the free-text license detector. When nil, the built-in
	// detector is used.
	Detector *detector.Detector
}

// DefaultOptions returns the options used by the CLI unless overridden.
func DefaultOptions() Options {
	return Options{
		SkipDebianPackaging: true,
		SimplifyLicenses:    true,
	}
}

func (o *Options) table() *aliases.Table {
	if o.Aliases != nil {
		return o.Aliases
	}
	return aliases.Default()
}

func (o *Options) detector() *detector.Detector {
	if o.Detector != nil {
		return o.Detector
	}
	return defaultDetector
}

var defaultDetector = detector.NewDetector()

// Result holds the three normalized strings for one copyright file.
type Result struct {
	// Path of the copyright file, set by NormalizeFile and the scanner.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// DeclaredLicense is every distinct declared license label, in document
	// order, newline-joined.
	DeclaredLicense string `json:"declared_license" yaml:"declared_license"`

	// DetectedLicense is the single combined license expression, or
	// "unknown" when nothing was detected.
	DetectedLicense string `json:"detected_license" yaml:"detected_license"`

	// Copyrights is every distinct copyright statement, in document order,
	// newline-joined.
	Copyrights string `json:"copyrights" yaml:"copyrights"`
}

// Normalize computes the normalized license and copyright strings for one
// parsed copyright document. The document itself is not modified; field
// repair happens on a copy.
func Normalize(doc *copyright.Document, opts Options) Result {
	doc = fixCopyright(doc)

	var declaredList, detectedList, copyrightList []string

	for _, paragraph := range doc.Paragraphs {
		if opts.SkipDebianPackaging && isDebianPackaging(paragraph) {
			// Packaging license and copyrights are not relevant to the
			// effective package license.
			continue
		}

		var license *copyright.LicenseField

		switch p := paragraph.(type) {
		case *copyright.HeaderParagraph:
			copyrightList = appendUnique(copyrightList, p.Copyright.Statements...)
			license = p.License
		case *copyright.FilesParagraph:
			copyrightList = appendUnique(copyrightList, p.Copyright.Statements...)
			license = p.License
		case *copyright.LicenseParagraph:
			license = p.License
		case *copyright.CatchAllParagraph:
			if text := p.Dumps(); text != "" {
				detected, ok := opts.detector().Detect(text)
				if !ok {
					detected = unknownLicense
				}
				detectedList = appendUnique(detectedList, detected)
			}
			continue
		}

		if license == nil {
			continue
		}

		declared, detected := detectDeclaredLicense(license.Name, opts)
		if declared != "" {
			declaredList = appendUnique(declaredList, declared)
		}
		if detected != "" {
			detectedList = appendUnique(detectedList, detected)
		}

		// Second, independent detection pass on the license body text,
		// cross-referencing the declaration.
		if license.Text != "" {
			detected, ok := opts.detector().Detect(license.Text)
			if !ok {
				detected = unknownLicense
			}
			detectedList = appendUnique(detectedList, detected)
		}
	}

	return Result{
		DeclaredLicense: strings.Join(declaredList, "\n"),
		DetectedLicense: reduceDetected(detectedList, opts.SimplifyLicenses),
		Copyrights:      strings.Join(copyrightList, "\n"),
	}
}

// NormalizeFile parses and normalizes the copyright file at path.
func NormalizeFile(path string, opts Options) (Result, error) {
	doc, err := copyright.ParseFile(path)
	if err != nil {
		return Result{}, err
	}
	result := Normalize(doc, opts)
	result.Path = path
	return result, nil
}

// NormalizePackage normalizes the copyright file of a package installed
// under rootDir and writes the three result strings onto the package.
func NormalizePackage(pkg *debpkg.Package, rootDir string, opts Options) (Result, error) {
	result, err := NormalizeFile(pkg.CopyrightFilePath(rootDir), opts)
	if err != nil {
		return Result{}, fmt.Errorf("package %s: %w", pkg.Name, err)
	}

	pkg.DeclaredLicense = result.DeclaredLicense
	pkg.LicenseExpression = result.DetectedLicense
	pkg.Copyright = result.Copyrights

	return result, nil
}

// reduceDetected combines the distinct detected expressions into one: a
// single entry passes through, multiple entries are ANDed, and the result
// is optionally simplified. An empty list yields the unknown sentinel.
func reduceDetected(detectedList []string, simplify bool) string {
	var exprs []*licensing.Expression
	for _, entry := range detectedList {
		expr, err := licensing.Parse(entry)
		if err != nil {
			// Entries come from the alias table or the detector and are
			// expected to parse; anything else is no signal.
			continue
		}
		exprs = append(exprs, expr)
	}
	if len(exprs) == 0 {
		return unknownLicense
	}

	combined := licensing.And(exprs...)
	if simplify {
		combined = combined.Simplify()
	}
	return combined.String()
}

// detectDeclaredLicense resolves one declared license label into the label
// itself and a detected expression. Either or both may be empty.
func detectDeclaredLicense(name string, opts Options) (declared, detected string) {
	// A few odd copyright files have license fields starting with a colon.
	declared = strings.Trim(name, ": \t")
	if declared == "" {
		return "", ""
	}

	// Alias lookup comes first; the free-text detector never overrides a
	// known declared spelling.
	if detected, ok := detectUsingNameMapping(declared, opts.table()); ok {
		return declared, detected
	}

	detected, _ = opts.detector().Detect(declared)
	return declared, detected
}

// detectUsingNameMapping resolves a declared label through the alias table.
// Table values are re-parsed on every hit; an unparseable value falls
// through to free-text detection rather than failing.
func detectUsingNameMapping(declared string, table *aliases.Table) (string, bool) {
	raw, ok := table.Get(strings.ToLower(declared))
	if !ok {
		return "", false
	}
	expr, err := licensing.Parse(raw)
	if err != nil {
		return "", false
	}
	return expr.String(), true
}

// isDebianPackaging reports whether the paragraph is a files paragraph
// that applies only to the Debian packaging.
func isDebianPackaging(paragraph copyright.Paragraph) bool {
	p, ok := paragraph.(*copyright.FilesParagraph)
	return ok && p.Files == "debian/*"
}

func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		found := false
		for _, existing := range list {
			if existing == item {
				found = true
				break
			}
		}
		if !found {
			list = append(list, item)
		}
	}
	return list
}
