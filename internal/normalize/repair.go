// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"strings"

	"copyright-scan/internal/copyright"
)

// notALicenseName lists prefixes seen in a large collection of Debian
// copyright files where the license name field actually holds the first
// line of embedded license prose. Such names must be moved into the license
// text so they reach free-text detection instead of alias lookup.
var notALicenseName = []string{
	"according to",
	"by obtaining",
	"distributed under the terms of the gnu",
	"gnu general public license version 2 as published by the free",
	"gnu lesser general public license 2.1 as published by the",
}

// fixCopyright returns a repaired copy of the document, rerouting license
// name fields that actually hold copyright statements or license prose.
// The input document is left untouched.
func fixCopyright(doc *copyright.Document) *copyright.Document {
	fixed := &copyright.Document{Paragraphs: make([]copyright.Paragraph, 0, len(doc.Paragraphs))}
	for _, paragraph := range doc.Paragraphs {
		fixed.Paragraphs = append(fixed.Paragraphs, fixParagraph(paragraph.Clone()))
	}
	return fixed
}

func fixParagraph(paragraph copyright.Paragraph) copyright.Paragraph {
	license := paragraphLicense(paragraph)
	if license == nil || license.Name == "" {
		return paragraph
	}

	// Copyright year ranges misfiled as license names:
	//   2005 Sergio Costas
	//   2006-2010 by The HDF Group.
	if strings.HasPrefix(license.Name, "200") {
		switch p := paragraph.(type) {
		case *copyright.HeaderParagraph:
			p.Copyright.Statements = append(p.Copyright.Statements, license.Name)
			license.Name = ""
		case *copyright.FilesParagraph:
			p.Copyright.Statements = append(p.Copyright.Statements, license.Name)
			license.Name = ""
		}
		return paragraph
	}

	nameLow := strings.ToLower(license.Name)
	for _, prefix := range notALicenseName {
		if strings.HasPrefix(nameLow, prefix) {
			if license.Text != "" {
				license.Text = license.Name + "\n" + license.Text
			} else {
				license.Text = license.Name
			}
			license.Name = ""
			break
		}
	}
	return paragraph
}

// paragraphLicense returns the paragraph's license field, nil when the
// variant has none.
func paragraphLicense(paragraph copyright.Paragraph) *copyright.LicenseField {
	switch p := paragraph.(type) {
	case *copyright.HeaderParagraph:
		return p.License
	case *copyright.FilesParagraph:
		return p.License
	case *copyright.LicenseParagraph:
		return p.License
	case *copyright.CatchAllParagraph:
		return nil
	}
	return nil
}
