// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package detector derives a normalized license expression from free text:
// either a license label that missed the alias table or the full prose of a
// license body. Input is always treated as prose, never as a pre-formed
// expression.
package detector

import (
	"regexp"
	"strings"

	"copyright-scan/internal/licensing"
	"copyright-scan/internal/observability"
)

// Detector matches free text against per-license-family pattern tables and
// combines the matched license keys into one AND expression.
type Detector struct {
	families []family
	observer *observability.StandardObserver
}

// family groups the rules for one license family. Rules are ordered most
// specific first; the first matching rule decides the family's key.
type family struct {
	name  string
	rules []rule
}

type rule struct {
	key     string
	pattern *regexp.Regexp
}

// gnuVersionWindow is how far past a GNU license mention we look for a
// version qualifier. License texts state the version within a clause or two
// of naming the license.
const gnuVersionWindow = 120

var (
	agplRef = regexp.MustCompile(`affero general public license|\bagpl\b|\bagpl[ -]?v?\d`)
	lgplRef = regexp.MustCompile(`(?:lesser|library) general public license|\blgpl\b|\blgpl[ -]?v?\d`)
	// A plain GPL reference, capturing the optional qualifier word so that
	// LGPL/AGPL mentions are not double-counted as GPL.
	gplRef = regexp.MustCompile(`(?:(\w+) )?general public license|\bgpl\b|\bgpl[ -]?v?\d`)

	// The bare-number fallback accepts only single-digit majors so years in
	// nearby copyright lines are never read as versions.
	gnuVersionRe = regexp.MustCompile(`(?:version |v)(\d+(?:\.\d+)?)|\b(\d(?:\.\d+)?)\b`)
	gnuTokenRe   = regexp.MustCompile(`\b[la]?gpl[ -]?v?(\d+(?:\.\d+)?)(\+)?`)
	laterRe      = regexp.MustCompile(`(?:or (?:\(at your option\) )?any later version)|(?:or later)|\d\+`)
)

// NewDetector creates a detector with the built-in pattern tables compiled.
func NewDetector() *Detector {
	return &Detector{
		families: []family{
			{name: "apache", rules: []rule{
				{key: "apache-1.1", pattern: regexp.MustCompile(`apache (?:software )?license,? (?:version )?1\.1|apache-1\.1`)},
				{key: "apache-2.0", pattern: regexp.MustCompile(`apache (?:software )?license,? (?:version )?2\.0|apache-2\.0|apache 2\.0|asl 2\.0|apache (?:software )?license`)},
			}},
			{name: "mit", rules: []rule{
				{key: "mit", pattern: regexp.MustCompile(`permission is hereby granted, free of charge|\bmit licen[sc]e\b|\bexpat licen[sc]e\b|\bmit/x11\b`)},
			}},
			{name: "bsd", rules: []rule{
				{key: "bsd-original", pattern: regexp.MustCompile(`all advertising materials mentioning|4-clause bsd|bsd 4-clause`)},
				{key: "bsd-new", pattern: regexp.MustCompile(`neither the name|3-clause bsd|bsd 3-clause|new bsd licen[sc]e|modified bsd licen[sc]e`)},
				{key: "bsd-simplified", pattern: regexp.MustCompile(`redistribution and use in source and binary forms|2-clause bsd|bsd 2-clause|simplified bsd licen[sc]e|freebsd licen[sc]e`)},
			}},
			{name: "mpl", rules: []rule{
				{key: "mpl-2.0", pattern: regexp.MustCompile(`mozilla public license,? (?:version )?2\.0|mpl-2\.0|mpl 2\.0`)},
				{key: "mpl-1.1", pattern: regexp.MustCompile(`mozilla public license,? (?:version )?1\.1|mpl-1\.1|mpl 1\.1|mozilla public license`)},
			}},
			{name: "isc", rules: []rule{
				{key: "isc", pattern: regexp.MustCompile(`\bisc licen[sc]e\b|permission to use, copy, modify, and(?:/or)? distribute this software`)},
			}},
			{name: "zlib", rules: []rule{
				{key: "zlib", pattern: regexp.MustCompile(`\bzlib licen[sc]e\b|altered source versions must be plainly marked`)},
			}},
			{name: "artistic", rules: []rule{
				{key: "artistic-2.0", pattern: regexp.MustCompile(`artistic licen[sc]e,? (?:version )?2\.0|artistic-2\.0`)},
				{key: "artistic-perl-1.0", pattern: regexp.MustCompile(`artistic licen[sc]e|same terms as perl itself`)},
			}},
			{name: "boost", rules: []rule{
				{key: "boost-1.0", pattern: regexp.MustCompile(`boost software license`)},
			}},
			{name: "cc0", rules: []rule{
				{key: "cc0-1.0", pattern: regexp.MustCompile(`\bcc0\b|creative commons zero|dedicated to the public domain using cc0`)},
			}},
			{name: "wtfpl", rules: []rule{
				{key: "wtfpl-2.0", pattern: regexp.MustCompile(`do what the fuck you want|\bwtfpl\b`)},
			}},
			{name: "unlicense", rules: []rule{
				{key: "unlicense", pattern: regexp.MustCompile(`this is free and unencumbered software`)},
			}},
			{name: "openssl", rules: []rule{
				{key: "openssl", pattern: regexp.MustCompile(`openssl licen[sc]e`)},
			}},
			{name: "python", rules: []rule{
				{key: "python", pattern: regexp.MustCompile(`python software foundation licen[sc]e|\bpsf licen[sc]e\b`)},
			}},
			{name: "public-domain", rules: []rule{
				{key: "public-domain", pattern: regexp.MustCompile(`public domain`)},
			}},
		},
	}
}

// SetObserver sets the observability component
func (d *Detector) SetObserver(observer *observability.StandardObserver) {
	d.observer = observer
}

// Detect returns the normalized license expression detected in text, or
// ("", false) when nothing is recognized. Multiple detected license keys
// are combined with AND in a stable order.
func (d *Detector) Detect(text string) (string, bool) {
	var finishTiming func(bool, map[string]interface{})
	if d.observer != nil {
		finishTiming = d.observer.StartTiming("license_detector", "detect", "")
	}

	low := strings.ToLower(text)

	keys := detectGNU(low)
	for _, f := range d.families {
		for _, r := range f.rules {
			if r.pattern.MatchString(low) {
				keys = append(keys, r.key)
				break
			}
		}
	}
	keys = dedupe(keys)

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{"key_count": len(keys)})
	}
	if len(keys) == 0 {
		return "", false
	}

	exprs := make([]*licensing.Expression, 0, len(keys))
	for _, key := range keys {
		exprs = append(exprs, licensing.Symbol(key))
	}
	return licensing.And(exprs...).String(), true
}

// detectGNU handles the GPL/LGPL/AGPL families, which share wording and
// need version and or-later qualifiers resolved from nearby text.
func detectGNU(low string) []string {
	var keys []string

	if loc := agplRef.FindStringIndex(low); loc != nil {
		keys = append(keys, gnuKey(low, loc, "agpl", "3.0", false))
	}
	if loc := lgplRef.FindStringIndex(low); loc != nil {
		keys = append(keys, gnuKey(low, loc, "lgpl", "2.0", true))
	}
	if loc := plainGPL(low); loc != nil {
		keys = append(keys, gnuKey(low, loc, "gpl", "1.0", true))
	}
	return keys
}

// plainGPL finds a GPL reference that is not an LGPL or AGPL mention.
func plainGPL(low string) []int {
	for _, m := range gplRef.FindAllStringSubmatchIndex(low, -1) {
		if m[2] >= 0 {
			qualifier := low[m[2]:m[3]]
			if qualifier == "lesser" || qualifier == "library" || qualifier == "affero" {
				continue
			}
		}
		// Reject token matches inside lgpl/agpl tokens.
		if m[0] > 0 && (low[m[0]-1] == 'l' || low[m[0]-1] == 'a') {
			continue
		}
		return []int{m[0], m[1]}
	}
	return nil
}

// gnuKey builds a license key like "gpl-2.0-plus" by looking for a version
// qualifier in the text following the license mention.
func gnuKey(low string, loc []int, base, defaultVersion string, defaultPlus bool) string {
	end := loc[1] + gnuVersionWindow
	if end > len(low) {
		end = len(low)
	}
	window := low[loc[0]:end]

	version := ""
	plus := false

	// Compact tokens like "gpl-2+" or "lgplv2.1" carry both qualifiers.
	if m := gnuTokenRe.FindStringSubmatch(window); m != nil {
		version = m[1]
		plus = m[2] == "+"
	} else if m := gnuVersionRe.FindStringSubmatch(low[loc[1]:end]); m != nil {
		if m[1] != "" {
			version = m[1]
		} else {
			version = m[2]
		}
	}
	if laterRe.MatchString(window) {
		plus = true
	}

	switch version {
	case "":
		version = defaultVersion
		plus = defaultPlus
	case "1", "2", "3":
		version += ".0"
	}

	key := base + "-" + version
	if plus {
		key += "-plus"
	}
	return key
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	var out []string
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
