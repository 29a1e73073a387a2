// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	"strings"
	"testing"

	"copyright-scan/internal/formatters"
	_ "copyright-scan/internal/formatters/json"
	_ "copyright-scan/internal/formatters/text"
	_ "copyright-scan/internal/formatters/yaml"
	"copyright-scan/internal/normalize"
)

func TestDefaultRegistryHasAllFormats(t *testing.T) {
	for _, name := range []string{"text", "json", "yaml"} {
		f, ok := formatters.Get(name)
		if !ok {
			t.Errorf("formatter %q not registered", name)
			continue
		}
		if f.Name() != name {
			t.Errorf("formatter %q reports name %q", name, f.Name())
		}
		if f.FileExtension() == "" {
			t.Errorf("formatter %q has no file extension", name)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	if err := formatters.ValidateFormat("json"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := formatters.ValidateFormat("xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "json") {
		t.Errorf("error should list valid formats, got %q", err)
	}
}

func TestFormattersRenderResults(t *testing.T) {
	results := []normalize.Result{
		{
			Path:            "/usr/share/doc/example/copyright",
			DeclaredLicense: "Expat",
			DetectedLicense: "mit",
			Copyrights:      "2010 Jane Maintainer",
		},
	}
	options := formatters.FormatterOptions{NoColor: true, Verbose: true}

	for _, name := range formatters.List() {
		f, _ := formatters.Get(name)
		out, err := f.Format(results, options)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		for _, want := range []string{"mit", "Expat"} {
			if !strings.Contains(out, want) {
				t.Errorf("%s output missing %q:\n%s", name, want, out)
			}
		}
	}
}

func TestFormattersHandleEmptyResults(t *testing.T) {
	for _, name := range formatters.List() {
		f, _ := formatters.Get(name)
		out, err := f.Format(nil, formatters.FormatterOptions{NoColor: true})
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
		if out == "" {
			t.Errorf("%s: expected non-empty output for empty results", name)
		}
	}
}
