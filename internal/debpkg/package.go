// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package debpkg models an installed Debian package just far enough to
// locate its copyright file and carry the normalized license results.
package debpkg

import "path/filepath"

// Package is one installed Debian package record.
type Package struct {
	Name    string
	Version string

	// MultiArch is the package's Multi-Arch field ("same", "foreign" or
	// empty). It does not affect the copyright file location, which is
	// keyed on the package name alone.
	MultiArch string

	// Normalization results, filled in by normalize.NormalizePackage.
	DeclaredLicense   string
	LicenseExpression string
	Copyright         string
}

// CopyrightFilePath returns the location of the package's copyright file
// under an installed filesystem root.
func (p *Package) CopyrightFilePath(rootDir string) string {
	return filepath.Join(rootDir, "usr", "share", "doc", p.Name, "copyright")
}
