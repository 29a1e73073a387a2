// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package licensing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSymbol(t *testing.T) {
	expr, err := Parse("gpl-2.0")
	require.NoError(t, err)
	assert.True(t, expr.IsSymbol())
	assert.Equal(t, "gpl-2.0", expr.String())
}

func TestParseBinaryOperators(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"mit AND gpl-2.0", "mit AND gpl-2.0"},
		{"mit and gpl-2.0", "mit AND gpl-2.0"},
		{"mit OR gpl-2.0", "mit OR gpl-2.0"},
		{"mit AND gpl-2.0 AND bsd-new", "mit AND gpl-2.0 AND bsd-new"},
		// AND binds tighter than OR
		{"mit OR gpl-2.0 AND bsd-new", "mit OR gpl-2.0 AND bsd-new"},
		{"(mit OR gpl-2.0) AND bsd-new", "(mit OR gpl-2.0) AND bsd-new"},
		{"  mit\tAND\n gpl-2.0 ", "mit AND gpl-2.0"},
	}
	for _, tt := range tests {
		expr, err := Parse(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, expr.String(), "input %q", tt.input)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"mit AND",
		"AND mit",
		"(mit OR gpl-2.0",
		"mit)",
		"mit gpl-2.0",
	} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestAndCombination(t *testing.T) {
	a, err := Parse("mit")
	require.NoError(t, err)
	b, err := Parse("gpl-2.0")
	require.NoError(t, err)

	assert.Equal(t, "mit AND gpl-2.0", And(a, b).String())

	// A single operand is returned unchanged.
	assert.Equal(t, "mit", And(a).String())

	// Nil operands are dropped.
	assert.Equal(t, "gpl-2.0", And(nil, b).String())
	assert.Nil(t, And())
}

func TestSimplifyIdempotence(t *testing.T) {
	expr, err := Parse("mit AND mit")
	require.NoError(t, err)
	assert.Equal(t, "mit", expr.Simplify().String())
}

func TestSimplifyFlattening(t *testing.T) {
	inner, err := Parse("mit AND gpl-2.0")
	require.NoError(t, err)
	outer := And(inner, Symbol("bsd-new"))
	assert.Equal(t, "bsd-new AND gpl-2.0 AND mit", outer.Simplify().String())
}

func TestSimplifyAbsorption(t *testing.T) {
	expr, err := Parse("mit AND (mit OR gpl-2.0)")
	require.NoError(t, err)
	assert.Equal(t, "mit", expr.Simplify().String())

	expr, err = Parse("mit OR (mit AND gpl-2.0)")
	require.NoError(t, err)
	assert.Equal(t, "mit", expr.Simplify().String())
}

func TestSimplifyCanonicalOrder(t *testing.T) {
	left, err := Parse("mit AND gpl-2.0")
	require.NoError(t, err)
	right, err := Parse("gpl-2.0 AND mit")
	require.NoError(t, err)
	assert.Equal(t, left.Simplify().String(), right.Simplify().String())
}

func TestSimplifyIsStable(t *testing.T) {
	expr, err := Parse("gpl-2.0 AND (mit OR bsd-new) AND gpl-2.0")
	require.NoError(t, err)
	once := expr.Simplify()
	twice := once.Simplify()
	assert.Equal(t, once.String(), twice.String())
}
