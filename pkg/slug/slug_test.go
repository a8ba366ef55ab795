// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tsuzuki/pkg/slug"
)

/*
TestFrom verifies slug generation across plain, accented, and messy input.
*/
func TestFrom(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"Tower of Dawn", "tower-of-dawn"},
		{"Café au Lait", "cafe-au-lait"},
		{"  spaced   out  ", "spaced-out"},
		{"Symbols!@#$%Between", "symbols-between"},
		{"ALL CAPS TITLE", "all-caps-title"},
		{"Chapter 42: The Answer", "chapter-42-the-answer"},
		{"---already-hyphenated---", "already-hyphenated"},
	}

	for _, testCase := range cases {
		assert.Equal(t, testCase.expected, slug.From(testCase.input), "input %q", testCase.input)
	}
}
