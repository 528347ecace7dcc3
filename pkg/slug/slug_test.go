// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: d.koval.dev@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmkoval/kinoteka/pkg/slug"
)

/*
TestFrom verifies the Unicode-to-ASCII slug pipeline.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Drama", "drama"},
		{"spaces", "Science Fiction", "science-fiction"},
		{"accents", "Café Société", "cafe-societe"},
		{"punctuation", "Rock & Roll!", "rock-roll"},
		{"digits", "Top 100", "top-100"},
		{"leading_trailing", "  Thriller  ", "thriller"},
		{"consecutive_specials", "A --- B", "a-b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

/*
TestTruncate verifies shortening without trailing hyphens.
*/
func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short_enough", "drama", 50, "drama"},
		{"exact_fit", "drama", 5, "drama"},
		{"cut_mid_word", "science-fiction", 9, "science-f"},
		{"cut_on_hyphen", "science-fiction", 8, "science"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Truncate(tt.input, tt.max))
		})
	}
}
