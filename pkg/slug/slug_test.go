// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tabletop/pkg/slug"
)

/*
TestNormalize composes accents and trims, keeping the slug otherwise intact.
*/
func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "dexterity", "dexterity"},
		{"inner_space_kept", "euro game", "euro game"},
		{"trimmed", "  social deduction ", "social deduction"},
		{"decomposed_accent", "pe\u0301tanque", "p\u00e9tanque"},
		{"already_composed", "p\u00e9tanque", "p\u00e9tanque"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Normalize(tt.in))
		})
	}
}
