// Copyright (c) 2026 Tabletop. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug normalizes category slugs.
//
// # Usage
//
// Category slugs are free text ("euro game", "roll-and-write"). Two byte
// sequences that render the same, such as a precomposed "é" and "e" followed
// by a combining accent, must compare equal, so every slug is stored and
// matched in Unicode NFC form.
package slug

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize trims surrounding whitespace and converts s to NFC.
// Case and inner spacing are preserved.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
