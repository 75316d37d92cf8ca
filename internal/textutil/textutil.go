// Package textutil holds small string helpers shared across packages.
package textutil

import (
	"strings"
	"unicode"
)

// SafeName maps s to a filesystem-safe name by replacing every rune that is
// not a letter or digit with an underscore. The result has as many runes as s.
func SafeName(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return strings.TrimSpace(sb.String())
}
