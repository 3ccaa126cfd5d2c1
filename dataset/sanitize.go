package dataset

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxFilenameLen = 100

var (
	reservedChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	nonWordChars  = regexp.MustCompile(`[^\w\s-]`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Some letters survive NFKD decomposition with no combining mark to
// strip, so they get explicit ASCII fallbacks.
var letterFallbacks = strings.NewReplacer(
	"ł", "l", "Ł", "L",
	"ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D",
	"ß", "ss",
)

// SanitizeFilename turns an arbitrary track or artist name into a safe
// filename: accents stripped via unicode decomposition, reserved and
// non-word characters removed, whitespace collapsed to underscores, and
// the result capped at 100 characters.
func SanitizeFilename(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, name); err == nil {
		name = stripped
	}

	name = letterFallbacks.Replace(name)
	name = reservedChars.ReplaceAllString(name, "")
	name = nonWordChars.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), "_")

	if len(name) > maxFilenameLen {
		name = name[:maxFilenameLen]
	}

	return name
}
