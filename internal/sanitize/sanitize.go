// Package sanitize restricts arbitrary text to the printable Latin-1
// subset the PDF layout engines can render with core fonts. Common
// Unicode punctuation is mapped to ASCII equivalents, accented and
// compatibility characters are folded via NFKD, and whatever remains
// outside Latin-1 degrades to '?'. The transform is idempotent.
package sanitize

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// replacements maps well-known Unicode punctuation and symbols to ASCII
// equivalents before the general Latin-1 fold runs.
var replacements = map[rune]string{
	'’': "'",  // right single quotation mark
	'‘': "'",  // left single quotation mark
	'“': `"`,  // left double quotation mark
	'”': `"`,  // right double quotation mark
	'—': "--", // em dash
	'–': "-",  // en dash
	'…': "...",
	' ': " ", // non-breaking space
	'•': "*", // bullet
	'→': "->",
	'←': "<-",
	'↑': "^",
	'↓': "v",
	'●': "*", // black circle
	'○': "o", // white circle
	'■': "#", // black square
	'□': "o", // white square
	'−': "-", // minus sign
	'×': "x",
	'÷': "/",
	'±': "+/-",
	'≤': "<=",
	'≥': ">=",
	'°': " degrees",
	'€': "EUR",
	'£': "GBP",
	'¥': "JPY",
	'©': "(c)",
	'®': "(R)",
	'™': "TM",
}

// String maps s onto printable Latin-1. The output contains only runes
// with code point < 256 plus newline, carriage return and tab; other
// control characters become spaces. String(String(s)) == String(s).
func String(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if rep, ok := replacements[r]; ok {
			b.WriteString(rep)
			continue
		}
		if r < 256 {
			writeLatin1(&b, r)
			continue
		}
		b.WriteString(foldRune(r))
	}
	return b.String()
}

// Value coerces any value to a string with fmt and sanitizes it.
func Value(v interface{}) string {
	if s, ok := v.(string); ok {
		return String(s)
	}
	return String(fmt.Sprint(v))
}

// foldRune decomposes a non-Latin-1 rune with NFKD and keeps whatever
// Latin-1 base characters fall out, discarding combining marks. A rune
// with no Latin-1 decomposition becomes '?'.
func foldRune(r rune) string {
	var b strings.Builder
	for _, d := range norm.NFKD.String(string(r)) {
		if unicode.Is(unicode.Mn, d) {
			continue
		}
		if rep, ok := replacements[d]; ok {
			b.WriteString(rep)
			continue
		}
		if d < 256 {
			writeLatin1(&b, d)
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}

// writeLatin1 appends a rune already known to be < 256, replacing
// control characters other than \n, \r and \t with a space.
func writeLatin1(b *strings.Builder, r rune) {
	if r < 32 && r != '\n' && r != '\r' && r != '\t' {
		b.WriteRune(' ')
		return
	}
	b.WriteRune(r)
}
