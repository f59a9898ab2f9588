package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hyperifyio/goreport/internal/report"
)

// Models reliably wrap or pollute their JSON output; the helpers below
// recover a parseable payload from the common failure shapes (leading
// narration, control characters, trailing commas, stray backslashes)
// before giving up.

var (
	outerObjectRe   = regexp.MustCompile(`(?s)\{.*\}`)
	controlCharsRe  = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f]")
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	strayEscapeRe   = regexp.MustCompile(`\\([^"\\/bfnrtu])`)
	nonPrintableRe  = regexp.MustCompile("[^\x20-\x7e\n]")
)

// payload mirrors the provider's JSON contract. References tolerate
// non-string entries, which are filtered out rather than failing the
// parse.
type payload struct {
	Title        string           `json:"title"`
	Introduction string           `json:"introduction"`
	Sections     []report.Section `json:"sections"`
	Conclusion   string           `json:"conclusion"`
	References   []any            `json:"references"`
}

// ParsePayload extracts and decodes the report payload from raw model
// output. It tries the cleaned JSON first and retries once with an
// aggressive printable-ASCII reduction before failing.
func ParsePayload(raw string) (report.Document, error) {
	match := outerObjectRe.FindString(raw)
	if match == "" {
		return report.Document{}, errors.New("no JSON object in model output")
	}
	cleaned := CleanJSON(match)

	var p payload
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		reduced := nonPrintableRe.ReplaceAllString(cleaned, "")
		if err2 := json.Unmarshal([]byte(reduced), &p); err2 != nil {
			return report.Document{}, fmt.Errorf("decode payload: %w", err)
		}
	}

	doc := report.Document{
		Title:        p.Title,
		Introduction: p.Introduction,
		Sections:     p.Sections,
		Conclusion:   p.Conclusion,
	}
	for _, r := range p.References {
		if s, ok := r.(string); ok && strings.TrimSpace(s) != "" {
			doc.References = append(doc.References, s)
		}
	}
	return doc, nil
}

// CleanJSON repairs the defects models commonly introduce into JSON
// strings without touching well-formed content.
func CleanJSON(s string) string {
	s = controlCharsRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\t", " ")
	s = strayEscapeRe.ReplaceAllString(s, `\\$1`)
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	return s
}
