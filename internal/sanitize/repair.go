// Package sanitize turns the raw text returned by an extraction model into a
// bill.Draft. Model output is frequently almost-JSON; the repairs here cover
// the malformations seen in practice and nothing more.
package sanitize

import (
	"bytes"
	"regexp"
)

var (
	fenceRe = regexp.MustCompile("```(?:json|JSON)?")
	// A number followed by a stray unit word before the next delimiter: `: 12.50 Rupees,`.
	strayWordRe     = regexp.MustCompile(`(:\s*-?\d+(?:\.\d+)?)\s+[A-Za-z][A-Za-z.]*\s*([,}\]])`)
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
)

// Repair applies the textual fixes in order and returns the outermost JSON
// object, or nil when the text contains none.
func Repair(raw []byte) []byte {
	text := fenceRe.ReplaceAll(raw, nil)

	start := bytes.IndexByte(text, '{')
	end := bytes.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil
	}
	text = text[start : end+1]

	return outsideStrings(text, func(seg []byte) []byte {
		seg = strayWordRe.ReplaceAll(seg, []byte("$1$2"))
		return trailingCommaRe.ReplaceAll(seg, []byte("$1"))
	})
}

// outsideStrings applies fix to every stretch of text that is not inside a
// JSON string literal and copies string literals through unchanged. Neither
// repair pattern can match a quote, so no match spans a boundary.
func outsideStrings(text []byte, fix func([]byte) []byte) []byte {
	out := make([]byte, 0, len(text))
	start := 0
	inString, escaped := false, false
	for i, c := range text {
		switch {
		case inString && escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case inString && c == '"':
			inString = false
			out = append(out, text[start:i+1]...)
			start = i + 1
		case !inString && c == '"':
			out = append(out, fix(text[start:i])...)
			start = i
			inString = true
		}
	}
	if inString {
		return append(out, text[start:]...)
	}
	return append(out, fix(text[start:])...)
}
