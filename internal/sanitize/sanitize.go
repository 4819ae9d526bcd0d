// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize turns raw generation metadata into a prompt string.
//
// Generators commonly store "<prompt>\nNegative prompt: ...\nSteps: ..., Sampler: ..."
// in a single text field. Prompt keeps only the leading prompt section. The
// markers are matched as plain substrings anywhere in the text, so a prompt
// that itself contains "Steps:" is cut there as well.
package sanitize

import "strings"

const (
	// NegativePromptMarker starts the negative prompt section.
	NegativePromptMarker = "Negative prompt:"

	// ParametersMarker starts the generation parameters section.
	ParametersMarker = "Steps:"
)

// Prompt strips the negative prompt and parameters sections from raw and,
// when removeNewlines is set, joins its lines with single spaces. It returns
// false when nothing but whitespace remains.
func Prompt(raw string, removeNewlines bool) (string, bool) {
	text := raw
	if before, _, found := strings.Cut(text, NegativePromptMarker); found {
		text = strings.TrimSpace(before)
	}
	if before, _, found := strings.Cut(text, ParametersMarker); found {
		text = strings.TrimSpace(before)
	}

	if removeNewlines {
		text = strings.Join(splitLines(text), " ")
	}
	text = strings.TrimSpace(text)

	if text == "" {
		return "", false
	}
	return text, true
}

// splitLines splits s at line boundaries: \n, \r\n, \r, vertical tab, form
// feed, the ASCII file/group/record separators, NEL, and the Unicode line and
// paragraph separators. A trailing line break does not produce an empty final
// line.
func splitLines(s string) []string {
	var lines []string
	start := 0
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if !isLineBreak(runes[i]) {
			continue
		}
		lines = append(lines, string(runes[start:i]))
		if runes[i] == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
			i++
		}
		start = i + 1
	}
	if start < len(runes) {
		lines = append(lines, string(runes[start:]))
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
