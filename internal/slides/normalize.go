package slides

import (
	"regexp"
	"strings"
)

// Substitution order matters: later rules assume the earlier ones already ran
// (brace-only lines surface once fences are gone, and the blank-line collapse
// mops up the holes left by the line removals).
var (
	notesLabelRE  = regexp.MustCompile(`(?i)\bNotes:\s*`)
	codeFenceRE   = regexp.MustCompile("```[a-zA-Z]*")
	bareBraceRE   = regexp.MustCompile(`(?m)^\s*[{}\[\]]\s*$`)
	danglingKeyRE = regexp.MustCompile(`(?m)^\s*"[A-Za-z0-9_ ]+"\s*:\s*[\[{]\s*$`)
	blankRunRE    = regexp.MustCompile(`\n\s*\n+`)
)

// CleanText strips markdown and JSON leakage from free text destined for a
// slide: "Notes:" label prefixes, code fences, lines that are solely a brace
// or bracket, dangling quoted-key lines, and runs of blank lines. It never
// fails and is idempotent.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	cleaned := notesLabelRE.ReplaceAllString(text, "")
	cleaned = codeFenceRE.ReplaceAllString(cleaned, "")
	cleaned = bareBraceRE.ReplaceAllString(cleaned, "")
	cleaned = danglingKeyRE.ReplaceAllString(cleaned, "")
	cleaned = blankRunRE.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

// truncateWords keeps the first limit words of text. Text at or under the
// limit is returned untouched, including its original whitespace.
func truncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ")
}
