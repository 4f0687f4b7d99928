package player

import (
	"regexp"
	"strings"
)

var (
	invisibleChars = strings.NewReplacer("\u200b", " ", "\u2060", " ", "\ufeff", " ", "\u00a0", " ")
	numberedLine   = regexp.MustCompile(`(?:^|\n)\s*\d+[.)]\s*([^\n\r]+)`)

	tentativeMarker = regexp.MustCompile(`\s*\([tT]\)`)
	bracketed       = regexp.MustCompile(`\s*[(\[{（].*?[)\]}）]`)
	dashSuffix      = regexp.MustCompile(`\s+[-–].*$`)
	letterSuffix    = regexp.MustCompile(`\s+[tTgG]$`)
	statusSuffix    = regexp.MustCompile(`(?i)\s+(?:tentative|late|maybe|confirm|guest|paid)\b.*$`)
)

// CleanName strips availability annotations from a pasted name:
// "(t)" markers, bracketed notes, dash suffixes, a trailing t/g letter and
// status words such as "late" or "paid".
func CleanName(raw string) string {
	name := invisibleChars.Replace(raw)
	name = tentativeMarker.ReplaceAllString(name, "")
	name = bracketed.ReplaceAllString(name, "")
	name = dashSuffix.ReplaceAllString(name, "")
	name = letterSuffix.ReplaceAllString(name, "")
	name = statusSuffix.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// NameKey is the case-insensitive identity used when matching pasted names to the roster.
func NameKey(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(CleanName(raw)), " "))
}

// ExtractListedNames returns the raw entries of a numbered chat list such as
// "1. Ali\n2) Budi (late)". Entries that are a single character are dropped.
func ExtractListedNames(text string) []string {
	text = invisibleChars.Replace(text)
	matches := numberedLine.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		entry := strings.TrimSpace(m[1])
		if len([]rune(entry)) > 1 {
			out = append(out, entry)
		}
	}
	return out
}
