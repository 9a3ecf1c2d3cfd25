package mediatypes

import "strings"

// maxFilenameRunes caps sanitized names so appended suffixes and
// extensions stay within common filesystem limits.
const maxFilenameRunes = 100

var filenameReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"/", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
	"\x00", "",
)

// SanitizeFilename turns a source title into a safe response file name:
// reserved characters become underscores, surrounding whitespace is
// trimmed, and the result is capped at 100 runes. Titles that sanitize
// to nothing usable become "untitled".
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(filenameReplacer.Replace(name))
	if runes := []rune(name); len(runes) > maxFilenameRunes {
		name = strings.TrimSpace(string(runes[:maxFilenameRunes]))
	}
	if name == "" || name == "." || name == ".." {
		return "untitled"
	}
	return name
}
