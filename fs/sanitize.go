// Package fs provides file-based input and output for periodex:
// loading cleaned issue text and TOC manifests, and writing per-entry
// content files, review files, and the misc bucket.
package fs

import (
	"regexp"
	"strings"
)

// maxFilenameLen clips sanitized components so strategy-prefixed entry
// filenames stay within common filesystem limits.
const maxFilenameLen = 80

var (
	unsafeRe     = regexp.MustCompile(`[<>:"/\\|?*]`)
	separatorRe  = regexp.MustCompile(`[\s\-,;.!'()]+`)
	underscoreRe = regexp.MustCompile(`_+`)
)

// SanitizeFilename turns a title or author string into a safe filename
// component: unsafe characters removed, separator runs collapsed to a
// single underscore, clipped to 80 characters.
func SanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	s = unsafeRe.ReplaceAllString(s, "")
	s = separatorRe.ReplaceAllString(s, "_")
	s = underscoreRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")

	runes := []rune(s)
	if len(runes) > maxFilenameLen {
		s = strings.TrimRight(string(runes[:maxFilenameLen]), "_")
	}
	return s
}
