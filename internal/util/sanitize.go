package util

import (
	"regexp"
	"strings"
	"unicode"

	"go-docs-api/pkg/apierror"
)

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// SanitizeFilename normalizes a client-supplied filename so it is safe to
// store on disk. Control and invisible characters are stripped, filesystem
// metacharacters replaced, and reserved or traversal names rejected.
func SanitizeFilename(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apierror.BadRequest("filename cannot be empty", "")
	}
	if strings.Contains(trimmed, "\x00") {
		return "", apierror.BadRequest("filename contains null bytes", "")
	}

	builder := strings.Builder{}
	builder.Grow(len(trimmed))
	for _, char := range trimmed {
		if unicode.IsControl(char) || unicode.Is(unicode.Cf, char) {
			continue
		}
		builder.WriteRune(char)
	}

	cleaned := strings.TrimSpace(invalidFilenameChars.ReplaceAllString(builder.String(), "_"))
	if cleaned == "" {
		return "", apierror.BadRequest("filename is invalid after sanitization", trimmed)
	}
	if cleaned == "." || cleaned == ".." {
		return "", apierror.BadRequest("filename cannot be current or parent directory", cleaned)
	}

	// Truncate by runes to avoid splitting multi-byte characters.
	runes := []rune(cleaned)
	if len(runes) > 255 {
		cleaned = string(runes[:255])
	}

	stem := cleaned
	if idx := strings.Index(cleaned, "."); idx >= 0 {
		stem = cleaned[:idx]
	}
	if _, exists := reservedNames[strings.ToUpper(stem)]; exists {
		return "", apierror.BadRequest("reserved filename is not allowed", cleaned)
	}

	return cleaned, nil
}
