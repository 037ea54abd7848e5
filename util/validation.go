package util

import (
	"regexp"
	"strings"
	"unicode"
)

// Letter ids are opaque to us but end up as a single URL path segment.
var letterIdRegex = regexp.MustCompile(`^[A-Za-z0-9\-_.~]+$`)

const maxLetterIdLength = 128

// IsValidLetterId reports whether id can be sent to the archive API.
// Returns (true, "") if valid, or (false, "error message") if invalid.
func IsValidLetterId(id string) (bool, string) {
	if len(id) == 0 {
		return false, "Letter id is missing"
	}
	if len(id) > maxLetterIdLength {
		return false, "Letter id is too long"
	}
	if id == "." || id == ".." {
		return false, "Letter id is not a valid path segment"
	}
	for _, r := range id {
		if unicode.IsControl(r) || !unicode.IsPrint(r) {
			return false, "Letter id contains non-printable characters"
		}
	}
	if !letterIdRegex.MatchString(id) {
		return false, "Letter id contains invalid characters"
	}
	return true, ""
}

// LetterIdFromArgs extracts the letter id from an ssh command line. Both
// "letterId=42" and a bare "42" are accepted; the first match wins.
func LetterIdFromArgs(args []string) string {
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if v, ok := strings.CutPrefix(arg, "letterId="); ok {
			return v
		}
		if v, ok := strings.CutPrefix(arg, "?letterId="); ok {
			return v
		}
	}
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg != "" && !strings.Contains(arg, "=") {
			return arg
		}
	}
	return ""
}
