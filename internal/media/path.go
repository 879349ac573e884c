package media

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Stored paths may contain alphanumerics, underscore, hyphen, backslash,
// forward slash and dot. Anything else, or a doubled forward slash anywhere,
// fails validation. This keeps nested date directories legal while rejecting
// attempts to escape the media root.
var storedPathPattern = regexp.MustCompile(`^[A-Za-z0-9_\-\\/.]+$`)

// ValidStoredPath reports whether a stored path passes the safety rule.
func ValidStoredPath(path string) bool {
	if path == "" {
		return false
	}
	if strings.Contains(path, "//") {
		return false
	}
	return storedPathPattern.MatchString(path)
}

// storedPathFor derives the relative path for new content from the given
// date and file name: <year>/<month>/<day>/<name>.
func storedPathFor(t time.Time, fileName string) string {
	return fmt.Sprintf("%d/%d/%d/%s", t.Year(), int(t.Month()), t.Day(), fileName)
}
