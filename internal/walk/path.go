package dirwalk

import (
	"os"
	"strings"
)

const separator = string(os.PathSeparator)

// NormalizeStart strips trailing separators from a start path while keeping
// the rest of the caller's spelling. A path made only of separators becomes
// the root and an empty path becomes ".".
func NormalizeStart(path string) string {
	if path == "" {
		return "."
	}
	trimmed := strings.TrimRight(path, separator)
	if trimmed == "" {
		return separator
	}
	return trimmed
}

// JoinPath appends name to dir with exactly one separator between them.
// Unlike filepath.Join it does not clean dir, so descendants keep the start
// path as a textual prefix.
func JoinPath(dir, name string) string {
	if strings.HasSuffix(dir, separator) {
		return dir + name
	}
	return dir + separator + name
}
