// Package dirwalk provides physical, type-filtered directory traversal with
// streaming or collated output.
package dirwalk

import (
	"os"

	"github.com/karrick/godirwalk"
)

// EntryKind is the type of a filesystem entry as reported by its own metadata.
// Symbolic links are never resolved to decide the kind.
type EntryKind int

const (
	KindUnknown       EntryKind = iota // Metadata could not be obtained; never classified
	KindDirectory                      // Directory
	KindRegular                        // Regular file
	KindSymlink                        // Symbolic link, dangling or not
	KindUnreadableDir                  // Directory whose listing could not be read
	KindOther                          // Socket, FIFO, device
)

func (k EntryKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindRegular:
		return "file"
	case KindSymlink:
		return "symlink"
	case KindUnreadableDir:
		return "unreadable-directory"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// KindOf maps mode type bits onto an EntryKind.
func KindOf(mode os.FileMode) EntryKind {
	switch {
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case mode&os.ModeDir != 0:
		return KindDirectory
	case mode&os.ModeType == 0:
		return KindRegular
	default:
		return KindOther
	}
}

// Lstat returns the kind of the entry at path without following a final
// symbolic link.
func Lstat(path string) (EntryKind, error) {
	de, err := godirwalk.NewDirent(path)
	if err != nil {
		return KindUnknown, err
	}
	return KindOf(de.ModeType()), nil
}
