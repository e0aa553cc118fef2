package quantcomp

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// ExpandHome expands a leading ~ to the current user's home directory. Paths
// without the prefix (including gs:// URLs) pass through unchanged, so it is
// safe to apply to every user-supplied path.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path, pfx.Err(err)
	}

	return filepath.Join(home, path[2:]), nil
}
