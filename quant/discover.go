package quant

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/carbocation/pfx"

	"github.com/carbocation/quantcomp"
)

// Discover walks root recursively and returns every file whose base name
// matches pattern (filepath.Match syntax), sorted so that sample ordering is
// reproducible across runs. Zero matches yield a NoFilesFoundError rather
// than an empty slice.
func Discover(root, pattern string) ([]string, error) {
	expanded, err := quantcomp.ExpandHome(root)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = filepath.WalkDir(expanded, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matched, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return err
		}
		if matched {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return nil, pfx.Err(err)
	}

	if len(paths) == 0 {
		return nil, NoFilesFoundError{Dir: expanded, Pattern: pattern}
	}

	sort.Strings(paths)

	return paths, nil
}
