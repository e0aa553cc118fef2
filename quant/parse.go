package quant

import (
	"fmt"
	"strconv"
)

// headerIndex maps column names to their positions in a header row, failing
// with the file name when any of the wanted columns are absent.
func headerIndex(path string, header []string, want ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for col, name := range header {
		idx[name] = col
	}

	for _, name := range want {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%s: expected a %q column, found %v", path, name, header)
		}
	}

	return idx, nil
}

// floatField parses one named column out of a data row.
func floatField(path string, line int, row []string, fields map[string]int, name string) (float64, error) {
	raw := row[fields[name]]

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s line %d: bad %s value %q: %w", path, line, name, raw, err)
	}

	return v, nil
}
