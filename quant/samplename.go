package quant

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// SampleIDFunc derives a sample identifier from the path of one per-sample
// result file. Naming conventions vary between pipelines, so the strategy is
// injectable; whichever strategy runs, the loader still verifies that the
// derived IDs are unique within a table.
type SampleIDFunc func(path string) (string, error)

// SampleIDFromBase keeps the file's base name up to the first underscore,
// after stripping every extension. RSEM outputs named
// SRR950078.genes.results and SRR950078_hg38.genes.results.gz both yield
// SRR950078.
func SampleIDFromBase(path string) (string, error) {
	base := filepath.Base(path)
	for {
		ext := filepath.Ext(base)
		if ext == "" || ext == base {
			break
		}
		base = strings.TrimSuffix(base, ext)
	}

	if i := strings.Index(base, "_"); i >= 0 {
		base = base[:i]
	}

	if base == "" || base == "." {
		return "", fmt.Errorf("cannot derive a sample name from %s", path)
	}

	return base, nil
}

// SampleIDFromDir names the sample after the parent directory, keeping only
// the text before the first underscore. StringTie and kallisto write a
// fixed-name file (t_data.ctab, abundance.tsv) into a per-sample directory,
// so the directory carries the sample's identity.
func SampleIDFromDir(path string) (string, error) {
	dir := filepath.Base(filepath.Dir(path))

	if i := strings.Index(dir, "_"); i >= 0 {
		dir = dir[:i]
	}

	if dir == "" || dir == "." || dir == string(filepath.Separator) {
		return "", fmt.Errorf("cannot derive a sample name from the directory of %s", path)
	}

	return dir, nil
}

// SampleIDFromPattern extracts the sample name with a regular expression,
// e.g. `[SED]RR\d+` for sequencing run accessions. The first capture group
// wins when one exists; otherwise the whole match is used. The base name is
// tried before the full path.
func SampleIDFromPattern(re *regexp.Regexp) SampleIDFunc {
	return func(path string) (string, error) {
		m := re.FindStringSubmatch(filepath.Base(path))
		if m == nil {
			m = re.FindStringSubmatch(path)
		}
		if m == nil {
			return "", fmt.Errorf("%s does not match the sample name pattern %s", path, re)
		}

		if len(m) > 1 && m[1] != "" {
			return m[1], nil
		}

		return m[0], nil
	}
}
