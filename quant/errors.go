package quant

import "fmt"

// NoFilesFoundError reports a discovery pass that matched nothing. An empty
// run is a configuration error (wrong directory, wrong pattern), never an
// empty-but-successful result.
type NoFilesFoundError struct {
	Dir     string
	Pattern string
}

func (e NoFilesFoundError) Error() string {
	return fmt.Sprintf("no files matching %q were found under %s", e.Pattern, e.Dir)
}

// InconsistentFeatureSetError reports a sample whose feature IDs disagree
// with the feature index established by the table's first sample. This
// usually means the result files were produced against different annotation
// versions.
type InconsistentFeatureSetError struct {
	Table  string
	Sample string
	Path   string

	// One example from each side of the disagreement, plus totals.
	Missing  string
	MissingN int
	Extra    string
	ExtraN   int
}

func (e InconsistentFeatureSetError) Error() string {
	msg := fmt.Sprintf("%s: sample %s (%s) disagrees with the table's feature set", e.Table, e.Sample, e.Path)
	if e.MissingN > 0 {
		msg += fmt.Sprintf("; %d missing (e.g. %s)", e.MissingN, e.Missing)
	}
	if e.ExtraN > 0 {
		msg += fmt.Sprintf("; %d unexpected (e.g. %s)", e.ExtraN, e.Extra)
	}

	return msg
}

// DuplicateSampleError reports two result files that resolve to the same
// sample name, which would silently overwrite a column if permitted.
type DuplicateSampleError struct {
	Table     string
	Sample    string
	Path      string
	PriorPath string
}

func (e DuplicateSampleError) Error() string {
	return fmt.Sprintf("%s: sample name %q from %s collides with the sample already loaded from %s", e.Table, e.Sample, e.Path, e.PriorPath)
}
