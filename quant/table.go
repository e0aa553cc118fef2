// Package quant loads RNA-seq quantification results produced by RSEM,
// StringTie, and kallisto into a uniform in-memory table of features by
// samples, so that downstream normalization and comparison code never needs
// to know which tool produced the numbers.
package quant

import (
	"fmt"
)

// Level distinguishes transcript-level from gene-level quantification.
type Level string

const (
	TranscriptLevel Level = "transcript"
	GeneLevel       Level = "gene"
)

// Tool names a supported quantifier. The value doubles as the default table
// name and as the source label in reports.
type Tool string

const (
	RSEM      Tool = "rsem"
	StringTie Tool = "stringtie"
	Kallisto  Tool = "kallisto"
)

// Table is a dense quantification matrix: one row per feature (gene or
// transcript), one column per sample, with parallel value planes for raw
// counts, abundance, and feature length. The first sample added establishes
// the feature index; AddSample refuses any later sample whose feature-ID set
// disagrees, so a fully assembled Table has no missing cells.
type Table struct {
	// Name labels the source in error messages and report headers,
	// typically the Tool that produced it.
	Name  string
	Level Level

	Features []string
	Samples  []string

	// Paths records the file each sample column was loaded from.
	Paths []string

	// Value planes, indexed [sample][feature] in the order of Samples and
	// Features. Abundance is TPM once normalization has run; for tools
	// that report TPM natively it is populated at load time.
	Counts    [][]float64
	Abundance [][]float64
	Lengths   [][]float64

	// Coverage is populated only by loaders for tools that report
	// per-base read coverage in place of raw counts (StringTie). It is
	// consumed when counts are derived and does not survive aggregation.
	Coverage [][]float64

	featureIdx map[string]int
	sampleIdx  map[string]int
}

// Column holds one parsed per-sample result file, in file order. Coverage is
// nil for tools that report counts directly.
type Column struct {
	Sample string
	Path   string

	Features  []string
	Counts    []float64
	Abundance []float64
	Lengths   []float64
	Coverage  []float64
}

func NewTable(name string, level Level) *Table {
	return &Table{
		Name:       name,
		Level:      level,
		featureIdx: make(map[string]int),
		sampleIdx:  make(map[string]int),
	}
}

func (t *Table) NFeatures() int {
	return len(t.Features)
}

func (t *Table) NSamples() int {
	return len(t.Samples)
}

// FeatureIndex returns the row position of the named feature.
func (t *Table) FeatureIndex(feature string) (int, bool) {
	i, ok := t.featureIdx[feature]
	return i, ok
}

// SampleIndex returns the column position of the named sample.
func (t *Table) SampleIndex(sample string) (int, bool) {
	i, ok := t.sampleIdx[sample]
	return i, ok
}

// AddSample appends one sample column to the table. The first column defines
// the table's feature set and ordering; later columns must carry exactly the
// same feature IDs and are aligned to the established order by ID, never by
// file position.
func (t *Table) AddSample(col Column) error {
	if len(col.Features) == 0 {
		return fmt.Errorf("%s: sample %s (%s) contains no features", t.Name, col.Sample, col.Path)
	}
	if len(col.Counts) != len(col.Features) ||
		len(col.Abundance) != len(col.Features) ||
		len(col.Lengths) != len(col.Features) ||
		(col.Coverage != nil && len(col.Coverage) != len(col.Features)) {
		return fmt.Errorf("%s: sample %s (%s): value slices disagree on row count", t.Name, col.Sample, col.Path)
	}

	if prior, exists := t.sampleIdx[col.Sample]; exists {
		return DuplicateSampleError{Table: t.Name, Sample: col.Sample, Path: col.Path, PriorPath: t.Paths[prior]}
	}

	hasCoverage := col.Coverage != nil
	if len(t.Samples) > 0 && hasCoverage != (t.Coverage != nil) {
		return fmt.Errorf("%s: sample %s (%s): coverage is present for some samples but not others", t.Name, col.Sample, col.Path)
	}

	var counts, abundance, lengths, coverage []float64
	if len(t.Samples) == 0 {
		idx := make(map[string]int, len(col.Features))
		for i, f := range col.Features {
			if _, dup := idx[f]; dup {
				return fmt.Errorf("%s: sample %s (%s): feature %s appears more than once", t.Name, col.Sample, col.Path, f)
			}
			idx[f] = i
		}

		t.Features = append([]string(nil), col.Features...)
		t.featureIdx = idx

		counts = append([]float64(nil), col.Counts...)
		abundance = append([]float64(nil), col.Abundance...)
		lengths = append([]float64(nil), col.Lengths...)
		if hasCoverage {
			coverage = append([]float64(nil), col.Coverage...)
		}
	} else {
		var err error
		counts, abundance, lengths, coverage, err = t.aligned(col)
		if err != nil {
			return err
		}
	}

	t.sampleIdx[col.Sample] = len(t.Samples)
	t.Samples = append(t.Samples, col.Sample)
	t.Paths = append(t.Paths, col.Path)
	t.Counts = append(t.Counts, counts)
	t.Abundance = append(t.Abundance, abundance)
	t.Lengths = append(t.Lengths, lengths)
	if hasCoverage {
		t.Coverage = append(t.Coverage, coverage)
	}

	return nil
}

// aligned reorders one column's rows into the table's established feature
// order, verifying that the feature-ID sets match exactly.
func (t *Table) aligned(col Column) (counts, abundance, lengths, coverage []float64, err error) {
	counts = make([]float64, len(t.Features))
	abundance = make([]float64, len(t.Features))
	lengths = make([]float64, len(t.Features))
	if col.Coverage != nil {
		coverage = make([]float64, len(t.Features))
	}

	seen := make([]bool, len(t.Features))

	var extra string
	var extraN int
	for i, f := range col.Features {
		at, ok := t.featureIdx[f]
		if !ok {
			if extra == "" {
				extra = f
			}
			extraN++
			continue
		}
		if seen[at] {
			return nil, nil, nil, nil, fmt.Errorf("%s: sample %s (%s): feature %s appears more than once", t.Name, col.Sample, col.Path, f)
		}
		seen[at] = true

		counts[at] = col.Counts[i]
		abundance[at] = col.Abundance[i]
		lengths[at] = col.Lengths[i]
		if coverage != nil {
			coverage[at] = col.Coverage[i]
		}
	}

	var missing string
	var missingN int
	for i, ok := range seen {
		if !ok {
			if missing == "" {
				missing = t.Features[i]
			}
			missingN++
		}
	}

	if missingN > 0 || extraN > 0 {
		return nil, nil, nil, nil, InconsistentFeatureSetError{
			Table:    t.Name,
			Sample:   col.Sample,
			Path:     col.Path,
			Missing:  missing,
			MissingN: missingN,
			Extra:    extra,
			ExtraN:   extraN,
		}
	}

	return counts, abundance, lengths, coverage, nil
}
