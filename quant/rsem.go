package quant

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"

	"github.com/carbocation/quantcomp"
)

// RSEMLoader reads RSEM result tables. RSEM writes one file per sample
// (*.genes.results or *.isoforms.results) and reports TPM natively, so
// tables it loads need no further normalization.
type RSEMLoader struct {
	// Level selects which RSEM output file to read: genes.results or
	// isoforms.results. Unlike the other tools, RSEM aggregates to the
	// gene level itself.
	Level Level

	// Pattern overrides the default file pattern for the chosen level.
	Pattern string

	// SampleID defaults to SampleIDFromBase.
	SampleID SampleIDFunc
}

// Load discovers and parses every matching result file under root.
func (l RSEMLoader) Load(root string) (*Table, error) {
	pattern := l.Pattern
	if pattern == "" {
		if l.Level == TranscriptLevel {
			pattern = "*.isoforms.results"
		} else {
			pattern = "*.genes.results"
		}
	}

	sampleID := l.SampleID
	if sampleID == nil {
		sampleID = SampleIDFromBase
	}

	idColumn := "gene_id"
	level := GeneLevel
	if l.Level == TranscriptLevel {
		idColumn = "transcript_id"
		level = TranscriptLevel
	}

	paths, err := Discover(root, pattern)
	if err != nil {
		return nil, err
	}

	t := NewTable(string(RSEM), level)
	for _, path := range paths {
		sample, err := sampleID(path)
		if err != nil {
			return nil, pfx.Err(err)
		}

		col, err := readRSEMFile(path, idColumn)
		if err != nil {
			return nil, err
		}
		col.Sample = sample

		if err := t.AddSample(col); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func readRSEMFile(path, idColumn string) (Column, error) {
	f, err := quantcomp.Open(path, nil)
	if err != nil {
		return Column{}, pfx.Err(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'

	col := Column{Path: path}
	var fields map[string]int
	for i := 0; ; i++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return Column{}, pfx.Err(err)
		}

		if i == 0 {
			fields, err = headerIndex(path, row, idColumn, "length", "expected_count", "TPM")
			if err != nil {
				return Column{}, err
			}
			continue
		}

		length, err := floatField(path, i+1, row, fields, "length")
		if err != nil {
			return Column{}, err
		}
		counts, err := floatField(path, i+1, row, fields, "expected_count")
		if err != nil {
			return Column{}, err
		}
		tpm, err := floatField(path, i+1, row, fields, "TPM")
		if err != nil {
			return Column{}, err
		}

		col.Features = append(col.Features, row[fields[idColumn]])
		col.Lengths = append(col.Lengths, length)
		col.Counts = append(col.Counts, counts)
		col.Abundance = append(col.Abundance, tpm)
	}

	return col, nil
}
