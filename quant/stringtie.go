package quant

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/carbocation/pfx"

	"github.com/carbocation/quantcomp"
)

// StringTieLoader reads the ballgown t_data.ctab coverage tables that
// StringTie emits, one per sample directory. StringTie reports per-base
// coverage and FPKM but neither raw counts nor TPM, so tables it loads carry
// a coverage plane and zeroed counts and abundance; counts are derived from
// coverage and the sequencing read length, and TPM is computed from those
// counts, both by the tpm package.
type StringTieLoader struct {
	// Pattern defaults to t_data.ctab.
	Pattern string

	// SampleID defaults to SampleIDFromDir, because every t_data.ctab has
	// the same base name.
	SampleID SampleIDFunc
}

// Load discovers and parses every matching coverage table under root. The
// returned table is always transcript-level; gene-level views are produced
// by Aggregate after counts have been derived.
func (l StringTieLoader) Load(root string) (*Table, error) {
	pattern := l.Pattern
	if pattern == "" {
		pattern = "t_data.ctab"
	}

	sampleID := l.SampleID
	if sampleID == nil {
		sampleID = SampleIDFromDir
	}

	paths, err := Discover(root, pattern)
	if err != nil {
		return nil, err
	}

	t := NewTable(string(StringTie), TranscriptLevel)
	for _, path := range paths {
		sample, err := sampleID(path)
		if err != nil {
			return nil, pfx.Err(err)
		}

		col, _, err := readCtabFile(path)
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

// readCtabFile parses one t_data.ctab, returning both the quantification
// column and the transcript-to-gene pairing the file encodes. Transcript
// identity comes from t_name, which holds the annotation's transcript ID
// when StringTie runs with a reference annotation.
func readCtabFile(path string) (Column, TranscriptGeneMap, error) {
	f, err := quantcomp.Open(path, nil)
	if err != nil {
		return Column{}, nil, pfx.Err(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'

	col := Column{Path: path}
	t2g := make(TranscriptGeneMap)

	var fields map[string]int
	for i := 0; ; i++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return Column{}, nil, pfx.Err(err)
		}

		if i == 0 {
			fields, err = headerIndex(path, row, "t_name", "gene_id", "length", "cov")
			if err != nil {
				return Column{}, nil, err
			}
			continue
		}

		length, err := floatField(path, i+1, row, fields, "length")
		if err != nil {
			return Column{}, nil, err
		}
		cov, err := floatField(path, i+1, row, fields, "cov")
		if err != nil {
			return Column{}, nil, err
		}

		transcript := row[fields["t_name"]]
		gene := row[fields["gene_id"]]

		if prior, seen := t2g[transcript]; seen && prior != gene {
			return Column{}, nil, fmt.Errorf("%s: transcript %s is assigned to both gene %s and gene %s", path, transcript, prior, gene)
		}
		t2g[transcript] = gene

		col.Features = append(col.Features, transcript)
		col.Lengths = append(col.Lengths, length)
		col.Coverage = append(col.Coverage, cov)

		// Placeholders until counts are derived from coverage and TPM
		// from counts.
		col.Counts = append(col.Counts, 0)
		col.Abundance = append(col.Abundance, 0)
	}

	return col, t2g, nil
}
