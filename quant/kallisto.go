package quant

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/carbocation/quantcomp"
)

// kallistoRow mirrors one line of a kallisto abundance.tsv.
type kallistoRow struct {
	TargetID  string  `csv:"target_id"`
	Length    float64 `csv:"length"`
	EffLength float64 `csv:"eff_length"`
	EstCounts float64 `csv:"est_counts"`
	TPM       float64 `csv:"tpm"`
}

// KallistoLoader reads kallisto abundance.tsv files, one per sample
// directory. kallisto reports TPM natively, so tables it loads need no
// further normalization.
type KallistoLoader struct {
	// Pattern defaults to abundance.tsv; override it for gzipped runs
	// (abundance.tsv.gz).
	Pattern string

	// SampleID defaults to SampleIDFromDir, because every abundance.tsv
	// has the same base name.
	SampleID SampleIDFunc
}

// Load discovers and parses every matching abundance file under root. The
// returned table is always transcript-level; gene-level views are produced
// by Aggregate with a transcript-to-gene map.
func (l KallistoLoader) Load(root string) (*Table, error) {
	pattern := l.Pattern
	if pattern == "" {
		pattern = "abundance.tsv"
	}

	sampleID := l.SampleID
	if sampleID == nil {
		sampleID = SampleIDFromDir
	}

	paths, err := Discover(root, pattern)
	if err != nil {
		return nil, err
	}

	t := NewTable(string(Kallisto), TranscriptLevel)
	for _, path := range paths {
		sample, err := sampleID(path)
		if err != nil {
			return nil, pfx.Err(err)
		}

		col, err := readKallistoFile(path)
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

func readKallistoFile(path string) (Column, error) {
	f, err := quantcomp.Open(path, nil)
	if err != nil {
		return Column{}, pfx.Err(err)
	}
	defer f.Close()

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		r.LazyQuotes = true

		return r
	})

	var rows []*kallistoRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return Column{}, pfx.Err(err)
	}

	col := Column{Path: path}
	for _, row := range rows {
		col.Features = append(col.Features, row.TargetID)
		col.Lengths = append(col.Lengths, row.Length)
		col.Counts = append(col.Counts, row.EstCounts)
		col.Abundance = append(col.Abundance, row.TPM)
	}

	return col, nil
}
