package quant

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"

	"github.com/carbocation/quantcomp"
)

// TranscriptGeneMap associates transcript IDs with their parent genes. The
// annotation is shared across samples, so the map is conventionally derived
// from a single StringTie t_data.ctab (any sample) or read from a two-column
// file, and then reused to aggregate every transcript-level table.
type TranscriptGeneMap map[string]string

// TranscriptGeneMapFromCtab derives the mapping from one StringTie
// t_data.ctab (t_name to gene_id).
func TranscriptGeneMapFromCtab(path string) (TranscriptGeneMap, error) {
	_, t2g, err := readCtabFile(path)
	if err != nil {
		return nil, err
	}

	return t2g, nil
}

// ReadTranscriptGeneMap parses a transcript-to-gene file with two leading
// columns, transcript then gene, such as the output of cmd/tx2gene. The
// delimiter is sniffed, so both tab- and comma-separated files work, and a
// header row is skipped when the first field looks like a column name.
func ReadTranscriptGeneMap(path string, client *storage.Client) (TranscriptGeneMap, error) {
	f, err := quantcomp.Open(path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	// The mapping is small enough to hold in memory, which lets the
	// delimiter sniffer and the parser each read from the start.
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = quantcomp.DetermineDelimiter(bytes.NewReader(raw))
	r.FieldsPerRecord = -1

	t2g := make(TranscriptGeneMap)
	for i := 0; ; i++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(err)
		}

		if len(row) < 2 {
			return nil, fmt.Errorf("%s line %d: expected at least 2 columns, found %d", path, i+1, len(row))
		}

		if i == 0 && isTranscriptHeader(row[0]) {
			continue
		}

		transcript, gene := row[0], row[1]
		if prior, seen := t2g[transcript]; seen && prior != gene {
			return nil, fmt.Errorf("%s: transcript %s is assigned to both gene %s and gene %s", path, transcript, prior, gene)
		}
		t2g[transcript] = gene
	}

	if len(t2g) == 0 {
		return nil, fmt.Errorf("%s contains no transcript-to-gene pairs", path)
	}

	return t2g, nil
}

func isTranscriptHeader(field string) bool {
	switch strings.ToLower(field) {
	case "t_name", "transcript_id", "target_id", "transcript":
		return true
	}

	return false
}
