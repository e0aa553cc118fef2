package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/carbocation/pfx"
)

// Options collects every runtime setting for a comparison run. Each field
// can come from the JSON config file, and any flag that was set on the
// command line overrides the file.
type Options struct {
	RSEMPath      string `json:"rsem"`
	StringTiePath string `json:"stringtie"`
	KallistoPath  string `json:"kallisto"`

	// Level is "gene" or "transcript".
	Level string `json:"level"`

	// T2GPath points to a transcript-to-gene file for gene-level
	// aggregation. When empty and a StringTie directory is available, the
	// mapping is derived from the first discovered t_data.ctab instead.
	T2GPath string `json:"transcript_gene_map"`

	// ReadLength is the sequencing read length in bases, required to
	// derive counts from StringTie coverage.
	ReadLength float64 `json:"read_length"`

	// SampleRegex overrides the per-tool sample naming conventions.
	SampleRegex string `json:"sample_regex"`

	RSEMPattern      string `json:"rsem_pattern"`
	StringTiePattern string `json:"stringtie_pattern"`
	KallistoPattern  string `json:"kallisto_pattern"`

	OutDir  string `json:"out"`
	NoPlots bool   `json:"no_plots"`
}

func ParseJSONConfigFromPath(path string) (Options, error) {
	var out Options

	f, err := os.Open(path)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}

		return out, pfx.Err(err)
	}

	return out, nil
}
