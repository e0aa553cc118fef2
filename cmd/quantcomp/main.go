// quantcomp compares RNA-seq quantifications of the same samples produced by
// different tools (RSEM, StringTie, kallisto). It loads each tool's per-sample
// result files, brings every source onto the TPM scale, computes the Spearman
// rank correlation between each pair of tools for every sample, and writes
// correlation tables and figures into the output directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/carbocation/quantcomp/compileinfoprint"
	"github.com/carbocation/quantcomp/quant"
)

func main() {
	fmt.Fprintf(os.Stderr, "%q\n", os.Args)

	var configPath string
	var opts Options

	flag.StringVar(&configPath, "config", "", "(Optional) JSON config file; flags that are set override its values.")
	rsemPath := flag.String("rsem", "", "Directory containing RSEM *.genes.results / *.isoforms.results files, one per sample.")
	stringtiePath := flag.String("stringtie", "", "Directory containing StringTie ballgown output, one t_data.ctab per sample directory.")
	kallistoPath := flag.String("kallisto", "", "Directory containing kallisto output, one abundance.tsv per sample directory.")
	level := flag.String("level", "", "Comparison level: gene or transcript. Defaults to gene.")
	t2gPath := flag.String("t2g", "", "(Optional) Transcript-to-gene file for gene-level aggregation; derived from the first t_data.ctab when omitted.")
	readLength := flag.Float64("read-length", 0, "(Required with -stringtie) Sequencing read length in bases, used to derive counts from coverage.")
	sampleRegex := flag.String("sample-regex", "", "(Optional) Regular expression extracting the sample name from each result path; the first capture group wins.")
	rsemPattern := flag.String("rsem-pattern", "", "(Optional) Override the RSEM result file pattern.")
	stringtiePattern := flag.String("stringtie-pattern", "", "(Optional) Override the StringTie file pattern (default t_data.ctab).")
	kallistoPattern := flag.String("kallisto-pattern", "", "(Optional) Override the kallisto file pattern (default abundance.tsv).")
	outDir := flag.String("out", "", "Output directory for correlation tables and figures. Defaults to the current directory.")
	noPlots := flag.Bool("no-plots", false, "Skip rendering the per-sample scatter plots.")

	flag.Parse()

	if configPath != "" {
		var err error
		opts, err = ParseJSONConfigFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}
	}

	if *rsemPath != "" {
		opts.RSEMPath = *rsemPath
	}
	if *stringtiePath != "" {
		opts.StringTiePath = *stringtiePath
	}
	if *kallistoPath != "" {
		opts.KallistoPath = *kallistoPath
	}
	if *level != "" {
		opts.Level = *level
	}
	if *t2gPath != "" {
		opts.T2GPath = *t2gPath
	}
	if *readLength != 0 {
		opts.ReadLength = *readLength
	}
	if *sampleRegex != "" {
		opts.SampleRegex = *sampleRegex
	}
	if *rsemPattern != "" {
		opts.RSEMPattern = *rsemPattern
	}
	if *stringtiePattern != "" {
		opts.StringTiePattern = *stringtiePattern
	}
	if *kallistoPattern != "" {
		opts.KallistoPattern = *kallistoPattern
	}
	if *outDir != "" {
		opts.OutDir = *outDir
	}
	if *noPlots {
		opts.NoPlots = true
	}

	if opts.Level == "" {
		opts.Level = string(quant.GeneLevel)
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}

	sources := 0
	for _, dir := range []string{opts.RSEMPath, opts.StringTiePath, opts.KallistoPath} {
		if dir != "" {
			sources++
		}
	}
	if sources < 2 {
		fmt.Fprintln(os.Stderr, "At least two of -rsem, -stringtie, and -kallisto are required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	switch quant.Level(opts.Level) {
	case quant.GeneLevel, quant.TranscriptLevel:
	default:
		fmt.Fprintf(os.Stderr, "-level must be gene or transcript, not %q\n", opts.Level)
		flag.PrintDefaults()
		os.Exit(1)
	}

	if opts.StringTiePath != "" && opts.ReadLength <= 0 {
		fmt.Fprintln(os.Stderr, "-read-length is required with -stringtie: StringTie reports coverage, and counts cannot be derived without the run's read length")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := runAll(opts); err != nil {
		log.Fatalln(err)
	}
}
