package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"

	"github.com/carbocation/quantcomp/quant"
	"github.com/carbocation/quantcomp/quantcorr"
	"github.com/carbocation/quantcomp/report"
	"github.com/carbocation/quantcomp/tpm"
)

func runAll(opts Options) error {
	var sampleID quant.SampleIDFunc
	if opts.SampleRegex != "" {
		re, err := regexp.Compile(opts.SampleRegex)
		if err != nil {
			return pfx.Err(fmt.Errorf("-sample-regex: %w", err))
		}
		sampleID = quant.SampleIDFromPattern(re)
	}

	level := quant.Level(opts.Level)

	var t2g quant.TranscriptGeneMap
	if level == quant.GeneLevel && (opts.StringTiePath != "" || opts.KallistoPath != "") {
		var err error
		t2g, err = resolveTranscriptGeneMap(opts)
		if err != nil {
			return err
		}
		log.Println("Transcript-gene map covers", len(t2g), "transcripts")
	}

	var tables []*quant.Table

	if opts.RSEMPath != "" {
		log.Println("Loading RSEM", opts.Level+"-level results from", opts.RSEMPath)

		t, err := quant.RSEMLoader{Level: level, Pattern: opts.RSEMPattern, SampleID: sampleID}.Load(opts.RSEMPath)
		if err != nil {
			return err
		}

		log.Println("RSEM:", t.NFeatures(), "features x", t.NSamples(), "samples")
		tables = append(tables, t)
	}

	if opts.StringTiePath != "" {
		log.Println("Loading StringTie coverage tables from", opts.StringTiePath)

		t, err := quant.StringTieLoader{Pattern: opts.StringTiePattern, SampleID: sampleID}.Load(opts.StringTiePath)
		if err != nil {
			return err
		}

		log.Printf("Deriving StringTie counts from coverage at read length %g", opts.ReadLength)
		if err := tpm.DeriveCounts(t, opts.ReadLength); err != nil {
			return err
		}

		if level == quant.GeneLevel {
			if t, err = quant.Aggregate(t, t2g, quant.RederiveAbundance); err != nil {
				return err
			}
		}

		if err := tpm.Normalize(t); err != nil {
			return err
		}

		log.Println("StringTie:", t.NFeatures(), "features x", t.NSamples(), "samples")
		tables = append(tables, t)
	}

	if opts.KallistoPath != "" {
		log.Println("Loading kallisto abundance tables from", opts.KallistoPath)

		t, err := quant.KallistoLoader{Pattern: opts.KallistoPattern, SampleID: sampleID}.Load(opts.KallistoPath)
		if err != nil {
			return err
		}

		if level == quant.GeneLevel {
			// kallisto tables already hold TPM, and gene TPM is the
			// sum of the member transcripts' TPM.
			if t, err = quant.Aggregate(t, t2g, quant.SumAbundance); err != nil {
				return err
			}
		}

		log.Println("kallisto:", t.NFeatures(), "features x", t.NSamples(), "samples")
		tables = append(tables, t)
	}

	log.Println("Correlating", len(tables), "quantification sources")

	results, err := quantcorr.Compare(tables)
	if err != nil {
		return err
	}

	log.Println("Computed", len(results), "correlation coefficients")

	if err := writeOutputs(opts, tables, results); err != nil {
		return err
	}

	return printTerminalSummary(results)
}

// resolveTranscriptGeneMap prefers an explicit -t2g file and otherwise
// derives the mapping from the first discovered t_data.ctab, since every
// sample shares the same annotation.
func resolveTranscriptGeneMap(opts Options) (quant.TranscriptGeneMap, error) {
	if opts.T2GPath != "" {
		var client *storage.Client
		if strings.HasPrefix(opts.T2GPath, "gs://") {
			var err error
			client, err = storage.NewClient(context.Background())
			if err != nil {
				return nil, pfx.Err(err)
			}
		}

		log.Println("Reading transcript-gene map from", opts.T2GPath)

		return quant.ReadTranscriptGeneMap(opts.T2GPath, client)
	}

	if opts.StringTiePath != "" {
		pattern := opts.StringTiePattern
		if pattern == "" {
			pattern = "t_data.ctab"
		}

		paths, err := quant.Discover(opts.StringTiePath, pattern)
		if err != nil {
			return nil, err
		}

		log.Println("Deriving transcript-gene map from", paths[0])

		return quant.TranscriptGeneMapFromCtab(paths[0])
	}

	return nil, fmt.Errorf("gene-level aggregation needs -t2g, or a -stringtie directory to derive the mapping from")
}

func writeOutputs(opts Options, tables []*quant.Table, results []quantcorr.Result) error {
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return pfx.Err(err)
	}

	long := filepath.Join(opts.OutDir, "correlations.csv")
	if err := writeFile(long, func(f *os.File) error { return report.WriteLong(f, results) }); err != nil {
		return err
	}
	log.Println("Wrote", long)

	pivot := filepath.Join(opts.OutDir, "correlations_pivot.tsv")
	if err := writeFile(pivot, func(f *os.File) error { return report.WritePivot(f, results) }); err != nil {
		return err
	}
	log.Println("Wrote", pivot)

	summary := filepath.Join(opts.OutDir, "correlation_summary.csv")
	if err := writeFile(summary, func(f *os.File) error { return report.WriteSummary(f, results) }); err != nil {
		return err
	}
	log.Println("Wrote", summary)

	boxplot := filepath.Join(opts.OutDir, "correlations_boxplot.png")
	if err := report.Boxplot(results, boxplot); err != nil {
		return err
	}
	log.Println("Wrote", boxplot)

	if opts.NoPlots {
		return nil
	}

	rendered := 0
	for a := 0; a < len(tables); a++ {
		for b := a + 1; b < len(tables); b++ {
			for _, sample := range tables[a].Samples {
				name := fmt.Sprintf("scatter_%s_vs_%s_%s.png", tables[a].Name, tables[b].Name, sample)
				path := filepath.Join(opts.OutDir, name)

				err := writeFile(path, func(f *os.File) error {
					return report.ScatterLog1p(tables[a], tables[b], sample, f)
				})
				if err != nil {
					return err
				}
				rendered++
			}
		}
	}
	log.Println("Wrote", rendered, "scatter plots to", opts.OutDir)

	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return pfx.Err(f.Close())
}

// printTerminalSummary gives a quick read on agreement without opening any
// output file: one five-number line per comparison and a histogram of all
// coefficients.
func printTerminalSummary(results []quantcorr.Result) error {
	summaries, err := report.Summarize(results)
	if err != nil {
		return err
	}

	for _, s := range summaries {
		fmt.Printf("%s\tn=%d\tmin=%.4f\tq1=%.4f\tmedian=%.4f\tq3=%.4f\tmax=%.4f\n",
			s.Pair, s.N, s.Min, s.Q1, s.Median, s.Q3, s.Max)
	}

	rhos := make([]float64, 0, len(results))
	for _, r := range results {
		rhos = append(rhos, r.Rho)
	}

	hist := histogram.Hist(10, rhos)

	return histogram.Fprint(os.Stdout, hist, histogram.Linear(40))
}
