// Package report renders comparison results for human consumption: flat and
// pivoted correlation tables, five-number summaries, and plots.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"

	"github.com/carbocation/quantcomp/quantcorr"
)

// WriteLong writes one CSV row per correlation result, in the order the
// comparator produced them.
func WriteLong(w io.Writer, results []quantcorr.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to write")
	}

	return pfx.Err(gocsv.Marshal(&results, w))
}

// WritePivot writes a samples-by-comparisons TSV of coefficients, the layout
// spreadsheet users expect. The comparator guarantees a full grid, so a
// missing cell is an error here, not an NA.
func WritePivot(w io.Writer, results []quantcorr.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to write")
	}

	pairs := pairOrder(results)
	samples := sampleOrder(results)

	cells := make(map[string]map[string]float64, len(samples))
	for _, r := range results {
		if cells[r.Sample] == nil {
			cells[r.Sample] = make(map[string]float64, len(pairs))
		}
		cells[r.Sample][r.Pair()] = r.Rho
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(append([]string{"sample"}, pairs...)); err != nil {
		return pfx.Err(err)
	}

	for _, sample := range samples {
		row := []string{sample}
		for _, pair := range pairs {
			rho, ok := cells[sample][pair]
			if !ok {
				return fmt.Errorf("no coefficient for sample %s and comparison %s", sample, pair)
			}
			row = append(row, strconv.FormatFloat(rho, 'f', 6, 64))
		}

		if err := cw.Write(row); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()

	return pfx.Err(cw.Error())
}

// PairSummary is the five-number summary of one comparison's coefficients
// across samples.
type PairSummary struct {
	Pair   string  `csv:"comparison"`
	N      int     `csv:"n_samples"`
	Min    float64 `csv:"min"`
	Q1     float64 `csv:"q1"`
	Median float64 `csv:"median"`
	Q3     float64 `csv:"q3"`
	Max    float64 `csv:"max"`
}

// Summarize reduces the per-sample coefficients of each comparison to a
// five-number summary, in the comparisons' first-appearance order.
func Summarize(results []quantcorr.Result) ([]PairSummary, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to summarize")
	}

	byPair := make(map[string][]float64)
	for _, r := range results {
		byPair[r.Pair()] = append(byPair[r.Pair()], r.Rho)
	}

	var summaries []PairSummary
	for _, pair := range pairOrder(results) {
		data := stats.Float64Data(byPair[pair])

		min, err := data.Min()
		if err != nil {
			return nil, pfx.Err(err)
		}
		max, err := data.Max()
		if err != nil {
			return nil, pfx.Err(err)
		}
		median, err := data.Median()
		if err != nil {
			return nil, pfx.Err(err)
		}
		quartiles, err := stats.Quartile(data)
		if err != nil {
			return nil, pfx.Err(err)
		}

		summaries = append(summaries, PairSummary{
			Pair:   pair,
			N:      data.Len(),
			Min:    min,
			Q1:     quartiles.Q1,
			Median: median,
			Q3:     quartiles.Q3,
			Max:    max,
		})
	}

	return summaries, nil
}

// WriteSummary writes Summarize's output as CSV.
func WriteSummary(w io.Writer, results []quantcorr.Result) error {
	summaries, err := Summarize(results)
	if err != nil {
		return err
	}

	return pfx.Err(gocsv.Marshal(&summaries, w))
}

// pairOrder returns the distinct comparison labels in first-appearance
// order.
func pairOrder(results []quantcorr.Result) []string {
	var pairs []string
	seen := make(map[string]bool)
	for _, r := range results {
		if p := r.Pair(); !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}

	return pairs
}

// sampleOrder returns the distinct sample names in first-appearance order.
func sampleOrder(results []quantcorr.Result) []string {
	var samples []string
	seen := make(map[string]bool)
	for _, r := range results {
		if !seen[r.Sample] {
			seen[r.Sample] = true
			samples = append(samples, r.Sample)
		}
	}

	return samples
}
