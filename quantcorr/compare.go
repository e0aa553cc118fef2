package quantcorr

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/carbocation/pfx"

	"github.com/carbocation/quantcomp/quant"
)

// Result is one Spearman coefficient: one sample, one unordered pair of
// quantification sources, correlated over the N features shared by all
// compared tables.
type Result struct {
	Sample  string  `csv:"sample"`
	SourceA string  `csv:"source_a"`
	SourceB string  `csv:"source_b"`
	N       int     `csv:"n_features"`
	Rho     float64 `csv:"rho"`
}

// Pair returns a stable label for the comparison, e.g. "rsem_vs_kallisto".
func (r Result) Pair() string {
	return r.SourceA + "_vs_" + r.SourceB
}

// Compare computes the Spearman correlation of abundance for every sample
// and every pair of tables, over the feature IDs common to all tables. The
// tables must carry identical sample sets; vectors are aligned by feature
// ID, never by row position. Results are ordered by sample and then by table
// pair, so repeated runs produce identical output.
func Compare(tables []*quant.Table) ([]Result, error) {
	if len(tables) < 2 {
		return nil, fmt.Errorf("need at least 2 quantification sources to compare, got %d", len(tables))
	}

	names := make([]string, len(tables))
	for i, t := range tables {
		for j := 0; j < i; j++ {
			if tables[j].Name == t.Name {
				return nil, fmt.Errorf("two tables are both named %q; sources must be distinct", t.Name)
			}
		}
		names[i] = t.Name
	}

	if err := checkSamples(tables); err != nil {
		return nil, err
	}

	shared, rows := sharedFeatures(tables)
	if len(shared) == 0 {
		return nil, EmptyIntersectionError{Sources: names}
	}

	samples := tables[0].Samples
	perSample := make([][]Result, len(samples))
	errs := make([]error, len(samples))

	// Samples are independent, so fan out across them with a bounded
	// number of workers.
	concurrency := runtime.NumCPU()
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for si, sample := range samples {
		wg.Add(1)
		sem <- struct{}{}

		go func(si int, sample string) {
			defer wg.Done()
			defer func() { <-sem }()

			perSample[si], errs[si] = compareSample(tables, rows, len(shared), sample)
		}(si, sample)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var out []Result
	for _, results := range perSample {
		out = append(out, results...)
	}

	return out, nil
}

// checkSamples verifies that every table carries exactly the same sample
// set.
func checkSamples(tables []*quant.Table) error {
	first := tables[0]
	for _, t := range tables[1:] {
		for _, s := range first.Samples {
			if _, ok := t.SampleIndex(s); !ok {
				return SampleMismatchError{Sample: s, PresentIn: first.Name, MissingFrom: t.Name}
			}
		}
		for _, s := range t.Samples {
			if _, ok := first.SampleIndex(s); !ok {
				return SampleMismatchError{Sample: s, PresentIn: t.Name, MissingFrom: first.Name}
			}
		}
	}

	return nil
}

// sharedFeatures returns the feature IDs present in every table, in the
// first table's order, along with each table's row position for each shared
// feature.
func sharedFeatures(tables []*quant.Table) ([]string, [][]int) {
	var shared []string

	rows := make([][]int, len(tables))
	positions := make([]int, len(tables))

	for fi, f := range tables[0].Features {
		inAll := true
		positions[0] = fi
		for ti, t := range tables[1:] {
			at, ok := t.FeatureIndex(f)
			if !ok {
				inAll = false
				break
			}
			positions[ti+1] = at
		}
		if !inAll {
			continue
		}

		shared = append(shared, f)
		for ti := range tables {
			rows[ti] = append(rows[ti], positions[ti])
		}
	}

	return shared, rows
}

// compareSample extracts the sample's abundance vector from each table,
// restricted to the shared features, and correlates every pair.
func compareSample(tables []*quant.Table, rows [][]int, n int, sample string) ([]Result, error) {
	vectors := make([][]float64, len(tables))
	for ti, t := range tables {
		ci, ok := t.SampleIndex(sample)
		if !ok {
			return nil, SampleMismatchError{Sample: sample, PresentIn: tables[0].Name, MissingFrom: t.Name}
		}

		column := t.Abundance[ci]
		vec := make([]float64, n)
		for k, row := range rows[ti] {
			vec[k] = column[row]
		}
		vectors[ti] = vec
	}

	var out []Result
	for a := 0; a < len(tables); a++ {
		for b := a + 1; b < len(tables); b++ {
			rho, err := Spearman(vectors[a], vectors[b])
			if err != nil {
				return nil, pfx.Err(fmt.Errorf("sample %s, %s vs %s: %w", sample, tables[a].Name, tables[b].Name, err))
			}

			out = append(out, Result{
				Sample:  sample,
				SourceA: tables[a].Name,
				SourceB: tables[b].Name,
				N:       n,
				Rho:     rho,
			})
		}
	}

	return out, nil
}
