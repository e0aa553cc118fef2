package quant

import (
	"fmt"
)

// AggregatePolicy states what happens to the abundance plane when
// transcripts are rolled up to genes. Counts and lengths are always summed.
type AggregatePolicy int

const (
	// SumAbundance carries transcript abundance up to the gene by direct
	// summation. Valid when the table already holds TPM, because the TPM
	// of a gene is the sum of its members' TPM.
	SumAbundance AggregatePolicy = iota

	// RederiveAbundance zeroes the gene-level abundance so that it can be
	// recomputed from the aggregated counts and lengths. Required when
	// the transcript-level abundance is absent or not yet normalized.
	RederiveAbundance
)

// Aggregate rolls a transcript-level table up to the gene level using the
// provided transcript-to-gene map. Every transcript must have a mapping;
// an unmapped transcript means the map and the quantification were built
// from different annotations, and that is an error, not a row to drop.
// Gene order follows the first appearance of each gene among the
// transcripts, and the coverage plane, when present, does not survive
// aggregation.
func Aggregate(t *Table, t2g TranscriptGeneMap, policy AggregatePolicy) (*Table, error) {
	if t.Level != TranscriptLevel {
		return nil, fmt.Errorf("%s: cannot aggregate a %s-level table", t.Name, t.Level)
	}
	if len(t2g) == 0 {
		return nil, fmt.Errorf("%s: cannot aggregate with an empty transcript-to-gene map", t.Name)
	}

	genes := make([]string, 0, len(t2g))
	geneIdx := make(map[string]int, len(t2g))
	rowGene := make([]int, len(t.Features))
	for i, transcript := range t.Features {
		gene, ok := t2g[transcript]
		if !ok {
			return nil, fmt.Errorf("%s: transcript %s has no gene mapping; the map covers %d transcripts", t.Name, transcript, len(t2g))
		}

		gi, seen := geneIdx[gene]
		if !seen {
			gi = len(genes)
			geneIdx[gene] = gi
			genes = append(genes, gene)
		}
		rowGene[i] = gi
	}

	out := NewTable(t.Name, GeneLevel)
	for si, sample := range t.Samples {
		counts := make([]float64, len(genes))
		abundance := make([]float64, len(genes))
		lengths := make([]float64, len(genes))

		for ri := range t.Features {
			gi := rowGene[ri]
			counts[gi] += t.Counts[si][ri]
			lengths[gi] += t.Lengths[si][ri]
			if policy == SumAbundance {
				abundance[gi] += t.Abundance[si][ri]
			}
		}

		col := Column{
			Sample:    sample,
			Path:      t.Paths[si],
			Features:  genes,
			Counts:    counts,
			Abundance: abundance,
			Lengths:   lengths,
		}
		if err := out.AddSample(col); err != nil {
			return nil, err
		}
	}

	return out, nil
}
