// Package tpm converts raw quantification values into transcripts per
// million, the common scale on which results from different quantifiers can
// be compared. It also derives read counts for tools that report per-base
// coverage instead of counts.
package tpm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/carbocation/quantcomp/quant"
)

const perMillion = 1e6

// Normalize fills in the abundance plane of t with TPM computed from its
// counts and lengths. Each count is divided by its feature's length in
// kilobases to give a per-kilobase rate, and the rates are then scaled so
// that every sample column sums to one million. Tools that report TPM
// natively (RSEM, kallisto) do not need this; StringTie tables do, after
// DeriveCounts has run.
func Normalize(t *quant.Table) error {
	for si, sample := range t.Samples {
		if err := checkLengths(t, si, sample); err != nil {
			return err
		}

		rpk := make([]float64, t.NFeatures())
		for fi, count := range t.Counts[si] {
			rpk[fi] = count / (t.Lengths[si][fi] / 1000)
		}

		scale := floats.Sum(rpk) / perMillion
		if scale == 0 || math.IsNaN(scale) {
			return DegenerateSampleError{Table: t.Name, Sample: sample}
		}

		floats.Scale(1/scale, rpk)
		t.Abundance[si] = rpk
	}

	return nil
}

// DeriveCounts fills in the counts plane of a table whose loader supplied
// per-base read coverage instead of counts (StringTie). Coverage times
// feature length recovers the number of sequenced bases attributed to the
// feature, and dividing by the sequencing read length converts bases to
// reads:
//
//	counts = coverage * length / readLength
//
// readLength is a property of the sequencing run, not of the quantifier
// output, so it must be supplied by the caller and must be positive.
func DeriveCounts(t *quant.Table, readLength float64) error {
	if readLength <= 0 || math.IsNaN(readLength) || math.IsInf(readLength, 0) {
		return fmt.Errorf("%s: read length must be a positive number of bases, got %v", t.Name, readLength)
	}
	if t.Coverage == nil {
		return fmt.Errorf("%s: the table carries no coverage plane to derive counts from", t.Name)
	}

	for si, sample := range t.Samples {
		if err := checkLengths(t, si, sample); err != nil {
			return err
		}

		counts := make([]float64, t.NFeatures())
		for fi, cov := range t.Coverage[si] {
			counts[fi] = cov * t.Lengths[si][fi] / readLength
		}
		t.Counts[si] = counts
	}

	return nil
}

func checkLengths(t *quant.Table, si int, sample string) error {
	for fi, l := range t.Lengths[si] {
		if l <= 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			return InvalidLengthError{Table: t.Name, Sample: sample, Feature: t.Features[fi], Length: l}
		}
	}

	return nil
}
