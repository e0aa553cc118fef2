package tpm

import "fmt"

// InvalidLengthError reports a feature length that cannot participate in
// normalization. Lengths must be positive and finite; a zero length usually
// means the annotation row was never quantified, and skipping it silently
// would corrupt the scaling of every other feature in the sample.
type InvalidLengthError struct {
	Table   string
	Sample  string
	Feature string
	Length  float64
}

func (e InvalidLengthError) Error() string {
	return fmt.Sprintf("%s: sample %s: feature %s has invalid length %v", e.Table, e.Sample, e.Feature, e.Length)
}

// DegenerateSampleError reports a sample whose scaling factor is zero, that
// is, one with no nonzero counts at all. TPM is undefined for such a sample
// and correlating it would be meaningless.
type DegenerateSampleError struct {
	Table  string
	Sample string
}

func (e DegenerateSampleError) Error() string {
	return fmt.Sprintf("%s: sample %s has no nonzero counts, so TPM is undefined", e.Table, e.Sample)
}
