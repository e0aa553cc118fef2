package quantcorr

import (
	"fmt"
	"strings"
)

// EmptyIntersectionError reports tables that share no feature IDs at all,
// which usually means they were quantified against different annotations or
// aggregated to different levels.
type EmptyIntersectionError struct {
	Sources []string
}

func (e EmptyIntersectionError) Error() string {
	return fmt.Sprintf("the quantification sources %s share no feature IDs; check that they used the same annotation and aggregation level",
		strings.Join(e.Sources, ", "))
}

// SampleMismatchError reports a sample that is present in one table but
// absent from another. Comparing the remaining samples silently would hide a
// truncated or misnamed run, so the mismatch is fatal.
type SampleMismatchError struct {
	Sample      string
	PresentIn   string
	MissingFrom string
}

func (e SampleMismatchError) Error() string {
	return fmt.Sprintf("sample %s is present in %s but absent from %s", e.Sample, e.PresentIn, e.MissingFrom)
}
