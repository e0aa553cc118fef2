package quant

import (
	"errors"
	"strings"
	"testing"
)

func TestDiscoverSortsMatches(t *testing.T) {
	paths, err := Discover("testdata", "t_data.ctab")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("found %d files, want 2: %v", len(paths), paths)
	}
	if !strings.Contains(paths[0], "NA12878") || !strings.Contains(paths[1], "NA24385") {
		t.Errorf("paths are not sorted by sample: %v", paths)
	}
}

func TestDiscoverNoMatches(t *testing.T) {
	_, err := Discover("testdata", "*.bam")

	var nfe NoFilesFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected a NoFilesFoundError, got %v", err)
	}
	if nfe.Pattern != "*.bam" {
		t.Errorf("Pattern = %q, want *.bam", nfe.Pattern)
	}
}
