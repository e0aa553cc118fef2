package quant

import (
	"errors"
	"testing"
)

func TestAddSampleAlignsByFeatureID(t *testing.T) {
	table := NewTable("rsem", GeneLevel)

	err := table.AddSample(Column{
		Sample:    "S1",
		Path:      "s1.genes.results",
		Features:  []string{"ACTB", "GAPDH", "TP53"},
		Counts:    []float64{1, 2, 3},
		Abundance: []float64{10, 20, 30},
		Lengths:   []float64{100, 200, 300},
	})
	if err != nil {
		t.Fatalf("adding the first sample: %v", err)
	}

	// Same feature set, reversed file order. Values must land on the rows
	// established by S1, not on file positions.
	err = table.AddSample(Column{
		Sample:    "S2",
		Path:      "s2.genes.results",
		Features:  []string{"TP53", "GAPDH", "ACTB"},
		Counts:    []float64{33, 22, 11},
		Abundance: []float64{330, 220, 110},
		Lengths:   []float64{300, 200, 100},
	})
	if err != nil {
		t.Fatalf("adding the second sample: %v", err)
	}

	wantCounts := []float64{11, 22, 33}
	wantAbundance := []float64{110, 220, 330}
	for i := range wantCounts {
		if table.Counts[1][i] != wantCounts[i] {
			t.Errorf("Counts[1][%d] = %v, want %v", i, table.Counts[1][i], wantCounts[i])
		}
		if table.Abundance[1][i] != wantAbundance[i] {
			t.Errorf("Abundance[1][%d] = %v, want %v", i, table.Abundance[1][i], wantAbundance[i])
		}
	}
}

func TestAddSampleRejectsInconsistentFeatures(t *testing.T) {
	table := NewTable("kallisto", TranscriptLevel)

	err := table.AddSample(Column{
		Sample:    "S1",
		Path:      "S1/abundance.tsv",
		Features:  []string{"ACTB-201", "GAPDH-201"},
		Counts:    []float64{1, 2},
		Abundance: []float64{10, 20},
		Lengths:   []float64{100, 200},
	})
	if err != nil {
		t.Fatalf("adding the first sample: %v", err)
	}

	err = table.AddSample(Column{
		Sample:    "S2",
		Path:      "S2/abundance.tsv",
		Features:  []string{"ACTB-201", "MYC-201"},
		Counts:    []float64{1, 2},
		Abundance: []float64{10, 20},
		Lengths:   []float64{100, 200},
	})

	var ife InconsistentFeatureSetError
	if !errors.As(err, &ife) {
		t.Fatalf("expected an InconsistentFeatureSetError, got %v", err)
	}
	if ife.MissingN != 1 || ife.Missing != "GAPDH-201" {
		t.Errorf("missing = %d (%q), want 1 (GAPDH-201)", ife.MissingN, ife.Missing)
	}
	if ife.ExtraN != 1 || ife.Extra != "MYC-201" {
		t.Errorf("extra = %d (%q), want 1 (MYC-201)", ife.ExtraN, ife.Extra)
	}

	if table.NSamples() != 1 {
		t.Errorf("a rejected sample must not be appended; have %d samples", table.NSamples())
	}
}

func TestAddSampleRejectsDuplicateSample(t *testing.T) {
	table := NewTable("rsem", GeneLevel)

	col := Column{
		Sample:    "S1",
		Path:      "first/s1.genes.results",
		Features:  []string{"ACTB"},
		Counts:    []float64{1},
		Abundance: []float64{10},
		Lengths:   []float64{100},
	}
	if err := table.AddSample(col); err != nil {
		t.Fatalf("adding the first sample: %v", err)
	}

	col.Path = "second/s1.genes.results"
	err := table.AddSample(col)

	var dse DuplicateSampleError
	if !errors.As(err, &dse) {
		t.Fatalf("expected a DuplicateSampleError, got %v", err)
	}
	if dse.PriorPath != "first/s1.genes.results" {
		t.Errorf("PriorPath = %q", dse.PriorPath)
	}
}

func TestAddSampleRejectsDuplicateFeature(t *testing.T) {
	table := NewTable("rsem", GeneLevel)

	err := table.AddSample(Column{
		Sample:    "S1",
		Path:      "s1.genes.results",
		Features:  []string{"ACTB", "ACTB"},
		Counts:    []float64{1, 2},
		Abundance: []float64{10, 20},
		Lengths:   []float64{100, 200},
	})
	if err == nil {
		t.Fatal("expected an error for a repeated feature ID")
	}
}
