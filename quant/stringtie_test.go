package quant

import (
	"path/filepath"
	"testing"
)

func TestStringTieLoader(t *testing.T) {
	table, err := StringTieLoader{}.Load(filepath.Join("testdata", "stringtie"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if table.Name != "stringtie" {
		t.Errorf("Name = %q, want stringtie", table.Name)
	}
	if table.Level != TranscriptLevel {
		t.Errorf("Level = %q, want transcript", table.Level)
	}

	wantSamples := []string{"NA12878", "NA24385"}
	if table.NSamples() != len(wantSamples) {
		t.Fatalf("loaded %d samples, want %d", table.NSamples(), len(wantSamples))
	}
	for i, want := range wantSamples {
		if table.Samples[i] != want {
			t.Errorf("Samples[%d] = %q, want %q", i, table.Samples[i], want)
		}
	}

	if table.NFeatures() != 7 {
		t.Fatalf("loaded %d transcripts, want 7", table.NFeatures())
	}
	if table.Features[0] != "ACTB-201" || table.Features[6] != "TP53-201" {
		t.Errorf("unexpected feature ordering: %v", table.Features)
	}

	if table.Coverage == nil {
		t.Fatal("the coverage plane must be populated")
	}

	si, _ := table.SampleIndex("NA12878")
	fi, _ := table.FeatureIndex("ACTB-201")
	if got := table.Coverage[si][fi]; got != 45.0 {
		t.Errorf("NA12878 ACTB-201 cov = %v, want 45", got)
	}
	if got := table.Lengths[si][fi]; got != 1852 {
		t.Errorf("NA12878 ACTB-201 length = %v, want 1852", got)
	}

	// Counts and abundance stay zero until they are derived.
	if table.Counts[si][fi] != 0 || table.Abundance[si][fi] != 0 {
		t.Errorf("counts/abundance = %v/%v before derivation, want zeros",
			table.Counts[si][fi], table.Abundance[si][fi])
	}
}

func TestTranscriptGeneMapFromCtab(t *testing.T) {
	m, err := TranscriptGeneMapFromCtab(filepath.Join("testdata", "stringtie", "NA12878_rep1", "t_data.ctab"))
	if err != nil {
		t.Fatalf("TranscriptGeneMapFromCtab: %v", err)
	}

	if len(m) != 7 {
		t.Fatalf("mapped %d transcripts, want 7", len(m))
	}
	if m["GAPDH-202"] != "GAPDH" {
		t.Errorf("GAPDH-202 maps to %q, want GAPDH", m["GAPDH-202"])
	}
	if m["TP53-201"] != "TP53" {
		t.Errorf("TP53-201 maps to %q, want TP53", m["TP53-201"])
	}
}
