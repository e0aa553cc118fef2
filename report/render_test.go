package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/quantcomp/quant"
	"github.com/carbocation/quantcomp/quantcorr"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestBoxplotWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "correlations_boxplot.png")

	if err := Boxplot(fourSampleResults(), path); err != nil {
		t.Fatalf("Boxplot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading the figure: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("the figure is not a PNG")
	}
}

func abundanceTable(t *testing.T, name string, features []string, abundance []float64) *quant.Table {
	t.Helper()

	lengths := make([]float64, len(features))
	counts := make([]float64, len(features))
	for i := range features {
		lengths[i] = 1000
		counts[i] = abundance[i]
	}

	table := quant.NewTable(name, quant.GeneLevel)
	err := table.AddSample(quant.Column{
		Sample:    "S1",
		Path:      name + "/S1",
		Features:  features,
		Counts:    counts,
		Abundance: abundance,
		Lengths:   lengths,
	})
	if err != nil {
		t.Fatalf("building table %s: %v", name, err)
	}

	return table
}

func TestScatterLog1pWritesPNG(t *testing.T) {
	genes := []string{"G1", "G2", "G3", "G4"}
	a := abundanceTable(t, "rsem", genes, []float64{0, 150000, 250000, 600000})
	b := abundanceTable(t, "kallisto", genes, []float64{10, 140000, 260000, 599950})

	var buf bytes.Buffer
	if err := ScatterLog1p(a, b, "S1", &buf); err != nil {
		t.Fatalf("ScatterLog1p: %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("the figure is not a PNG")
	}
}

func TestScatterLog1pUnknownSample(t *testing.T) {
	genes := []string{"G1", "G2"}
	a := abundanceTable(t, "rsem", genes, []float64{1, 2})
	b := abundanceTable(t, "kallisto", genes, []float64{2, 1})

	var buf bytes.Buffer
	err := ScatterLog1p(a, b, "S99", &buf)

	var sme quantcorr.SampleMismatchError
	if !errors.As(err, &sme) {
		t.Fatalf("expected a SampleMismatchError, got %v", err)
	}
}

func TestScatterLog1pDisjointFeatures(t *testing.T) {
	a := abundanceTable(t, "rsem", []string{"G1", "G2"}, []float64{1, 2})
	b := abundanceTable(t, "kallisto", []string{"H1", "H2"}, []float64{2, 1})

	var buf bytes.Buffer
	err := ScatterLog1p(a, b, "S1", &buf)

	var eie quantcorr.EmptyIntersectionError
	if !errors.As(err, &eie) {
		t.Fatalf("expected an EmptyIntersectionError, got %v", err)
	}
}
