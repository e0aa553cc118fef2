package quantcomp

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		name string
		sig  []byte
		want Compression
	}{
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00}, GzipCompression},
		{"zip", []byte{0x50, 0x4b, 0x03, 0x04, 0x14, 0x00}, ZipCompression},
		{"xz", []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, XZCompression},
		{"bzip2", []byte{0x42, 0x5a, 0x68, 0x39, 0x31, 0x41}, BZip2Compression},
		{"tsv header", []byte("target"), NoCompression},
		{"short prefix", []byte{0x1f, 0x8b}, NoCompression},
		{"empty", nil, NoCompression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCompression(tt.sig); got != tt.want {
				t.Errorf("DetectCompression = %d, want %d", got, tt.want)
			}
		})
	}
}

// Compression is recognized from the stream itself, so a gzipped file is
// decompressed even when its name does not say .gz.
func TestOpenGzipWithoutExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abundance.tsv")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte("target_id\ttpm\nACTB-201\t99.0\n")); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("closing gzip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing fixture: %v", err)
	}

	r, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open(%s): %v", path, err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	if string(got) != "target_id\ttpm\nACTB-201\t99.0\n" {
		t.Errorf("read back %q", got)
	}
}

func TestOpenZipReadsFirstEntry(t *testing.T) {
	const content = "gene_id\tTPM\nTP53\t41.2\n"

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("genes.results")
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("writing zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}

	path := filepath.Join(t.TempDir(), "genes.results.zip")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	r, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open(%s): %v", path, err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	if string(got) != content {
		t.Errorf("read back %q", got)
	}
}

func TestDecompressPassthroughShortStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.tsv")
	if err := os.WriteFile(path, []byte("hi"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	r, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open(%s): %v", path, err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	if string(got) != "hi" {
		t.Errorf("read back %q", got)
	}
}
