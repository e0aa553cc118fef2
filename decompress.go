package quantcomp

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type Compression byte

const (
	NoCompression Compression = iota
	GzipCompression
	ZipCompression
	XZCompression
	BZip2Compression
)

// Magic numbers from https://stackoverflow.com/a/19127748/199475
var compressionSigs = map[Compression][]byte{
	GzipCompression:  {0x1f, 0x8b, 0x08},
	ZipCompression:   {0x50, 0x4b, 0x03, 0x04},
	XZCompression:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	BZip2Compression: {0x42, 0x5a, 0x68},
}

// DetectCompression matches sig against the magic numbers of the supported
// codecs. sig should hold the first 6 bytes of the stream; a shorter prefix
// can only match the codecs whose magic fits within it.
func DetectCompression(sig []byte) Compression {
	for compression, magic := range compressionSigs {
		if bytes.HasPrefix(sig, magic) {
			return compression
		}
	}

	return NoCompression
}

// Decompress sniffs the leading bytes of rc and, when a known compression
// signature is found, layers the matching decompressor on top. The sniffed
// bytes are buffered rather than rewound, so rc does not need to be seekable
// and network streams work as well as files. For zip archives, the stream is
// positioned at the first entry. Closing the returned reader closes rc; on
// error, rc has already been closed.
func Decompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	sig, err := br.Peek(6)
	if err != nil && err != io.EOF {
		rc.Close()
		return nil, pfx.Err(err)
	}

	switch DetectCompression(sig) {
	case GzipCompression:
		gz, err := gzip.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, pfx.Err(err)
		}
		return &decompressReadCloser{layer: gz, raw: rc}, nil
	case ZipCompression:
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			rc.Close()
			return nil, pfx.Err(err)
		}
		return &decompressReadCloser{layer: zr, raw: rc}, nil
	case BZip2Compression:
		return &decompressReadCloser{layer: bzip2.NewReader(br), raw: rc}, nil
	case XZCompression:
		xr, err := xz.NewReader(br, 0)
		if err != nil {
			rc.Close()
			return nil, pfx.Err(err)
		}
		return &decompressReadCloser{layer: xr, raw: rc}, nil
	}

	// No signature matched, so the stream is assumed to be uncompressed. The
	// buffered reader stays in place because it already holds the sniffed
	// bytes.
	return &decompressReadCloser{layer: br, raw: rc}, nil
}

// decompressReadCloser reads from the decompression layer and closes both it
// and the raw stream beneath it.
type decompressReadCloser struct {
	layer io.Reader
	raw   io.ReadCloser
}

func (d *decompressReadCloser) Read(p []byte) (int, error) {
	return d.layer.Read(p)
}

func (d *decompressReadCloser) Close() error {
	if c, ok := d.layer.(io.Closer); ok {
		if err := c.Close(); err != nil {
			d.raw.Close()
			return err
		}
	}

	return d.raw.Close()
}
