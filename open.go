package quantcomp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// Open opens a quantification input for sequential reading. Paths that start
// with gs:// are fetched from Google Storage with the provided client; all
// other paths are read from the local filesystem. Compressed files are
// decompressed transparently, detected by their leading magic bytes rather
// than by file extension.
func Open(path string, client *storage.Client) (io.ReadCloser, error) {
	raw, err := openRaw(path, client)
	if err != nil {
		return nil, err
	}

	dec, err := Decompress(raw)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return dec, nil
}

func openRaw(path string, client *storage.Client) (io.ReadCloser, error) {
	if strings.HasPrefix(path, "gs://") {
		if client == nil {
			return nil, fmt.Errorf("%s: a Google Storage path was given but no storage client is configured", path)
		}

		// Detect the bucket and the path to the actual file
		pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
		if len(pathParts) != 2 {
			return nil, fmt.Errorf("tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
		}

		handle := client.Bucket(pathParts[0]).Object(pathParts[1])

		rdr, err := handle.NewReader(context.Background())
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return rdr, nil
	}

	return os.Open(path)
}
