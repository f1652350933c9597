// Command deflatecheck compresses a file with flate.Deflate and decodes
// the result back through the standard library's compress/flate reader,
// comparing the round trip byte for byte.
package main

import (
	"bytes"
	stdflate "compress/flate"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/jonjohnsonjr/pureflate/flate"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("deflatecheck", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: deflatecheck <file> [file...]")
	}
	for _, path := range args {
		if err := check(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func check(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	compressed := flate.Deflate(src)
	slog.Info("deflated",
		"path", path,
		"inputBytes", len(src),
		"outputBytes", len(compressed),
		"inputHash", xxhash.Sum64(src),
	)

	r := stdflate.NewReader(bytes.NewReader(compressed))
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("decoding with standard library oracle: %w", err)
	}

	if !bytes.Equal(got, src) {
		return fmt.Errorf("round trip mismatch: got %d bytes (hash %x), want %d bytes (hash %x)",
			len(got), xxhash.Sum64(got), len(src), xxhash.Sum64(src))
	}

	slog.Info("verified", "path", path, "outputHash", xxhash.Sum64(got))
	return nil
}
