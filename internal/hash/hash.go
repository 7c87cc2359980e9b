// Package hash computes streaming file digests for integrity checks.
package hash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	apperrors "fileverify/internal/errors"
)

// Algorithm names a supported digest function.
type Algorithm string

// Supported algorithms.
const (
	SHA256 Algorithm = "sha256"
	SHA1   Algorithm = "sha1"
	MD5    Algorithm = "md5"
)

// DefaultAlgorithm is used when no algorithm is selected.
const DefaultAlgorithm = SHA256

// DefaultChunkSize is the read size used when Options.ChunkSize is zero.
const DefaultChunkSize = 4096

// Algorithms returns the supported algorithms, default first.
func Algorithms() []Algorithm {
	return []Algorithm{SHA256, SHA1, MD5}
}

// ParseAlgorithm validates a user supplied algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, alg := range Algorithms() {
		if string(alg) == name {
			return alg, nil
		}
	}
	return "", fmt.Errorf("%q (choose from %s): %w", name, algorithmList(), apperrors.ErrInvalidAlgorithm)
}

func algorithmList() string {
	names := make([]string, 0, len(Algorithms()))
	for _, alg := range Algorithms() {
		names = append(names, string(alg))
	}
	return strings.Join(names, ", ")
}

// String returns the algorithm name.
func (a Algorithm) String() string { return string(a) }

// HexLen returns the length of a hex encoded digest, or 0 for unknown algorithms.
func (a Algorithm) HexLen() int {
	switch a {
	case SHA256:
		return sha256.Size * 2
	case SHA1:
		return sha1.Size * 2
	case MD5:
		return md5.Size * 2
	default:
		return 0
	}
}

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case SHA256:
		return sha256.New(), nil
	case SHA1:
		return sha1.New(), nil
	case MD5:
		return md5.New(), nil
	default:
		return nil, fmt.Errorf("%q: %w", string(a), apperrors.ErrInvalidAlgorithm)
	}
}

// Digest is a lowercase hex encoded hash value.
type Digest string

// String returns the hex digest.
func (d Digest) String() string { return string(d) }

// Hasher wraps an incremental hash for one algorithm.
type Hasher struct {
	h hash.Hash
}

// New creates a hasher for alg.
func New(alg Algorithm) (*Hasher, error) {
	h, err := alg.newHash()
	if err != nil {
		return nil, err
	}
	return &Hasher{h: h}, nil
}

// Write adds data to the hash state.
func (h *Hasher) Write(p []byte) (int, error) { return h.h.Write(p) }

// Sum returns the raw digest.
func (h *Hasher) Sum() []byte { return h.h.Sum(nil) }

// SumHex returns the lowercase hex digest.
func (h *Hasher) SumHex() Digest { return Digest(hex.EncodeToString(h.Sum())) }

// Options tunes how a source is read while hashing.
type Options struct {
	// ChunkSize is the number of bytes read per iteration. Zero means DefaultChunkSize.
	ChunkSize int
	// BytesPerSecond caps read throughput. Zero disables throttling.
	BytesPerSecond int
	// Progress, if set, is called with the cumulative byte count after each chunk.
	Progress func(total uint64)
}

func (o Options) chunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

// Sum reads r to EOF in fixed-size chunks and returns its digest.
// On error the returned Digest is empty.
func Sum(r io.Reader, alg Algorithm, opts Options) (Digest, error) {
	hasher, err := New(alg)
	if err != nil {
		return "", err
	}

	chunk := opts.chunkSize()
	if opts.BytesPerSecond > 0 {
		r = newThrottledReader(r, opts.BytesPerSecond, chunk)
	}

	buf := make([]byte, chunk)
	var total uint64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			_, _ = hasher.Write(buf[:n])
			total += uint64(n)
			if opts.Progress != nil {
				opts.Progress(total)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read chunk at offset %d: %w: %w", total, err, apperrors.ErrIOFailure)
		}
	}
	return hasher.SumHex(), nil
}

// File hashes the file at path. The file is closed before File returns.
func File(path string, alg Algorithm, opts Options) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w: %w", path, err, apperrors.ErrIOFailure)
	}
	defer func() { _ = f.Close() }()

	digest, err := Sum(f, alg, opts)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return digest, nil
}
