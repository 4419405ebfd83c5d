package dac

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/dawnengine/yage2/dawnerr"
	"lukechampine.com/blake3"
)

// Hasher accumulates a deep, structure-aware digest the same way the
// asset pipeline canonicalizes IR before hashing: primitives by bit
// pattern, ordered containers in iteration order, unordered containers
// sorted by key with a length prefix, options with a 0/1 presence prefix.
type Hasher struct {
	algo ChecksumAlgorithm
	buf  []byte // scratch, reused across Write calls
	h    interface {
		Write(p []byte) (int, error)
		Sum(b []byte) []byte
	}
}

// NewHasher creates a Hasher for the given algorithm.
func NewHasher(algo ChecksumAlgorithm) (*Hasher, error) {
	var h interface {
		Write(p []byte) (int, error)
		Sum(b []byte) []byte
	}
	switch algo {
	case ChecksumBlake3:
		h = blake3.New(32, nil)
	case ChecksumMD5:
		h = md5.New()
	case ChecksumSHA256:
		h = sha256.New()
	default:
		return nil, fmt.Errorf("%w: %d", ErrChecksumAlgo, algo)
	}
	return &Hasher{algo: algo, h: h}, nil
}

// Bytes hashes a raw byte slice, length-prefixed so an empty slice and a
// missing field never collide.
func (c *Hasher) Bytes(b []byte) *Hasher {
	c.writeUint64(uint64(len(b)))
	c.h.Write(b)
	return c
}

// String hashes a UTF-8 string the same way as Bytes.
func (c *Hasher) String(s string) *Hasher {
	return c.Bytes([]byte(s))
}

// Uint64 hashes an unsigned integer by its bit pattern.
func (c *Hasher) Uint64(v uint64) *Hasher {
	c.writeUint64(v)
	return c
}

// Float32 hashes a float by its IEEE-754 bit pattern (never the decimal
// text form, which would make the checksum platform/locale dependent).
func (c *Hasher) Float32(v float32) *Hasher {
	return c.Uint64(uint64(math.Float32bits(v)))
}

// Float64 hashes a float64 by its IEEE-754 bit pattern.
func (c *Hasher) Float64(v float64) *Hasher {
	return c.Uint64(math.Float64bits(v))
}

// Option hashes a presence prefix (0 absent, 1 present, written as a
// little-endian uint64) before the payload, matching the "options by a
// 0/1 prefix" rule.
func (c *Hasher) Option(present bool, write func(*Hasher)) *Hasher {
	if !present {
		c.writeUint64(0)
		return c
	}
	c.writeUint64(1)
	write(c)
	return c
}

// Strings hashes an unordered set of strings: sorted, then length-prefixed.
func (c *Hasher) Strings(set []string) *Hasher {
	sorted := append([]string(nil), set...)
	sort.Strings(sorted)
	c.writeUint64(uint64(len(sorted)))
	for _, s := range sorted {
		c.String(s)
	}
	return c
}

func (c *Hasher) writeUint64(v uint64) {
	if cap(c.buf) < 8 {
		c.buf = make([]byte, 8)
	}
	c.buf = c.buf[:8]
	binary.LittleEndian.PutUint64(c.buf, v)
	c.h.Write(c.buf)
}

// Sum finalizes the digest into a fixed 16 byte Checksum (the first 16
// bytes of the underlying hash output).
func (c *Hasher) Sum() Checksum {
	full := c.h.Sum(nil)
	var out Checksum
	copy(out[:], full)
	return out
}

// HashFile checksums a file-backed asset source: both the path and the
// file contents are hashed so a rename is detectable even when the
// contents are identical.
func HashFile(algo ChecksumAlgorithm, path string, contents []byte) (Checksum, error) {
	h, err := NewHasher(algo)
	if err != nil {
		return Checksum{}, dawnerr.New(dawnerr.Validation, "dac.HashFile", err)
	}
	h.String(path).Bytes(contents)
	return h.Sum(), nil
}

// HashURL checksums a URL-backed asset source: the URL string and a
// cache policy tag, since the body itself is fetched lazily.
func HashURL(algo ChecksumAlgorithm, url string, cachePolicy string) (Checksum, error) {
	h, err := NewHasher(algo)
	if err != nil {
		return Checksum{}, dawnerr.New(dawnerr.Validation, "dac.HashURL", err)
	}
	h.String(url).String(cachePolicy)
	return h.Sum(), nil
}
