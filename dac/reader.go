package dac

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/dawnengine/yage2/dawnerr"
)

// Reader parses a DAC container's magic, TOC, and manifest, and fetches
// asset bodies lazily by seeking into the underlying source.
//
// Reader needs random access to the data segment, so it is constructed
// over an io.ReaderAt (a seek-and-read capable source: an *os.File, a
// bytes.Reader, or anything else that can serve Offset/Length lookups)
// rather than a plain io.Reader.
type Reader struct {
	src      io.ReaderAt
	Manifest Manifest
	TOC      map[string]Record
	dataAt   int64 // absolute offset of the DATA segment's first byte
}

// Open parses magic, TOC, and manifest from src. It does not read any
// asset body; call Asset to fetch one on demand.
func Open(src io.ReaderAt) (*Reader, error) {
	r := &Reader{src: src}
	var pos int64

	magic := make([]byte, len(Magic))
	if _, err := src.ReadAt(magic, pos); err != nil {
		return nil, dawnerr.New(dawnerr.IO, "dac.Open", err)
	}
	if string(magic) != Magic {
		return nil, ErrBadMagic
	}
	pos += int64(len(Magic))

	haveTOC, haveManifest := false, false
	for !haveTOC || !haveManifest {
		magicByte, length, err := readHeaderAt(src, pos)
		if err != nil {
			return nil, err
		}
		pos += 5

		switch magicByte {
		case SegmentTOC:
			payload := make([]byte, length)
			if _, err := src.ReadAt(payload, pos); err != nil {
				return nil, dawnerr.New(dawnerr.IO, "dac.Open", err)
			}
			if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&r.TOC); err != nil {
				return nil, dawnerr.New(dawnerr.Decode, "dac.Open", fmt.Errorf("%w: %v", ErrSerialization, err))
			}
			haveTOC = true
		case SegmentManifest:
			payload := make([]byte, length)
			if _, err := src.ReadAt(payload, pos); err != nil {
				return nil, dawnerr.New(dawnerr.IO, "dac.Open", err)
			}
			if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&r.Manifest); err != nil {
				return nil, dawnerr.New(dawnerr.Decode, "dac.Open", fmt.Errorf("%w: %v", ErrSerialization, err))
			}
			haveManifest = true
		case SegmentData:
			r.dataAt = pos
		default:
			return nil, ErrUnknownMagic
		}
		pos += int64(length)
	}

	// The loop above may stop before scanning a DATA segment that comes
	// after TOC/manifest; find it now if dataAt was never set.
	if r.dataAt == 0 {
		if err := r.locateData(pos); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// locateData scans forward from pos looking for the DATA segment header,
// used when Open's main loop finished TOC+manifest before reaching it.
func (r *Reader) locateData(pos int64) error {
	for {
		magicByte, length, err := readHeaderAt(r.src, pos)
		if err != nil {
			if err == io.EOF {
				return ErrTruncated
			}
			return err
		}
		pos += 5
		if magicByte == SegmentData {
			r.dataAt = pos
			return nil
		}
		pos += int64(length)
	}
}

// Header returns the parsed header for id, if present in the manifest.
func (r *Reader) Header(id string) (Header, bool) {
	for _, h := range r.Manifest.Headers {
		if h.ID == id {
			return h, true
		}
	}
	return Header{}, false
}

// Asset fetches and decompresses one asset body by id, seeking into the
// data segment using the id's Record (offset, length, compression).
func (r *Reader) Asset(id string) ([]byte, error) {
	rec, ok := r.TOC[id]
	if !ok {
		return nil, dawnerr.New(dawnerr.Decode, "dac.Reader.Asset", fmt.Errorf("unknown asset id %q", id))
	}
	raw := make([]byte, rec.Length)
	if _, err := r.src.ReadAt(raw, r.dataAt+int64(rec.Offset)); err != nil {
		return nil, dawnerr.New(dawnerr.IO, "dac.Reader.Asset", err)
	}
	switch rec.Compression {
	case CompressionNone:
		return raw, nil
	case CompressionBrotli:
		out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
		if err != nil {
			return nil, dawnerr.New(dawnerr.Decode, "dac.Reader.Asset", err)
		}
		return out, nil
	default:
		return nil, dawnerr.New(dawnerr.Decode, "dac.Reader.Asset", fmt.Errorf("unknown compression %d", rec.Compression))
	}
}

// Verify checksums a previously-fetched asset body against its header
// using the manifest's configured checksum algorithm. Checksum
// verification is optional and always driven by the caller.
func (r *Reader) Verify(id string, body []byte) (bool, error) {
	h, ok := r.Header(id)
	if !ok {
		return false, dawnerr.New(dawnerr.Decode, "dac.Reader.Verify", fmt.Errorf("unknown asset id %q", id))
	}
	hasher, err := NewHasher(r.Manifest.ChecksumAlgorithm)
	if err != nil {
		return false, err
	}
	sum := hasher.Bytes(body).Sum()
	return sum == h.Checksum, nil
}

func readHeaderAt(src io.ReaderAt, pos int64) (magic byte, length uint32, err error) {
	var hdr [5]byte
	if _, err := src.ReadAt(hdr[:], pos); err != nil {
		return 0, 0, dawnerr.New(dawnerr.IO, "dac.readHeaderAt", err)
	}
	return hdr[0], binary.LittleEndian.Uint32(hdr[1:]), nil
}
