package dac

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"math"

	"github.com/andybalholm/brotli"
	"github.com/dawnengine/yage2/dawnerr"
)

// BrotliQuality and BrotliWindow are the fixed compressor parameters the
// writer uses for every compressed record, per the external interface spec.
const (
	BrotliQuality = 11
	BrotliWindow  = 22
)

// BinaryAsset is one asset body plus its header, ready to be written.
// Compression selects how Raw is stored; CompressionNone is a direct copy.
type BinaryAsset struct {
	Header      Header
	Raw         []byte
	Compression Compression
}

// Writer serializes a Manifest and a set of BinaryAssets into the DAC
// container format described in dac.go: magic, then TOC+manifest segments,
// then one DATA segment holding every body back to back.
type Writer struct{}

// NewWriter returns a ready to use Writer. Writer holds no state between
// calls; it exists as a namespace to mirror the Reader/Writer pairing.
func NewWriter() *Writer { return &Writer{} }

// Write encodes manifest and assets to w. Each asset body is compressed
// (if requested and only if doing so actually shrinks it) independently
// and streamed straight to w — bodies are never concatenated into one
// combined in-memory buffer.
func (wr *Writer) Write(w io.Writer, manifest Manifest, assets []BinaryAsset) error {
	if _, err := w.Write([]byte(Magic)); err != nil {
		return dawnerr.New(dawnerr.IO, "dac.Writer.Write", err)
	}

	toc := make(map[string]Record, len(assets))
	bodies := make([][]byte, len(assets))
	var offset uint64
	for i, a := range assets {
		body, comp, err := compressBody(a.Raw, a.Compression)
		if err != nil {
			return dawnerr.New(dawnerr.Runtime, "dac.Writer.Write", err)
		}
		if offset+uint64(len(body)) > math.MaxUint32 {
			return ErrSizeOverflow
		}
		toc[a.Header.ID] = Record{
			Offset:      uint32(offset),
			Length:      uint32(len(body)),
			Compression: comp,
		}
		bodies[i] = body
		offset += uint64(len(body))
	}

	if manifest.Headers == nil {
		manifest.Headers = make([]Header, 0, len(assets))
	}
	for _, a := range assets {
		manifest.Headers = append(manifest.Headers, a.Header)
	}

	if err := writeSegment(w, SegmentTOC, toc); err != nil {
		return err
	}
	if err := writeSegment(w, SegmentManifest, manifest); err != nil {
		return err
	}

	dataLen := uint64(0)
	for _, b := range bodies {
		dataLen += uint64(len(b))
	}
	if dataLen > math.MaxUint32 {
		return ErrSizeOverflow
	}
	if err := writeHeader(w, SegmentData, uint32(dataLen)); err != nil {
		return err
	}
	for _, b := range bodies {
		if _, err := w.Write(b); err != nil {
			return dawnerr.New(dawnerr.IO, "dac.Writer.Write", err)
		}
	}
	return nil
}

// compressBody returns the bytes to store and the Compression that was
// actually used — the writer only keeps a compressed body when it is
// smaller than the raw one, per the "selected per-record by the writer
// when compressed size < raw size" rule.
func compressBody(raw []byte, requested Compression) ([]byte, Compression, error) {
	if requested != CompressionBrotli {
		return raw, CompressionNone, nil
	}
	var buf bytes.Buffer
	bw := brotli.NewWriterOptions(&buf, brotli.WriterOptions{Quality: BrotliQuality, LGWin: BrotliWindow})
	if _, err := bw.Write(raw); err != nil {
		return nil, CompressionNone, fmt.Errorf("brotli compress: %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, CompressionNone, fmt.Errorf("brotli compress: %w", err)
	}
	if buf.Len() < len(raw) {
		return buf.Bytes(), CompressionBrotli, nil
	}
	return raw, CompressionNone, nil
}

func writeSegment(w io.Writer, magic byte, v any) error {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(v); err != nil {
		return dawnerr.New(dawnerr.Decode, "dac.Writer.writeSegment", fmt.Errorf("%w: %v", ErrSerialization, err))
	}
	if payload.Len() > math.MaxUint32 {
		return ErrSizeOverflow
	}
	if err := writeHeader(w, magic, uint32(payload.Len())); err != nil {
		return err
	}
	if _, err := w.Write(payload.Bytes()); err != nil {
		return dawnerr.New(dawnerr.IO, "dac.Writer.writeSegment", err)
	}
	return nil
}

func writeHeader(w io.Writer, magic byte, length uint32) error {
	hdr := [5]byte{magic}
	binary.LittleEndian.PutUint32(hdr[1:], length)
	if _, err := w.Write(hdr[:]); err != nil {
		return dawnerr.New(dawnerr.IO, "dac.writeHeader", err)
	}
	return nil
}
