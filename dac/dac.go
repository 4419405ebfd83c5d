// Package dac reads and writes the DAC ("Dawn Asset Container") binary
// package format: a table-of-contents, a manifest, and a data segment
// holding concatenated, optionally compressed, asset bodies.
//
// Package dac is provided as part of the Dawn/Yage2 engine core: explicit
// io.Reader/io.Writer plumbing and encoding/binary framing, no reflection
// on the hot path.
package dac

import "github.com/dawnengine/yage2/dawnerr"

// Magic is the fixed 3 byte file signature every DAC container starts with.
const Magic = "DAC"

// Segment kinds. Stored as a single byte tag before each framed segment.
const (
	SegmentTOC      byte = 0x00
	SegmentManifest byte = 0x01
	SegmentData     byte = 0x02
)

// Compression identifies how a Record's body bytes are stored.
type Compression uint8

const (
	// CompressionNone stores the body bytes verbatim.
	CompressionNone Compression = iota
	// CompressionBrotli stores the body compressed with Brotli
	// (quality 11, window 22, as specified for the writer).
	CompressionBrotli
)

func (c Compression) String() string {
	switch c {
	case CompressionBrotli:
		return "brotli"
	default:
		return "none"
	}
}

// ChecksumAlgorithm names the hash used to verify asset bodies.
type ChecksumAlgorithm uint8

const (
	ChecksumBlake3 ChecksumAlgorithm = iota // mandatory
	ChecksumMD5
	ChecksumSHA256
)

func (a ChecksumAlgorithm) String() string {
	switch a {
	case ChecksumMD5:
		return "md5"
	case ChecksumSHA256:
		return "sha256"
	default:
		return "blake3"
	}
}

// ReadMode controls how the packager's manifest walk discovers sources.
type ReadMode uint8

const (
	ReadModeFlat ReadMode = iota
	ReadModeRecursive
)

// Kind is the asset's type tag, carried in its Header.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindShader
	KindTexture
	KindAudio
	KindNotes
	KindMaterial
	KindMesh
	KindFont
	KindDictionary
)

func (k Kind) String() string {
	switch k {
	case KindShader:
		return "shader"
	case KindTexture:
		return "texture"
	case KindAudio:
		return "audio"
	case KindNotes:
		return "notes"
	case KindMaterial:
		return "material"
	case KindMesh:
		return "mesh"
	case KindFont:
		return "font"
	case KindDictionary:
		return "dictionary"
	default:
		return "unknown"
	}
}

// Checksum is a 16 byte deep structural digest of an asset's header and IR.
type Checksum [16]byte

// Header is the immutable metadata describing one asset in the container.
// It is loaded (via the Manifest) before any asset body.
type Header struct {
	ID           string
	Kind         Kind
	Checksum     Checksum
	Dependencies []string // sorted, deduplicated AssetID strings
	Tags         []string
	Author       string
	License      string
}

// Record locates one asset body within the data segment.
type Record struct {
	Offset      uint32
	Length      uint32
	Compression Compression
}

// Manifest describes how the container was produced and lists every
// asset header it carries.
type Manifest struct {
	Tool              string
	ToolVersion       string
	CreationTime      int64 // unix seconds, stable across re-encodes
	Serializer        string
	SerializerVersion string
	Compression       Compression
	ReadMode          ReadMode
	ChecksumAlgorithm ChecksumAlgorithm
	Headers           []Header
}

// WriteConfig holds the packager tool's (out of core scope) write
// settings. Nothing in the core reads it: Writer.Write stamps
// manifest-level metadata from the Manifest it is given.
type WriteConfig struct {
	ReadMode          ReadMode
	ChecksumAlgorithm ChecksumAlgorithm
	Author            string
	Description       string
	Version           string
	License           string
}

// Sentinel error kinds. Wrapped in a *dawnerr.Error with Op set by the
// call site; compare with dawnerr.Is(err, dawnerr.Decode) and friends.
var (
	ErrBadMagic      = dawnerr.New(dawnerr.Decode, "dac", errString("bad magic"))
	ErrTruncated     = dawnerr.New(dawnerr.Decode, "dac", errString("truncated segment"))
	ErrUnknownMagic  = dawnerr.New(dawnerr.Decode, "dac", errString("unknown segment magic"))
	ErrSizeOverflow  = dawnerr.New(dawnerr.Runtime, "dac", errString("data segment exceeds uint32"))
	ErrSerialization = dawnerr.New(dawnerr.Decode, "dac", errString("sub-encoding failed"))
	ErrChecksumAlgo  = dawnerr.New(dawnerr.Validation, "dac", errString("unsupported checksum algorithm"))
)

type errString string

func (e errString) Error() string { return string(e) }
