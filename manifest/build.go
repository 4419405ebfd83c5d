package manifest

import (
	"io"
	"sort"

	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/dac"
	"github.com/dawnengine/yage2/dawnerr"
)

// BuildConfig stamps the manifest-level metadata dac.Writer carries
// alongside the headers; its fields are copied into the dac.Manifest
// fields of the same names.
type BuildConfig struct {
	Tool              string
	ToolVersion       string
	CreationTime      int64
	Serializer        string
	SerializerVersion string
	Compression       dac.Compression
	ChecksumAlgorithm dac.ChecksumAlgorithm
}

// BuildAssets fetches every entry's body through fetcher, checksums it per
// the file-vs-URL hashing rule (a file hashes its path and contents, a URL
// hashes the URL and its cache policy), and returns the dac.BinaryAssets
// and dac.Manifest ready for dac.Writer.Write. The first fetch or
// checksum error aborts the whole build and is returned as the fetcher
// or hasher reported it.
func BuildAssets(m *Manifest, fetcher Fetcher, cfg BuildConfig) ([]dac.BinaryAsset, dac.Manifest, error) {
	assets := make([]dac.BinaryAsset, 0, len(m.Entries))
	for _, e := range m.Entries {
		raw, err := fetchBody(e, fetcher)
		if err != nil {
			return nil, dac.Manifest{}, err
		}
		checksum, err := checksumEntry(e, raw, cfg.ChecksumAlgorithm)
		if err != nil {
			return nil, dac.Manifest{}, dawnerr.New(dawnerr.Validation, "manifest.BuildAssets", err)
		}
		deps := append([]string(nil), e.Dependencies...)
		sort.Strings(deps)
		assets = append(assets, dac.BinaryAsset{
			Header: dac.Header{
				ID:           string(e.ID()),
				Kind:         e.Kind,
				Checksum:     checksum,
				Dependencies: deps,
				Tags:         e.Tags,
				Author:       e.Author,
				License:      e.License,
			},
			Raw:         raw,
			Compression: cfg.Compression,
		})
	}

	manifest := dac.Manifest{
		Tool:              cfg.Tool,
		ToolVersion:       cfg.ToolVersion,
		CreationTime:      cfg.CreationTime,
		Serializer:        cfg.Serializer,
		SerializerVersion: cfg.SerializerVersion,
		Compression:       cfg.Compression,
		ChecksumAlgorithm: cfg.ChecksumAlgorithm,
	}
	return assets, manifest, nil
}

// fetchBody fetches e's raw body. A shader entry carries two source
// files (vertex and fragment) where every other kind carries one; the
// two are concatenated with asset.ShaderSourceSeparator so the packed
// asset still ends up as a single raw blob, and pack.Source splits them
// back apart on decode.
func fetchBody(e Entry, fetcher Fetcher) ([]byte, error) {
	vertex, err := fetchOne(e, fetcher)
	if err != nil {
		return nil, err
	}
	if e.Kind != asset.KindShader {
		return vertex, nil
	}
	fe := e
	fe.Source = e.Fragment
	fragment, err := fetchOne(fe, fetcher)
	if err != nil {
		return nil, err
	}
	raw := make([]byte, 0, len(vertex)+len(asset.ShaderSourceSeparator)+len(fragment))
	raw = append(raw, vertex...)
	raw = append(raw, asset.ShaderSourceSeparator...)
	raw = append(raw, fragment...)
	return raw, nil
}

func fetchOne(e Entry, fetcher Fetcher) ([]byte, error) {
	body, err := fetcher.Fetch(e)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, dawnerr.New(dawnerr.IO, "manifest.BuildAssets", err)
	}
	return raw, nil
}

func checksumEntry(e Entry, raw []byte, algo dac.ChecksumAlgorithm) (dac.Checksum, error) {
	if e.Source.IsURL() {
		return dac.HashURL(algo, e.Source.URL, e.Source.CachePolicy)
	}
	return dac.HashFile(algo, e.Source.Path, raw)
}
