// Package manifest reads the human-authored asset manifest that is the
// packager's input: a table of contents enumerating every asset's kind,
// source, and kind-specific options, normalized into AssetIDs and, once
// fetched, into dac.BinaryAssets ready for dac.Writer.
package manifest

import (
	"fmt"
	"io"
	"os"

	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/dawnerr"
	"gopkg.in/yaml.v3"
)

// Source identifies where one entry's body comes from: a local file or a
// URL with a cache policy tag. Exactly one of Path or URL is set.
type Source struct {
	Path        string `yaml:"path,omitempty"`
	URL         string `yaml:"url,omitempty"`
	CachePolicy string `yaml:"cachePolicy,omitempty"`
}

// IsURL reports whether the source is URL-backed.
func (s Source) IsURL() bool { return s.URL != "" }

// Entry is one row of the manifest: an asset's kind, source, and the
// options a kind-specific factory needs to parse it.
type Entry struct {
	Kind         asset.Kind     `yaml:"-"`
	KindName     string         `yaml:"kind"`
	Source       Source         `yaml:"source"`
	Fragment     Source         `yaml:"fragment,omitempty"` // shader entries only: the fragment stage
	Tags         []string       `yaml:"tags,omitempty"`
	Author       string         `yaml:"author,omitempty"`
	License      string         `yaml:"license,omitempty"`
	Dependencies []string       `yaml:"dependencies,omitempty"`
	Options      map[string]any `yaml:"options,omitempty"`
}

// ID derives the entry's AssetID from its source filename: lowercased,
// non-alphanumeric runs collapsed to underscore, extension stripped.
func (e Entry) ID() asset.ID {
	name := e.Source.Path
	if e.Source.IsURL() {
		name = e.Source.URL
	}
	return asset.Normalize(baseName(name))
}

// baseName strips any directory prefix (slash or backslash separated)
// without pulling in path/filepath, which assumes a local OS path shape
// URLs don't share.
func baseName(name string) string {
	cut := -1
	for i := 0; i < len(name); i++ {
		if name[i] == '/' || name[i] == '\\' {
			cut = i
		}
	}
	return name[cut+1:]
}

// Manifest is the fully parsed table of contents: package-level metadata
// plus every entry, keyed by its raw manifest order (not yet AssetIDs, so
// that duplicate-ID validation can report the source line that caused it).
type Manifest struct {
	Author      string  `yaml:"author,omitempty"`
	Description string  `yaml:"description,omitempty"`
	Version     string  `yaml:"version,omitempty"`
	License     string  `yaml:"license,omitempty"`
	Entries     []Entry `yaml:"entries"`
}

var kindNames = map[string]asset.Kind{
	"shader":     asset.KindShader,
	"texture":    asset.KindTexture,
	"audio":      asset.KindAudio,
	"notes":      asset.KindNotes,
	"material":   asset.KindMaterial,
	"mesh":       asset.KindMesh,
	"font":       asset.KindFont,
	"dictionary": asset.KindDictionary,
}

// Load parses a manifest from r. Validation errors (unknown kind, bad
// source, duplicate ID) name the offending entry's source so a
// human-authored file with a typo is easy to track down. A YAML syntax
// error is returned as the decoder reports it, with a line number but no
// source path.
func Load(r io.Reader) (*Manifest, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, dawnerr.New(dawnerr.IO, "manifest.Load", err)
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(body, m); err != nil {
		return nil, dawnerr.New(dawnerr.Decode, "manifest.Load", err)
	}
	for i := range m.Entries {
		e := &m.Entries[i]
		kind, ok := kindNames[e.KindName]
		if !ok {
			return nil, dawnerr.New(dawnerr.Validation, "manifest.Load",
				fmt.Errorf("entry %q: unknown kind %q", entrySource(*e), e.KindName))
		}
		e.Kind = kind
		if e.Source.Path == "" && e.Source.URL == "" {
			return nil, dawnerr.New(dawnerr.Validation, "manifest.Load",
				fmt.Errorf("entry %q: source has neither path nor url", entrySource(*e)))
		}
		if e.Source.Path != "" && e.Source.URL != "" {
			return nil, dawnerr.New(dawnerr.Validation, "manifest.Load",
				fmt.Errorf("entry %q: source has both path and url", entrySource(*e)))
		}
		hasFragment := e.Fragment.Path != "" || e.Fragment.URL != ""
		if e.Kind == asset.KindShader && !hasFragment {
			return nil, dawnerr.New(dawnerr.Validation, "manifest.Load",
				fmt.Errorf("entry %q: shader kind requires a fragment source", entrySource(*e)))
		}
		if e.Kind != asset.KindShader && hasFragment {
			return nil, dawnerr.New(dawnerr.Validation, "manifest.Load",
				fmt.Errorf("entry %q: fragment source is only valid for shader kind", entrySource(*e)))
		}
	}
	if err := checkDuplicateIDs(m.Entries); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile opens path and parses its contents as a Manifest.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dawnerr.New(dawnerr.IO, "manifest.LoadFile", err)
	}
	defer f.Close()
	m, err := Load(f)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func checkDuplicateIDs(entries []Entry) error {
	seen := make(map[asset.ID]string, len(entries))
	for _, e := range entries {
		id := e.ID()
		if prior, ok := seen[id]; ok {
			return dawnerr.New(dawnerr.Validation, "manifest.Load",
				fmt.Errorf("asset id %q: %q and %q both normalize to it", id, prior, entrySource(e)))
		}
		seen[id] = entrySource(e)
	}
	return nil
}

func entrySource(e Entry) string {
	if e.Source.IsURL() {
		return e.Source.URL
	}
	return e.Source.Path
}
