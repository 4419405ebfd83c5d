// Package main implements the packager: a command line tool that reads a
// human-authored asset manifest and writes a DAC container. Usage:
//
//	packager -manifest pack.yaml -out game.dac
//
// Package packager is provided as part of the Dawn/Yage2 engine core: it
// carries no packaging logic of its own, only manifest.Load,
// manifest.BuildAssets, and dac.Writer wired together.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dawnengine/yage2/dac"
	"github.com/dawnengine/yage2/manifest"
)

var (
	manifestPath = flag.String("manifest", "", "path to the asset manifest (required)")
	outPath      = flag.String("out", "out.dac", "path to write the DAC container to")
	noCompress   = flag.Bool("no-compress", false, "disable brotli body compression")
)

func main() {
	flag.Parse()
	if *manifestPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "packager:", err)
		os.Exit(1)
	}
}

func run() error {
	m, err := manifest.LoadFile(*manifestPath)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	compression := dac.CompressionBrotli
	if *noCompress {
		compression = dac.CompressionNone
	}
	cfg := manifest.BuildConfig{
		Tool:              "packager",
		ChecksumAlgorithm: dac.ChecksumBlake3,
		Compression:       compression,
	}
	assets, built, err := manifest.BuildAssets(m, manifest.NewDefaultFetcher(), cfg)
	if err != nil {
		return fmt.Errorf("build assets: %w", err)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", *outPath, err)
	}
	defer out.Close()

	if err := dac.NewWriter().Write(out, built, assets); err != nil {
		return fmt.Errorf("write %s: %w", *outPath, err)
	}
	fmt.Printf("packager: wrote %d assets to %s\n", len(assets), *outPath)
	return nil
}
