// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/blinklabs-io/canonhash"
	"github.com/blinklabs-io/canonhash/batch"
	"github.com/blinklabs-io/canonhash/cbor"
	"github.com/blinklabs-io/canonhash/hasher"
	"github.com/ipfs/go-cid"
	"github.com/opencontainers/go-digest"
)

type cborFlags struct {
	flagset      *flag.FlagSet
	canonicalize bool
	format       string
	bech32Prefix string
	workers      int
}

func newCborFlags(name string) *cborFlags {
	f := &cborFlags{
		flagset: flag.NewFlagSet(name, flag.ExitOnError),
	}
	f.flagset.BoolVar(
		&f.canonicalize,
		"canonicalize",
		false,
		"re-encode input that is not in core deterministic form instead of rejecting it",
	)
	f.flagset.StringVar(
		&f.format,
		"format",
		"hex",
		"output format: hex, oci (sha256 only), cid or bech32 (32 byte digests only)",
	)
	f.flagset.StringVar(
		&f.bech32Prefix,
		"bech32-prefix",
		"digest",
		"human-readable prefix for bech32 output",
	)
	f.flagset.IntVar(&f.workers, "workers", 0, "number of parallel workers (default: one per CPU)")
	return f
}

// loadDocument reads a CBOR file as a Document
func loadDocument(path string, canonicalize bool) (cbor.Document, error) {
	data, err := readInput(path)
	if err != nil {
		return cbor.Document{}, err
	}
	doc, err := cbor.Raw(data)
	if err == nil || !canonicalize || !errors.Is(err, cbor.ErrNotCanonical) {
		return doc, err
	}
	var v any
	if _, err := cbor.Decode(data, &v); err != nil {
		return cbor.Document{}, err
	}
	return cbor.Canonical(v)
}

func formatDigest(f *cborFlags, alg hasher.Algorithm, sum []byte) (string, error) {
	switch f.format {
	case "hex":
		return hex.EncodeToString(sum), nil
	case "oci":
		if alg != hasher.SHA256 {
			return "", fmt.Errorf("oci format requires %s", hasher.SHA256)
		}
		return digest.NewDigestFromBytes(digest.SHA256, sum).String(), nil
	case "cid":
		mh, err := canonhash.MultihashFromDigest(alg, sum)
		if err != nil {
			return "", err
		}
		return cid.NewCidV1(cid.Raw, mh).String(), nil
	case "bech32":
		if len(sum) != canonhash.Fingerprint256Size {
			return "", fmt.Errorf("bech32 format requires a %d byte digest", canonhash.Fingerprint256Size)
		}
		return canonhash.NewFingerprint256(sum).Bech32(f.bech32Prefix), nil
	default:
		return "", fmt.Errorf("unknown output format: %s", f.format)
	}
}

func runCbor(f *globalFlags) {
	cborFlags := newCborFlags("cbor")
	err := cborFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	paths := cborFlags.flagset.Args()
	if len(paths) < 1 {
		fmt.Printf("ERROR: you must specify at least one file\n")
		os.Exit(1)
	}
	alg, err := hasher.ParseAlgorithm(f.algorithm)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}

	docs := make([]canonhash.Digestable, 0, len(paths))
	for _, path := range paths {
		doc, err := loadDocument(path, cborFlags.canonicalize)
		if err != nil {
			fmt.Printf("ERROR: %s: %s\n", path, err)
			os.Exit(1)
		}
		docs = append(docs, doc)
	}

	d, err := batch.New(
		batch.WithAlgorithm(alg),
		batch.WithTag(f.tag),
		batch.WithWorkers(cborFlags.workers),
		batch.WithLogger(f.logger()),
	)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	sums, err := d.Digest(context.Background(), docs)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	for i, sum := range sums {
		out, err := formatDigest(cborFlags, alg, sum)
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s  %s\n", out, paths[i])
	}
}

type encodeFlags struct {
	flagset      *flag.FlagSet
	canonicalize bool
	raw          bool
}

func newEncodeFlags() *encodeFlags {
	f := &encodeFlags{
		flagset: flag.NewFlagSet("encode", flag.ExitOnError),
	}
	f.flagset.BoolVar(
		&f.canonicalize,
		"canonicalize",
		false,
		"re-encode input that is not in core deterministic form instead of rejecting it",
	)
	f.flagset.BoolVar(&f.raw, "raw", false, "write binary output instead of hex")
	return f
}

func runEncode(f *globalFlags) {
	encodeFlags := newEncodeFlags()
	err := encodeFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if len(encodeFlags.flagset.Args()) != 1 {
		fmt.Printf("ERROR: you must specify exactly one file\n")
		os.Exit(1)
	}
	doc, err := loadDocument(encodeFlags.flagset.Arg(0), encodeFlags.canonicalize)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if encodeFlags.raw {
		if err := canonhash.Encode(os.Stdout, f.tag, doc); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Println(hex.EncodeToString(canonhash.EncodeToBytes(f.tag, doc)))
}
