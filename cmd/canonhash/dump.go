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
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/blinklabs-io/canonhash/utils"
)

type dumpFlags struct {
	flagset *flag.FlagSet
	value   bool
	hex     bool
}

func newDumpFlags() *dumpFlags {
	f := &dumpFlags{
		flagset: flag.NewFlagSet("dump", flag.ExitOnError),
	}
	f.flagset.BoolVar(&f.value, "value", false, "input is a bare value without a domain tag")
	f.flagset.BoolVar(&f.hex, "hex", false, "input is hex encoded")
	return f
}

func runDump(f *globalFlags) {
	dumpFlags := newDumpFlags()
	err := dumpFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if len(dumpFlags.flagset.Args()) != 1 {
		fmt.Printf("ERROR: you must specify exactly one file (or - for stdin)\n")
		os.Exit(1)
	}
	data, err := readInput(dumpFlags.flagset.Arg(0))
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	if dumpFlags.hex {
		data, err = hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			fmt.Printf("ERROR: invalid hex input: %s\n", err)
			os.Exit(1)
		}
	}
	var out string
	if dumpFlags.value {
		out, err = utils.DumpValue(data)
	} else {
		out, err = utils.DumpEncoding(data)
	}
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}
