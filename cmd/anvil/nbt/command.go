// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/anvil-foundation/anvil/cmd/anvil/cli"
)

// nbtParams holds the parameters for the top-level "anvil nbt" command.
// The command has both Subcommands (decode, encode, diag) and a Run
// fallback: when the first positional argument is not a subcommand
// name, Run treats the args as a default decode invocation, so "anvil
// nbt level.dat" reads like "anvil nbt decode level.dat".
type nbtParams struct {
	Format   string `flag:"format,f"  desc:"output format: json, yaml, or cbor" default:"json"`
	Compact  bool   `flag:"compact,c" desc:"compact single-line JSON"`
	HexInput bool   `flag:"hex,x"     desc:"treat input as hex-encoded binary"`
}

// Command returns the "nbt" command group.
func Command() *cli.Command {
	var params nbtParams

	return &cli.Command{
		Name:    "nbt",
		Summary: "Decode, encode, and inspect tagged binary trees",
		Description: `Tools for working with tagged binary tree data from the command line.

The binary format frames a named compound and is usually wrapped in
gzip or zlib on disk. These commands detect and unwrap the compression
transparently and bridge the tree to JSON, YAML, or CBOR.

With no arguments, decodes a tree on stdin to pretty-printed JSON on
stdout (equivalent to "anvil nbt decode").

All subcommands accept an optional trailing file path argument. When
provided, input is read from the file instead of stdin: "anvil nbt
decode level.dat".

With --hex, input is treated as hex-encoded binary rather than raw
bytes. Whitespace in the hex input is ignored.`,
		Subcommands: []*cli.Command{
			decodeCommand(),
			encodeCommand(),
			diagCommand(),
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("nbt", &params) },
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, params.HexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("unknown argument %q (expected a subcommand or a file path)", remainingArgs[0])
			}
			return decodeTree(data, os.Stdout, params.Format, params.Compact)
		},
		Examples: []cli.Example{
			{
				Description: "Decode a compressed file to pretty JSON",
				Command:     "anvil nbt level.dat",
			},
			{
				Description: "Decode stdin to compact JSON",
				Command:     "anvil nbt --compact < level.dat",
			},
			{
				Description: "Convert JSON to a gzip-compressed tree",
				Command:     "anvil nbt encode --compression gzip level.json > level.dat",
			},
			{
				Description: "Inspect the wire types of a hex dump",
				Command:     "echo '0a0000 0300016100000007 00' | anvil nbt diag --hex",
			},
			{
				Description: "Round-trip through YAML",
				Command:     "anvil nbt decode --format yaml level.dat | anvil nbt encode --input yaml",
			},
		},
	}
}
