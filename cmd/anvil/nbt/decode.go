// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/anvil-foundation/anvil/cmd/anvil/cli"
	"github.com/anvil-foundation/anvil/nbtfile"
	"github.com/anvil-foundation/anvil/nbtjson"
)

// decodeParams holds the parameters for the "anvil nbt decode" command.
type decodeParams struct {
	Format   string `flag:"format,f"  desc:"output format: json, yaml, or cbor" default:"json"`
	Compact  bool   `flag:"compact,c" desc:"compact single-line JSON"`
	HexInput bool   `flag:"hex,x"     desc:"treat input as hex-encoded binary"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert a binary tree to JSON, YAML, or CBOR",
		Description: `Read a binary tree from stdin (or a file argument) and write it to
stdout in a textual format.

Compressed input (gzip, zlib, LZ4 frame) is detected by its magic
bytes and unwrapped before decoding; bare uncompressed trees work too.

JSON output preserves key order. Integer and float kinds wider or
narrower than JSON's number repertoire are widened (bytes and shorts
print as plain integers); use "anvil nbt diag" for a representation
that preserves the wire types, and CBOR output for a binary format
that keeps integers and floats distinct.

The root compound's name is not part of the output. It is usually
empty; diag shows it when it matters.`,
		Usage: "anvil nbt decode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode a player file to pretty JSON",
				Command:     "anvil nbt decode player.dat",
			},
			{
				Description: "Decode to YAML",
				Command:     "anvil nbt decode --format yaml level.dat",
			},
			{
				Description: "Re-encode a hex wire dump as deterministic CBOR",
				Command:     "echo '0a0000 0300016100000007 00' | anvil nbt decode --hex --format cbor",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("decode", &params) },
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, params.HexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("decode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return decodeTree(data, os.Stdout, params.Format, params.Compact)
		},
	}
}

// decodeTree unwraps compression, decodes the tree, and writes it to w
// in the requested textual format. The root name is dropped; decode
// output carries the tree body only.
func decodeTree(data []byte, w io.Writer, format string, compact bool) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected binary tree data on stdin")
	}
	root, _, err := nbtfile.Decode(data)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		var output []byte
		if compact {
			output, err = nbtjson.Marshal(root)
		} else {
			output, err = nbtjson.MarshalIndent(root, "", "  ")
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(output))
		return err

	case "yaml":
		node, err := yamlFromValue(root)
		if err != nil {
			return err
		}
		output, err := yaml.Marshal(node)
		if err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		_, err = w.Write(output)
		return err

	case "cbor":
		value, err := nbtjson.Interface(root)
		if err != nil {
			return err
		}
		output, err := encMode.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode CBOR: %w", err)
		}
		_, err = w.Write(output)
		return err

	default:
		return fmt.Errorf("unknown output format %q (expected json, yaml, or cbor)", format)
	}
}
