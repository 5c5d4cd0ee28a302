// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/anvil-foundation/anvil/cmd/anvil/cli"
	"github.com/anvil-foundation/anvil/nbt"
	"github.com/anvil-foundation/anvil/nbtfile"
	"github.com/anvil-foundation/anvil/nbtjson"
)

// encodeParams holds the parameters for the "anvil nbt encode" command.
type encodeParams struct {
	Input       string `flag:"input,i"     desc:"input format: json, yaml, or cbor" default:"json"`
	Compression string `flag:"compression" desc:"compression scheme: none, gzip, zlib, or lz4" default:"none"`
	Root        string `flag:"root"        desc:"root compound name"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert JSON, YAML, or CBOR to a binary tree",
		Description: `Read JSON (or YAML or CBOR with --input) from stdin or a file argument
and write the equivalent binary tree to stdout.

The top-level value must be an object; the wire format only admits a
compound at the root. Integer literals become ints, or longs when they
exceed 32 bits; fractional and exponent literals become doubles;
booleans become bytes. JSON input may carry // and /* */ comments and
trailing commas.

The output is binary. Compress it in the same step with --compression,
and pipe to "anvil nbt decode" or "xxd" to inspect.`,
		Usage: "anvil nbt encode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode JSON to a bare binary tree",
				Command:     "echo '{\"level\": 7}' | anvil nbt encode > out.nbt",
			},
			{
				Description: "Produce a gzip-compressed file with a named root",
				Command:     "anvil nbt encode --compression gzip --root Level level.json > level.dat",
			},
			{
				Description: "Round-trip: encode then decode",
				Command:     "echo '{\"count\": 42}' | anvil nbt encode | anvil nbt decode",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("encode", &params) },
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, false)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("encode takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return encodeTree(data, os.Stdout, params.Input, params.Compression, params.Root)
		},
	}
}

// encodeTree parses textual input in the given format, checks that the
// result is a compound, and writes the binary tree to w wrapped in the
// requested compression scheme.
func encodeTree(data []byte, w io.Writer, input, scheme, rootName string) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected %s data on stdin", input)
	}
	compression, err := nbtfile.ParseCompression(scheme)
	if err != nil {
		return err
	}

	var value nbt.Value
	switch input {
	case "json":
		value, err = nbtjson.Unmarshal(jsonc.ToJSON(data))
	case "yaml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return fmt.Errorf("decode YAML: %w", err)
		}
		value, err = valueFromYAML(&node)
	case "cbor":
		var decoded any
		if err := decMode.Unmarshal(data, &decoded); err != nil {
			return fmt.Errorf("decode CBOR: %w", err)
		}
		value, err = nbtjson.FromInterface(convertIntegers(decoded))
	default:
		return fmt.Errorf("unknown input format %q (expected json, yaml, or cbor)", input)
	}
	if err != nil {
		return err
	}

	root, ok := value.(nbt.Compound)
	if !ok {
		return fmt.Errorf("root must be an object (the wire format requires a compound root), got %s", value.Tag())
	}

	output, err := nbtfile.Encode(root, rootName, compression)
	if err != nil {
		return err
	}
	_, err = w.Write(output)
	return err
}

// convertIntegers recursively rewrites the integer widths the CBOR
// decoder produces (uint64 for positive values, int64 for negative)
// to the narrowest signed width that holds each value, so CBOR
// integers get the same width-based typing as JSON integer literals.
// Values above the signed 64-bit range pass through for the tree
// builder to reject.
func convertIntegers(v any) any {
	switch value := v.(type) {
	case uint64:
		if value <= math.MaxInt32 {
			return int32(value)
		}
		if value <= math.MaxInt64 {
			return int64(value)
		}
		return value

	case int64:
		if value >= math.MinInt32 && value <= math.MaxInt32 {
			return int32(value)
		}
		return value

	case map[string]any:
		for key, element := range value {
			value[key] = convertIntegers(element)
		}
		return value

	case []any:
		for index, element := range value {
			value[index] = convertIntegers(element)
		}
		return value

	default:
		return v
	}
}
