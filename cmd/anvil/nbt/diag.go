// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/anvil-foundation/anvil/cmd/anvil/cli"
	"github.com/anvil-foundation/anvil/nbt"
	"github.com/anvil-foundation/anvil/nbtfile"
)

// diagParams holds the parameters for the "anvil nbt diag" command.
type diagParams struct {
	HexInput bool `flag:"hex,x" desc:"treat input as hex-encoded binary"`
}

func diagCommand() *cli.Command {
	var params diagParams

	return &cli.Command{
		Name:    "diag",
		Summary: "Show a type-preserving dump of a binary tree",
		Description: `Read a binary tree from stdin (or a file argument) and print what the
wire actually says.

Unlike JSON or YAML output, the dump preserves the wire types: scalar
kinds carry their conventional suffixes (1b, 1s, 1, 1L, 1.5f, 1.5d),
and the packed array kinds are distinguished from lists by their
prefixes ([B; ...], [I; ...], [L; ...]). Two header lines name the
container facts the textual formats drop: the compression scheme and
the root compound's name.

Example output:

  compression: gzip
  root: ""
  {id: 42, pos: [1.5d, 2.5d], data: [B; 1b, -2b]}`,
		Usage: "anvil nbt diag [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Inspect the wire types of a player file",
				Command:     "anvil nbt diag player.dat",
			},
			{
				Description: "Encode JSON and inspect what it became",
				Command:     "echo '{\"count\": 42}' | anvil nbt encode | anvil nbt diag",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("diag", &params) },
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, params.HexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return fmt.Errorf("diag takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return diagTree(data, os.Stdout)
		},
	}
}

// diagTree unwraps compression and prints the wire-level facts the
// textual bridges drop: the compression scheme, the root name, and the
// tree in stringified notation with type suffixes.
func diagTree(data []byte, w io.Writer) error {
	if len(data) == 0 {
		return fmt.Errorf("empty input: expected binary tree data on stdin")
	}
	scheme := nbtfile.Detect(data)
	root, name, err := nbtfile.Decode(data)
	if err != nil {
		return err
	}

	notation, err := stringify(nil, root)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "compression: %s\n", scheme)
	fmt.Fprintf(w, "root: %s\n", strconv.Quote(name))
	_, err = fmt.Fprintf(w, "%s\n", notation)
	return err
}

// stringify appends the stringified notation for v to dst. The
// notation is the ecosystem's conventional text form of the format:
// suffixed scalars, quoted strings, [B;]/[I;]/[L;] array prefixes,
// and bare compound keys where the key is bare-safe. Non-finite
// floats print as NaN/+Inf/-Inf with their kind suffix; they have no
// standard notation but a diagnostic dump must show them.
func stringify(dst []byte, v nbt.Value) ([]byte, error) {
	switch value := v.(type) {
	case nbt.Byte:
		return append(strconv.AppendInt(dst, int64(value), 10), 'b'), nil
	case nbt.Short:
		return append(strconv.AppendInt(dst, int64(value), 10), 's'), nil
	case nbt.Int:
		return strconv.AppendInt(dst, int64(value), 10), nil
	case nbt.Long:
		return append(strconv.AppendInt(dst, int64(value), 10), 'L'), nil
	case nbt.Float:
		return append(strconv.AppendFloat(dst, float64(value), 'g', -1, 32), 'f'), nil
	case nbt.Double:
		return append(strconv.AppendFloat(dst, float64(value), 'g', -1, 64), 'd'), nil
	case nbt.String:
		return strconv.AppendQuote(dst, string(value)), nil

	case nbt.ByteArray:
		dst = append(dst, "[B;"...)
		for i, element := range value {
			dst = append(dst, elementSeparator(i)...)
			dst = append(strconv.AppendInt(dst, int64(element), 10), 'b')
		}
		return append(dst, ']'), nil
	case nbt.IntArray:
		dst = append(dst, "[I;"...)
		for i, element := range value {
			dst = append(dst, elementSeparator(i)...)
			dst = strconv.AppendInt(dst, int64(element), 10)
		}
		return append(dst, ']'), nil
	case nbt.LongArray:
		dst = append(dst, "[L;"...)
		for i, element := range value {
			dst = append(dst, elementSeparator(i)...)
			dst = append(strconv.AppendInt(dst, int64(element), 10), 'L')
		}
		return append(dst, ']'), nil

	case nbt.List:
		dst = append(dst, '[')
		var err error
		for i := 0; i < value.Len(); i++ {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst, err = stringify(dst, value.Index(i))
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil

	case nbt.Compound:
		dst = append(dst, '{')
		var err error
		for i, entry := range value {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			if bareKey(entry.Key) {
				dst = append(dst, entry.Key...)
			} else {
				dst = strconv.AppendQuote(dst, entry.Key)
			}
			dst = append(dst, ": "...)
			if entry.Value == nil {
				return nil, fmt.Errorf("compound entry %q has nil value", entry.Key)
			}
			dst, err = stringify(dst, entry.Value)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil

	default:
		return nil, fmt.Errorf("unsupported value %T", v)
	}
}

// elementSeparator returns the separator preceding array element i:
// a space after the prefix, a comma-space between elements.
func elementSeparator(i int) string {
	if i == 0 {
		return " "
	}
	return ", "
}

// bareKey reports whether key can appear unquoted in the notation:
// nonempty and containing only letters, digits, and _-.+ characters.
func bareKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.' || r == '+':
		default:
			return false
		}
	}
	return true
}
