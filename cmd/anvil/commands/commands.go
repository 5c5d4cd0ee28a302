// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete anvil CLI command tree. It
// exists as its own package so tests can construct and walk the full
// tree without going through main.
package commands

import (
	"fmt"

	"github.com/anvil-foundation/anvil/cmd/anvil/cli"
	nbtcmd "github.com/anvil-foundation/anvil/cmd/anvil/nbt"
	regioncmd "github.com/anvil-foundation/anvil/cmd/anvil/region"
	"github.com/anvil-foundation/anvil/lib/version"
)

// Root builds and returns the complete anvil CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "anvil",
		Description: `Anvil: tooling for the tagged binary tree format.

Decode binary trees to JSON, YAML, or CBOR, encode them back, inspect
their wire types, and pick apart the sectored region archives that
hold them.`,
		Subcommands: []*cli.Command{
			nbtcmd.Command(),
			regioncmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func([]string) error {
					fmt.Printf("anvil %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Decode a player file to JSON",
				Command:     "anvil nbt decode player.dat",
			},
			{
				Description: "Re-encode edited JSON as gzipped binary",
				Command:     "anvil nbt encode --compression gzip level.json > level.dat",
			},
			{
				Description: "Inspect the wire types behind the JSON",
				Command:     "anvil nbt diag level.dat",
			},
			{
				Description: "See what a region file holds",
				Command:     "anvil region list r.0.0.mca",
			},
			{
				Description: "Pull one chunk out as JSON",
				Command:     "anvil region extract --x 3 --z 7 r.0.0.mca",
			},
		},
	}
}
