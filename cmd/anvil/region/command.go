// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

// Package region implements the "anvil region" command group for
// inspecting sectored world container files.
//
// Subcommands:
//   - list: table of the chunks a region file stores
//   - extract: one chunk's tree, decoded or raw
package region

import (
	"github.com/anvil-foundation/anvil/cmd/anvil/cli"
)

// Command returns the "region" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "region",
		Summary: "Inspect sectored chunk archives",
		Description: `Inspect region files: sectored archives holding up to a 32×32 grid of
compressed trees.

The list subcommand prints the chunk table from the file header; the
extract subcommand pulls a single chunk out by its grid coordinates.`,
		Usage: "anvil region <subcommand> [flags]",
		Subcommands: []*cli.Command{
			listCommand(),
			extractCommand(),
		},
	}
}
