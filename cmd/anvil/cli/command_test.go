// Copyright 2026 The Anvil Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "anvil",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "nbt",
				Run: func(args []string) error {
					called = "nbt"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"nbt"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "nbt" {
		t.Errorf("dispatched to %q, want %q", called, "nbt")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "anvil",
		Subcommands: []*Command{
			{
				Name: "region",
				Subcommands: []*Command{
					{
						Name: "list",
						Run: func(args []string) error {
							called = "region list"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"region", "list", "r.0.0.mca"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "region list" {
		t.Errorf("dispatched to %q, want %q", called, "region list")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "r.0.0.mca" {
		t.Errorf("args = %v, want [r.0.0.mca]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var format string
	var target string

	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.StringVar(&format, "format", "json", "output format")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--format", "yaml", "level.dat"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if format != "yaml" {
		t.Errorf("format = %q, want %q", format, "yaml")
	}
	if target != "level.dat" {
		t.Errorf("target = %q, want %q", target, "level.dat")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.Bool("compact", false, "compact output")
			flagSet.String("format", "json", "output format")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--compcat"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --compact") {
		t.Errorf("error = %q, want suggestion for '--compact'", errStr)
	}
	// Suggestion should be on the same line as the error, not buried.
	if !strings.Contains(errStr, "compcat") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	// Should include a pointer to --help.
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.Bool("compact", false, "compact output")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_RunFallbackWithArgs(t *testing.T) {
	var receivedArgs []string

	group := &Command{
		Name: "nbt",
		Subcommands: []*Command{
			{Name: "decode", Run: func(args []string) error { return nil }},
		},
		Run: func(args []string) error {
			receivedArgs = args
			return nil
		},
	}

	// "level.dat" is not a subcommand; with a Run fallback it becomes
	// a positional argument instead of an unknown-command error.
	if err := group.Execute([]string{"level.dat"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "level.dat" {
		t.Errorf("args = %v, want [level.dat]", receivedArgs)
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "anvil",
		Subcommands: []*Command{
			{Name: "nbt"},
			{Name: "region"},
			{Name: "version"},
		},
	}

	err := root.Execute([]string{"regoin"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"region\"") {
		t.Errorf("error = %q, want suggestion for 'region'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "anvil",
		Subcommands: []*Command{
			{Name: "nbt"},
			{Name: "region"},
		},
	}

	err := root.Execute([]string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			root := &Command{
				Name:    "anvil",
				Summary: "Tagged binary tree tooling",
				Subcommands: []*Command{
					{Name: "nbt", Summary: "Codec operations"},
				},
			}

			err := root.Execute([]string{helpArg})
			if err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name: "anvil",
		Subcommands: []*Command{
			{Name: "nbt", Summary: "Codec operations"},
		},
	}

	err := root.Execute([]string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "anvil",
		Description: "Tagged binary tree codec and world container tooling.",
		Subcommands: []*Command{
			{Name: "nbt", Summary: "Decode, encode, and inspect trees"},
			{Name: "region", Summary: "Read chunks out of region files"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Decode a player file to JSON",
				Command:     "anvil nbt decode player.dat",
			},
			{
				Description: "List the chunks in a region file",
				Command:     "anvil region list r.0.0.mca",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	// Verify structural elements are present.
	for _, want := range []string{
		"Tagged binary tree codec and world container tooling.",
		"Usage:",
		"anvil <command> [flags]",
		"Commands:",
		"nbt",
		"Decode, encode, and inspect trees",
		"region",
		"Read chunks out of region files",
		"Examples:",
		"anvil nbt decode player.dat",
		"anvil region list r.0.0.mca",
		"Run 'anvil <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "decode",
		Summary: "Decode binary trees to text",
		Usage:   "anvil nbt decode [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.String("format", "json", "output format")
			flagSet.Bool("compact", false, "compact output")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"anvil nbt decode [flags] [file]",
		"Flags:",
		"format",
		"compact",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "anvil"}
	nbt := &Command{Name: "nbt", parent: root}
	decode := &Command{Name: "decode", parent: nbt}

	if got := root.fullName(); got != "anvil" {
		t.Errorf("root.fullName() = %q, want %q", got, "anvil")
	}
	if got := nbt.fullName(); got != "anvil nbt" {
		t.Errorf("nbt.fullName() = %q, want %q", got, "anvil nbt")
	}
	if got := decode.fullName(); got != "anvil nbt decode" {
		t.Errorf("decode.fullName() = %q, want %q", got, "anvil nbt decode")
	}
}
