// Package main is the entry point for the npk CLI.
//
// npk provisions a GPU spot-compute cluster on AWS. Before any
// infrastructure is touched it runs a preflight survey of the account:
// service quotas and availability zones across every usable region, the
// spot service-linked role, and DNS delegation. Deployment proceeds only
// from a validated settings snapshot.
//
// Commands: preflight, deploy, version, completion.
//
// For detailed usage information, run:
//
//	npk --help
package main

import (
	"fmt"
	"os"

	"github.com/PowerPress/npk/cmd/npk/commands"
	"github.com/PowerPress/npk/cmd/npk/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, handlers.FormatError(err))
		os.Exit(1)
	}
}
