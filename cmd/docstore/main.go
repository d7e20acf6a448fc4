package main

import (
	"github.com/jmgilman/go/docstore/internal/cli"
)

// Build information. These are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cli.Execute(cli.VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
		BuiltBy: builtBy,
	})
}
