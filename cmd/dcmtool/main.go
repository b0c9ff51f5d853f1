// Command dcmtool inspects and edits DICOM Part 10 files.
package main

import (
	"os"

	"github.com/brightlake/dicomcore/cmd/dcmtool/internal/cli"
)

// version, commit, and date are overridden at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cli.Run(version, commit, date); err != nil {
		os.Exit(1)
	}
}
