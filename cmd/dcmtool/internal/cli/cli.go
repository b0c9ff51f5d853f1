// Package cli wires dcmtool's subcommands into a single kong-parsed root.
package cli

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/brightlake/dicomcore/cmd/dcmtool/internal/build"
	"github.com/brightlake/dicomcore/cmd/dcmtool/internal/commands"
)

const (
	appName        = "dcmtool"
	appDescription = "DICOM Part 10 codec utility"
)

// CLI is the root command structure.
type CLI struct {
	Verbose bool `name:"verbose" short:"v" help:"Enable debug logging"`

	Dump       commands.DumpCmd       `cmd:"" help:"Inspect DICOM file contents"`
	Reinstance commands.ReinstanceCmd `cmd:"" help:"Assign a freshly generated SOPInstanceUID"`
	Version    VersionCmd             `cmd:"" help:"Print build information"`
}

// VersionCmd prints build metadata.
type VersionCmd struct{}

// Run prints the dcmtool build info.
func (c *VersionCmd) Run() error {
	build.PrintBuildInfo()
	return nil
}

// Run parses arguments and executes the selected dcmtool subcommand.
func Run(version, commit, date string) error {
	build.SetBuildInfo(version, commit, date)

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name(appName),
		kong.Description(appDescription),
		kong.UsageOnError(),
	)

	logger := setupLogger(cli.Verbose)

	if err := ctx.Run(); err != nil {
		logger.Error("command failed", "error", err)
		return err
	}
	return nil
}

// setupLogger configures and installs the default charmbracelet logger.
func setupLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
	log.SetDefault(logger)
	return logger
}
