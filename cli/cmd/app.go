package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/catalogi/types"
)

// NewApp assembles the catalogi CLI application.
func NewApp(commit string) *cli.App {
	commands := []*cli.Command{
		ActionsCommand(),
		ResourcesCommand(),
		HistoryCommand(),
		ServeCommand(),
		VersionCommand(commit),
	}
	commands = append(commands, CatalogCommands()...)

	return &cli.App{
		Name:     "catalogi",
		Usage:    "OpenCatalogi action handlers and catalog commands",
		Version:  types.Version + " (commit: " + commit + ")",
		Flags:    GlobalFlags(),
		Commands: commands,
	}
}
