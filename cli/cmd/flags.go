// Package cmd provides CLI commands for the catalogi binary.
package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/catalogi/types"
)

// Shared flags for commands that render output.
var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// TUIFlag enables Bubble Tea interactive mode.
	// Only valid for describe and stats views.
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Enable interactive TUI mode (describe, stats only)",
	}
)

// GlobalFlags returns the application-level flags.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "Path to catalogi.yaml (default: ./catalogi.yaml if present)",
			EnvVars: []string{"CATALOGI_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "gateway",
			Usage:   "Gateway service API endpoint (overrides service.endpoint)",
			EnvVars: []string{"CATALOGI_GATEWAY"},
		},
		&cli.StringFlag{
			Name:  "resources",
			Usage: "Directory of action resource overrides (overrides resources)",
		},
		&cli.StringFlag{
			Name:  "plugin",
			Usage: "Plugin id configuration is resolved for (overrides plugin)",
			Value: types.PluginPackage,
		},
		&cli.BoolFlag{
			Name:  "no-validate",
			Usage: "Skip configuration validation before service calls",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
}

// ReadOnlyFlags returns the shared flags for all rendering commands.
// Includes --tui so that unsupported commands can provide explicit error messages
// instead of generic "flag not defined" errors.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
		TUIFlag,
	}
}

// rejectTUI fails when --tui is set on a command without a TUI view.
func rejectTUI(c *cli.Context, command string) error {
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for "+command, 1)
	}
	return nil
}
