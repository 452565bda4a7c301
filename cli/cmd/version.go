package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/catalogi/cli/render"
	"github.com/pithecene-io/catalogi/types"
)

// VersionResponse is the response for the version command.
type VersionResponse struct {
	Version         string `json:"version"`
	ContractVersion string `json:"contract_version"`
	Plugin          string `json:"plugin"`
	Commit          string `json:"commit"`
}

// VersionCommand returns the version command.
// It never contacts the gateway.
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version information",
		Flags:  ReadOnlyFlags(),
		Action: versionAction(commit),
	}
}

func versionAction(commit string) cli.ActionFunc {
	return func(c *cli.Context) error {
		r, err := render.NewRenderer(c)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if err := rejectTUI(c, "version command"); err != nil {
			return err
		}

		return r.Render(VersionResponse{
			Version:         types.Version,
			ContractVersion: types.ContractVersion,
			Plugin:          types.PluginPackage,
			Commit:          commit,
		})
	}
}
