package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/catalogi/cli/render"
	"github.com/pithecene-io/catalogi/cli/tui"
	"github.com/pithecene-io/catalogi/resource"
)

// ResourcesCommand returns the resources command with subcommands.
func ResourcesCommand() *cli.Command {
	return &cli.Command{
		Name:  "resources",
		Usage: "Inspect the action resource registry",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List action records (embedded defaults merged with overrides)",
				Flags:  ReadOnlyFlags(),
				Action: resourcesListAction,
			},
			{
				Name:      "describe",
				Usage:     "Show one action record",
				ArgsUsage: "<reference|action name>",
				Flags:     ReadOnlyFlags(),
				Action:    resourcesDescribeAction,
			},
		},
	}
}

// ResourceSummary is one row of `resources list`.
type ResourceSummary struct {
	Reference string `json:"reference"`
	Plugin    string `json:"plugin"`
	Version   string `json:"version"`
	Source    string `json:"source"`
}

func resourcesListAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := rejectTUI(c, "resources list"); err != nil {
		return err
	}

	env, err := setupEnv(c.Context, c, envOptions{})
	if err != nil {
		return err
	}
	defer env.Close()

	records := env.Resources.Records()
	if r.Format() != render.FormatTable {
		return r.Render(records)
	}

	rows := make([]ResourceSummary, 0, len(records))
	for _, rec := range records {
		rows = append(rows, summarizeRecord(rec))
	}
	return r.Render(rows)
}

func summarizeRecord(rec resource.Record) ResourceSummary {
	return ResourceSummary{
		Reference: rec.Reference,
		Plugin:    rec.Plugin,
		Version:   rec.Version,
		Source:    rec.Source,
	}
}

func resourcesDescribeAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ref := c.Args().First()
	if ref == "" {
		return cli.Exit("a reference or action name is required", 1)
	}
	if op, ok := catalogRegistry().Lookup(ref); ok {
		ref = op.Action
	}

	env, err := setupEnv(c.Context, c, envOptions{})
	if err != nil {
		return err
	}
	defer env.Close()

	rec, err := env.Resources.Get(ref)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.Bool("tui") {
		return r.RenderTUI(tui.ViewDescribeResource, rec)
	}
	return r.Render(rec)
}
