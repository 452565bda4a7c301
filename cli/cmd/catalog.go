package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/catalogi/cli/render"
	"github.com/pithecene-io/catalogi/operation"
)

// CatalogCommands returns one CLI command per catalog command, e.g.
// `catalogi opencatalogi:developeroverheid:components --component abc`.
func CatalogCommands() []*cli.Command {
	defs := operation.Commands(descriptors())
	out := make([]*cli.Command, 0, len(defs))
	for _, def := range defs {
		out = append(out, catalogCommand(def))
	}
	return out
}

func catalogCommand(def operation.Command) *cli.Command {
	flags := []cli.Flag{
		FormatFlag,
		NoColorFlag,
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Suppress result output",
		},
	}
	if t := def.Target; t != nil {
		flags = append([]cli.Flag{&cli.StringFlag{
			Name:    t.Flag,
			Aliases: []string{t.Alias},
			Usage:   fmt.Sprintf("Only process the %s with this id", t.Entity),
		}}, flags...)
	}

	return &cli.Command{
		Name:        def.Name,
		Usage:       def.Usage,
		Description: def.Help,
		Category:    "catalog",
		Flags:       flags,
		Action: func(c *cli.Context) error {
			return catalogAction(c, def)
		},
	}
}

func catalogAction(c *cli.Context, def operation.Command) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var id string
	if def.Target != nil {
		id = c.String(def.Target.Flag)
	}

	env, err := setupEnv(c.Context, c, envOptions{gateway: true, journal: true})
	if err != nil {
		return err
	}
	defer env.Close()

	sugar := env.Logger.Sugar()
	if id != "" {
		sugar.Infof("running %s for %s %s", def.Name, def.Target.Entity, id)
	} else {
		sugar.Infof("running %s", def.Name)
	}

	res, err := env.Dispatcher.RunCommand(c.Context, def.Name, id)
	if err == nil && res.OK && !c.Bool("quiet") {
		if rerr := r.Render(res.Value); rerr != nil {
			return cli.Exit(fmt.Sprintf("failed to render result: %v", rerr), 1)
		}
	}
	return exitForResult(def.Name, res, err)
}
