package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/catalogi/resource"
	"github.com/pithecene-io/catalogi/server"
)

// DefaultAddr is the listen address when neither --addr nor server.addr is set.
const DefaultAddr = ":8080"

// ServeCommand returns the serve command.
// It exposes the action handlers over HTTP for gateway triggers and
// hot-reloads resource overrides while running.
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve action handlers over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides server.addr)",
				Value: DefaultAddr,
			},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	env, err := setupEnv(c.Context, c, envOptions{gateway: true, journal: true})
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := c.Context
	sugar := env.Logger.Sugar()

	if dir := env.Resources.Dir(); dir != "" {
		env.Resources.OnChange(func(records []resource.Record) {
			sugar.Infof("resources reloaded from %s (%d records)", dir, len(records))
		})
		go func() {
			if err := env.Resources.Watch(ctx); err != nil {
				sugar.Warnf("resource watcher stopped: %v", err)
			}
		}()
	}

	var history server.History
	if env.Journal != nil {
		history = env.Journal
	}
	handler := server.NewHandler(env.Dispatcher, env.Resources, history, env.Metrics, env.Logger)

	addr := resolveString(c, "addr", env.Config.Server.Addr)
	if err := server.Serve(ctx, addr, handler.Router(), env.Logger); err != nil {
		return cli.Exit(fmt.Sprintf("server failed: %v", err), 1)
	}
	return nil
}
