package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/catalogi/cli/render"
	"github.com/pithecene-io/catalogi/cli/tui"
	"github.com/pithecene-io/catalogi/operation"
	"github.com/pithecene-io/catalogi/resource"
	"github.com/pithecene-io/catalogi/schema"
	"github.com/pithecene-io/catalogi/server"
	"github.com/pithecene-io/catalogi/types"
)

// ActionsCommand returns the actions command with subcommands.
func ActionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "actions",
		Usage: "List, describe, validate and run action handlers",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List registered action handlers",
				Flags:  ReadOnlyFlags(),
				Action: actionsListAction,
			},
			{
				Name:      "describe",
				Usage:     "Show the configuration schema of an action handler",
				ArgsUsage: "<name|$id>",
				Flags:     ReadOnlyFlags(),
				Action:    actionsDescribeAction,
			},
			{
				Name:      "validate",
				Usage:     "Check action configuration against its schema (all handlers when no name is given)",
				ArgsUsage: "[name|$id]",
				Flags: append(ReadOnlyFlags(), &cli.StringFlag{
					Name:  "configuration",
					Usage: "Configuration as JSON (default: resolved from the resource registry)",
				}),
				Action: actionsValidateAction,
			},
			{
				Name:      "run",
				Usage:     "Run an action handler once",
				ArgsUsage: "<name|$id>",
				Flags: append(ReadOnlyFlags(),
					&cli.StringFlag{
						Name:  "data",
						Usage: "Action payload as JSON",
						Value: "{}",
					},
					&cli.StringFlag{
						Name:  "data-file",
						Usage: "Read the action payload from a JSON file",
					},
					&cli.StringFlag{
						Name:  "configuration",
						Usage: "Configuration as JSON (default: resolved from the resource registry)",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Suppress result output",
					},
				),
				Action: actionsRunAction,
			},
		},
	}
}

// catalogRegistry is the operation registry with placeholder bindings,
// for commands that only read metadata.
func catalogRegistry() *operation.Registry {
	return operation.NewRegistry(operation.Catalog(descriptors())...)
}

func actionsListAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := rejectTUI(c, "actions list"); err != nil {
		return err
	}
	return r.Render(server.Summarize(catalogRegistry()))
}

func actionsDescribeAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	op, err := operationArg(c)
	if err != nil {
		return err
	}

	if c.Bool("tui") {
		return r.RenderTUI(tui.ViewDescribeAction, op.Configuration())
	}
	return r.Render(op.Configuration().Document())
}

// ValidationResult is one row of `actions validate`.
type ValidationResult struct {
	Name   string              `json:"name"`
	Action string              `json:"action"`
	Valid  bool                `json:"valid"`
	Errors []schema.FieldError `json:"errors,omitempty"`
	Error  string              `json:"error,omitempty"`
}

func actionsValidateAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := rejectTUI(c, "actions validate"); err != nil {
		return err
	}

	var supplied types.Data
	if raw := c.String("configuration"); raw != "" {
		if supplied, err = parseData(raw); err != nil {
			return cli.Exit(fmt.Sprintf("invalid --configuration: %v", err), 1)
		}
	}

	reg := catalogRegistry()
	ops := reg.List()
	if c.Args().Present() {
		op, err := operationArg(c)
		if err != nil {
			return err
		}
		ops = []operation.Operation{op}
	} else if supplied != nil {
		return cli.Exit("--configuration requires an action name", 1)
	}

	env, err := setupEnv(c.Context, c, envOptions{})
	if err != nil {
		return err
	}
	defer env.Close()
	plugin := resolveString(c, "plugin", env.Config.Plugin)

	results := make([]ValidationResult, 0, len(ops))
	failed := 0
	for _, op := range ops {
		res := validateOne(env.Resources, op, supplied, plugin)
		if !res.Valid {
			failed++
		}
		results = append(results, res)
	}

	if err := r.Render(results); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d configurations are invalid", failed, len(results)), 1)
	}
	return nil
}

// validateOne checks the supplied configuration, or the one resolved from
// the resource registry, against op's schema.
func validateOne(store *resource.Store, op operation.Operation, supplied types.Data, plugin string) ValidationResult {
	res := ValidationResult{Name: op.Name, Action: op.Action}

	cfg := supplied
	var err error
	if cfg == nil {
		cfg, err = store.Resolve(op.Action, plugin)
	}
	if err == nil {
		err = op.Configuration().Validate(cfg)
	}

	var verr *schema.ValidationError
	switch {
	case err == nil:
		res.Valid = true
	case errors.As(err, &verr):
		res.Errors = verr.Fields
	default:
		res.Error = err.Error()
	}
	return res
}

// RunResponse is the output of `actions run`.
type RunResponse struct {
	InvocationID string        `json:"invocation_id"`
	Outcome      types.Outcome `json:"outcome"`
	Result       any           `json:"result"`
}

func actionsRunAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := rejectTUI(c, "actions run"); err != nil {
		return err
	}
	op, err := operationArg(c)
	if err != nil {
		return err
	}

	data, err := actionData(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	var cfg types.Data
	if raw := c.String("configuration"); raw != "" {
		if cfg, err = parseData(raw); err != nil {
			return cli.Exit(fmt.Sprintf("invalid --configuration: %v", err), 1)
		}
	}

	env, err := setupEnv(c.Context, c, envOptions{gateway: true, journal: true})
	if err != nil {
		return err
	}
	defer env.Close()

	res, err := env.Dispatcher.RunAction(c.Context, op.Name, data, cfg)
	if err == nil && !c.Bool("quiet") {
		if rerr := r.Render(RunResponse{
			InvocationID: res.Invocation.ID,
			Outcome:      res.Invocation.Outcome,
			Result:       res.Value,
		}); rerr != nil {
			return cli.Exit(fmt.Sprintf("failed to render result: %v", rerr), 1)
		}
	}
	return exitForResult(op.Name, res, err)
}

// operationArg looks up the operation named by the first argument.
func operationArg(c *cli.Context) (operation.Operation, error) {
	name := c.Args().First()
	if name == "" {
		return operation.Operation{}, cli.Exit("an action name or $id is required", 1)
	}
	op, err := catalogRegistry().Get(name)
	if err != nil {
		return operation.Operation{}, cli.Exit(err.Error(), 1)
	}
	return op, nil
}

// actionData reads the payload from --data-file or --data.
func actionData(c *cli.Context) (types.Data, error) {
	if path := c.String("data-file"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read data file: %w", err)
		}
		data, err := parseData(string(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid data file %s: %w", path, err)
		}
		return data, nil
	}
	data, err := parseData(c.String("data"))
	if err != nil {
		return nil, fmt.Errorf("invalid --data: %w", err)
	}
	return data, nil
}

// parseData decodes a JSON object.
func parseData(raw string) (types.Data, error) {
	var data types.Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	if data == nil {
		data = types.Data{}
	}
	return data, nil
}
