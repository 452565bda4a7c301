package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/catalogi/cli/render"
	"github.com/pithecene-io/catalogi/cli/tui"
	"github.com/pithecene-io/catalogi/lode"
	"github.com/pithecene-io/catalogi/metrics"
	"github.com/pithecene-io/catalogi/types"
)

// historyWarningThreshold is the number of rows above which we suggest --limit.
const historyWarningThreshold = 100

// isStderrTTY returns true if stderr is a TTY.
func isStderrTTY() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func historyFilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "operation",
			Usage: "Only invocations of this operation",
		},
		&cli.StringFlag{
			Name:  "kind",
			Usage: "Filter by kind: action, command",
		},
		&cli.StringFlag{
			Name:  "outcome",
			Usage: "Filter by outcome: success, empty, error",
		},
	}
}

// HistoryCommand returns the history command.
// Reads the invocation journal configured under storage.
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List journaled invocations, newest first",
		Flags: append(append(ReadOnlyFlags(), historyFilterFlags()...),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of invocations to return (0 = no limit)",
				Value: 0,
			},
		),
		Action: historyAction,
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Summarize journaled invocations by outcome and operation",
				Flags:  append(ReadOnlyFlags(), historyFilterFlags()...),
				Action: historyStatsAction,
			},
		},
	}
}

func historyFilter(c *cli.Context) (lode.Filter, error) {
	f := lode.Filter{
		Operation: c.String("operation"),
		Kind:      types.InvocationKind(c.String("kind")),
		Outcome:   types.Outcome(c.String("outcome")),
	}
	switch f.Kind {
	case "", types.KindAction, types.KindCommand:
	default:
		return f, fmt.Errorf("invalid --kind %q (must be action or command)", f.Kind)
	}
	switch f.Outcome {
	case "", types.OutcomeSuccess, types.OutcomeEmpty, types.OutcomeError:
	default:
		return f, fmt.Errorf("invalid --outcome %q (must be success, empty or error)", f.Outcome)
	}
	if c.IsSet("limit") {
		if c.Int("limit") < 0 {
			return f, fmt.Errorf("--limit must be >= 0")
		}
		f.Limit = c.Int("limit")
	}
	return f, nil
}

// readHistory opens the journal and lists invocations matching the flags.
func readHistory(c *cli.Context) ([]types.Invocation, error) {
	f, err := historyFilter(c)
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}

	env, err := setupEnv(c.Context, c, envOptions{journal: true})
	if err != nil {
		return nil, err
	}
	defer env.Close()

	if env.Journal == nil {
		if env.Config.Storage.Backend != "" {
			return nil, cli.Exit(fmt.Sprintf("journal unavailable at %s", env.Config.Storage.Path), 1)
		}
		return nil, cli.Exit("no journal configured (set storage.backend and storage.path)", 1)
	}
	invs, err := env.Journal.List(c.Context, f)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("failed to read journal: %v", err), 1)
	}
	if invs == nil {
		invs = []types.Invocation{}
	}
	return invs, nil
}

func historyAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := rejectTUI(c, "history"); err != nil {
		return err
	}

	invs, err := readHistory(c)
	if err != nil {
		return err
	}

	// Warn if output is large and --limit was not specified (TTY only to avoid noise in pipelines)
	if len(invs) > historyWarningThreshold && !c.IsSet("limit") && isStderrTTY() {
		fmt.Fprintf(os.Stderr, "Warning: returning %d results. Consider using --limit to reduce output.\n\n", len(invs))
	}
	return r.Render(invs)
}

// Summarize folds journaled invocations into counters.
func Summarize(invs []types.Invocation) metrics.Snapshot {
	collector := metrics.NewCollector()
	for i := range invs {
		collector.ObserveInvocation(&invs[i])
	}
	return collector.Snapshot()
}

func historyStatsAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	invs, err := readHistory(c)
	if err != nil {
		return err
	}

	stats := Summarize(invs)
	if c.Bool("tui") {
		return r.RenderTUI(tui.ViewHistoryStats, stats)
	}
	return r.Render(stats)
}
