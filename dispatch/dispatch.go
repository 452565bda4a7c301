// Package dispatch runs operations and catalog commands the way the gateway
// would: it looks them up, resolves their configuration from the resource
// registry, optionally validates it, calls the service once, and records the
// invocation.
//
// Recording (journal, metrics, completion event) is best effort. A failure
// there is logged and never changes what the caller gets back.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pithecene-io/catalogi/adapter"
	"github.com/pithecene-io/catalogi/log"
	"github.com/pithecene-io/catalogi/metrics"
	"github.com/pithecene-io/catalogi/operation"
	"github.com/pithecene-io/catalogi/types"
)

// ErrUnknownCommand is returned when no catalog command has the given name.
var ErrUnknownCommand = errors.New("unknown command")

// notifyTimeout bounds a single completion notification, retries included.
const notifyTimeout = 30 * time.Second

// Resolver looks up the configuration of an action record.
// *resource.Store implements it.
type Resolver interface {
	Resolve(reference, plugin string) (types.Data, error)
}

// Journal persists finished invocations. *lode.Journal implements it.
type Journal interface {
	Record(ctx context.Context, inv *types.Invocation) error
}

// Options configures a Dispatcher. Zero values disable the matching concern.
type Options struct {
	// Plugin is the plugin id configuration is resolved for
	// (default types.PluginPackage).
	Plugin string
	// Validate checks configuration against the operation's schema before
	// the service is called.
	Validate bool
	Journal  Journal
	Metrics  *metrics.Collector
	Notifier adapter.Adapter
	Logger   *log.Logger

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

// Result is the outcome of one dispatched call.
type Result struct {
	// Value is the service's result, unmodified.
	Value any
	// OK reports whether Value counts as success (see operation.Succeeded).
	OK         bool
	Invocation types.Invocation
}

// Dispatcher runs operations and commands.
type Dispatcher struct {
	registry  *operation.Registry
	commands  map[string]operation.Command
	resources Resolver
	opts      Options
}

// New creates a dispatcher over the given operations and commands.
func New(registry *operation.Registry, commands []operation.Command, resources Resolver, opts Options) *Dispatcher {
	if opts.Plugin == "" {
		opts.Plugin = types.PluginPackage
	}
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}

	byName := make(map[string]operation.Command, len(commands))
	for _, c := range commands {
		byName[c.Name] = c
	}
	return &Dispatcher{
		registry:  registry,
		commands:  byName,
		resources: resources,
		opts:      opts,
	}
}

// Registry returns the operation registry.
func (d *Dispatcher) Registry() *operation.Registry {
	return d.registry
}

// Command returns the catalog command with the given name.
func (d *Dispatcher) Command(name string) (operation.Command, error) {
	c, ok := d.commands[name]
	if !ok {
		return operation.Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return c, nil
}

// RunAction runs the operation registered under name (or handler $id).
// A nil configuration is resolved from the operation's action record.
func (d *Dispatcher) RunAction(ctx context.Context, name string, data, configuration types.Data) (Result, error) {
	op, err := d.registry.Get(name)
	if err != nil {
		return Result{}, err
	}

	inv := d.begin(types.KindAction, op.Name, op.Reference, "")
	if data == nil {
		data = types.Data{}
	}

	return d.run(ctx, &inv, op.Name, op.Action, configuration, func(cfg types.Data) (any, error) {
		return op.Run(ctx, data, cfg)
	})
}

// RunCommand runs the catalog command with the given name. A non-empty id
// targets a single object. Configuration always comes from the command's
// action record.
func (d *Dispatcher) RunCommand(ctx context.Context, name, id string) (Result, error) {
	cmd, err := d.Command(name)
	if err != nil {
		return Result{}, err
	}

	inv := d.begin(types.KindCommand, cmd.Operation, cmd.Action, id)
	return d.run(ctx, &inv, cmd.Operation, cmd.Action, nil, func(cfg types.Data) (any, error) {
		value, _, err := cmd.Execute(ctx, cfg, id)
		return value, err
	})
}

func (d *Dispatcher) begin(kind types.InvocationKind, op, ref, target string) types.Invocation {
	return types.Invocation{
		ID:        d.opts.NewID(),
		Kind:      kind,
		Operation: op,
		Reference: ref,
		TargetID:  target,
		StartedAt: d.opts.Now(),
	}
}

// run resolves and validates configuration, calls fn once and records the
// invocation.
func (d *Dispatcher) run(ctx context.Context, inv *types.Invocation, opName, action string, cfg types.Data, fn func(types.Data) (any, error)) (Result, error) {
	logger := d.opts.Logger.WithInvocation(inv)

	cfg, err := d.configuration(opName, action, cfg)
	if err != nil {
		d.finish(ctx, logger, inv, nil, err)
		return Result{Invocation: *inv}, err
	}

	logger.Debug("calling service", map[string]any{"reference": inv.Reference})
	value, err := fn(cfg)
	ok := d.finish(ctx, logger, inv, value, err)
	return Result{Value: value, OK: ok, Invocation: *inv}, err
}

func (d *Dispatcher) configuration(opName, action string, cfg types.Data) (types.Data, error) {
	if cfg == nil {
		if d.resources == nil {
			return nil, fmt.Errorf("resolve configuration %s: no resource registry", action)
		}
		resolved, err := d.resources.Resolve(action, d.opts.Plugin)
		if err != nil {
			return nil, fmt.Errorf("resolve configuration: %w", err)
		}
		cfg = resolved
	}

	if d.opts.Validate {
		op, err := d.registry.Get(opName)
		if err != nil {
			return nil, err
		}
		if err := op.Configuration().Validate(cfg); err != nil {
			d.opts.Metrics.IncValidationFailure(opName)
			return nil, err
		}
	}
	return cfg, nil
}

// finish stamps the outcome on inv, records it and reports success.
func (d *Dispatcher) finish(ctx context.Context, logger *log.Logger, inv *types.Invocation, value any, err error) bool {
	inv.DurationMs = d.opts.Now().Sub(inv.StartedAt).Milliseconds()
	ok := false
	switch {
	case err != nil:
		inv.Outcome = types.OutcomeError
		inv.Message = err.Error()
	case operation.Succeeded(value):
		inv.Outcome = types.OutcomeSuccess
		ok = true
	default:
		inv.Outcome = types.OutcomeEmpty
	}

	fields := map[string]any{
		"outcome":     string(inv.Outcome),
		"duration_ms": inv.DurationMs,
	}
	if err != nil {
		fields["error"] = err.Error()
		logger.Error("invocation failed", fields)
	} else {
		logger.Info("invocation completed", fields)
	}

	d.record(context.WithoutCancel(ctx), logger, inv)
	return ok
}

func (d *Dispatcher) record(ctx context.Context, logger *log.Logger, inv *types.Invocation) {
	d.opts.Metrics.ObserveInvocation(inv)

	if d.opts.Journal != nil {
		err := d.opts.Journal.Record(ctx, inv)
		d.opts.Metrics.IncJournalWrite(err == nil)
		if err != nil {
			logger.Warn("journal write failed", map[string]any{"error": err.Error()})
		}
	}

	if d.opts.Notifier != nil {
		nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		err := d.opts.Notifier.Publish(nctx, adapter.NewInvocationCompletedEvent(inv))
		cancel()
		d.opts.Metrics.IncNotify(err == nil)
		if err != nil {
			logger.Warn("completion notification failed", map[string]any{"error": err.Error()})
		}
	}
}
