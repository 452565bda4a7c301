package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/catalogi/adapter"
	"github.com/pithecene-io/catalogi/adapter/redis"
	"github.com/pithecene-io/catalogi/adapter/webhook"
	"github.com/pithecene-io/catalogi/cli/config"
	"github.com/pithecene-io/catalogi/dispatch"
	"github.com/pithecene-io/catalogi/lode"
	"github.com/pithecene-io/catalogi/log"
	"github.com/pithecene-io/catalogi/metrics"
	"github.com/pithecene-io/catalogi/operation"
	"github.com/pithecene-io/catalogi/resource"
	"github.com/pithecene-io/catalogi/service"
	"github.com/pithecene-io/catalogi/service/remote"
)

// Env is the wired runtime shared by commands that dispatch.
type Env struct {
	Config     *config.Config
	Logger     *log.Logger
	Resources  *resource.Store
	Journal    *lode.Journal
	Metrics    *metrics.Collector
	Notifier   adapter.Adapter
	Dispatcher *dispatch.Dispatcher

	client *remote.Client
}

// envOptions selects which parts of Env are built.
type envOptions struct {
	// gateway builds the remote service client and the dispatcher.
	gateway bool
	// journal opens the invocation journal when storage is configured.
	// An unavailable journal is logged and skipped.
	journal bool
}

// descriptors returns the operation and command set with placeholder
// bindings. Only metadata (names, schemas, targets) is read from it.
func descriptors() service.Set {
	return remote.NewSet(nil)
}

// loadConfig reads --config, or catalogi.yaml in the working directory.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadDefault(c.String("config"))
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}
	return cfg, nil
}

// setupEnv builds the runtime from config and flags.
// The caller must Close the returned Env.
func setupEnv(ctx context.Context, c *cli.Context, opts envOptions) (*Env, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	env := &Env{
		Config:  cfg,
		Logger:  log.NewLogger(c.Bool("verbose")),
		Metrics: metrics.NewCollector(),
	}

	env.Resources, err = resource.Load(resolveString(c, "resources", cfg.Resources), env.Logger)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("failed to load resources: %v", err), 1)
	}

	if opts.journal {
		journal, err := buildJournal(ctx, cfg.Storage)
		if err != nil {
			env.Logger.Warn("journal unavailable, invocations will not be recorded", map[string]any{
				"backend": cfg.Storage.Backend,
				"path":    cfg.Storage.Path,
				"error":   err.Error(),
			})
		} else {
			env.Journal = journal
		}
	}

	if !opts.gateway {
		return env, nil
	}

	env.client, err = remote.New(remote.Config{
		Endpoint: resolveString(c, "gateway", cfg.Service.Endpoint),
		Codec:    cfg.Service.Codec,
		Headers:  cfg.Service.Headers,
		Timeout:  cfg.Service.Timeout.Duration,
	})
	if err != nil {
		env.Close()
		return nil, cli.Exit(fmt.Sprintf("%v (set service.endpoint or --gateway)", err), 1)
	}

	env.Notifier, err = buildNotifier(cfg.Adapter, env.Logger)
	if err != nil {
		env.Close()
		return nil, cli.Exit(fmt.Sprintf("failed to create adapter: %v", err), 1)
	}

	set := remote.NewSet(env.client)
	var journal dispatch.Journal
	if env.Journal != nil {
		journal = env.Journal
	}
	env.Dispatcher = dispatch.New(
		operation.NewRegistry(operation.Catalog(set)...),
		operation.Commands(set),
		env.Resources,
		dispatch.Options{
			Plugin:   resolveString(c, "plugin", cfg.Plugin),
			Validate: cfg.ShouldValidate() && !c.Bool("no-validate"),
			Journal:  journal,
			Metrics:  env.Metrics,
			Notifier: env.Notifier,
			Logger:   env.Logger,
		},
	)
	return env, nil
}

// Close releases the journal, notifier and client. Errors are logged.
func (e *Env) Close() {
	var errs []error
	if e.Journal != nil {
		errs = append(errs, e.Journal.Close())
	}
	if e.Notifier != nil {
		errs = append(errs, e.Notifier.Close())
	}
	if e.client != nil {
		errs = append(errs, e.client.Close())
	}
	if err := errors.Join(errs...); err != nil {
		e.Logger.Warn("failed to release resources", map[string]any{"error": err.Error()})
	}
	_ = e.Logger.Sync()
}

// buildJournal opens the configured journal. An empty backend disables it.
func buildJournal(ctx context.Context, s config.StorageConfig) (*lode.Journal, error) {
	switch s.Backend {
	case "":
		return nil, nil
	case "fs":
		return lode.NewFSJournal(s.Dataset, s.Path)
	case "s3":
		bucket, prefix := lode.ParseS3Path(s.Path)
		return lode.NewS3Journal(ctx, s.Dataset, lode.S3Config{
			Bucket:       bucket,
			Prefix:       prefix,
			Region:       s.Region,
			Endpoint:     s.Endpoint,
			UsePathStyle: s.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s (must be fs or s3)", s.Backend)
	}
}

// buildNotifier creates the completion adapter. An empty type disables it.
func buildNotifier(a config.AdapterConfig, logger *log.Logger) (adapter.Adapter, error) {
	retries := webhook.DefaultRetries
	if a.Retries != nil {
		retries = *a.Retries
	}

	switch a.Type {
	case "":
		return nil, nil
	case "webhook":
		n, err := webhook.New(webhook.Config{
			URL:     a.URL,
			Headers: a.Headers,
			Timeout: a.Timeout.Duration,
			Retries: retries,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("notifier ready", map[string]any{"adapter": "webhook", "url": a.URL})
		return n, nil
	case "redis":
		n, err := redis.New(redis.Config{
			URL:     a.URL,
			Channel: a.Channel,
			Timeout: a.Timeout.Duration,
			Retries: retries,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("notifier ready", map[string]any{"adapter": "redis", "channel": n.Channel()})
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported adapter type: %s (must be webhook or redis)", a.Type)
	}
}

// resolveString returns the flag value when set, else the config value,
// else the flag default.
func resolveString(c *cli.Context, name, configured string) string {
	if c.IsSet(name) || configured == "" {
		return c.String(name)
	}
	return configured
}

// exitForResult maps a dispatch result to the process exit status:
// errors and empty results exit 1.
func exitForResult(name string, res dispatch.Result, err error) error {
	if err != nil {
		return cli.Exit(fmt.Sprintf("%s failed: %v", name, err), 1)
	}
	if !res.OK {
		return cli.Exit(fmt.Sprintf("%s returned no result", name), 1)
	}
	return nil
}
