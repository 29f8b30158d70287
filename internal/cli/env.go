// Package cli wires configuration, storage, observability and the toolkit
// into the commands of the stencil binary.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/stencil"
	"github.com/aretw0/stencil/internal/logging"
	"github.com/aretw0/stencil/pkg/adapters/file"
	"github.com/aretw0/stencil/pkg/adapters/memory"
	"github.com/aretw0/stencil/pkg/adapters/redis"
	"github.com/aretw0/stencil/pkg/config"
	"github.com/aretw0/stencil/pkg/observability"
	"github.com/aretw0/stencil/pkg/ports"
	"github.com/aretw0/stencil/pkg/session"
)

// Options are the global flags shared by every command.
type Options struct {
	ConfigPath string
	LogLevel   string // overrides the configured level when set
	LogJSON    bool
	Store      string // overrides the configured store kind when set
	Stderr     io.Writer
}

// Env is the assembled runtime of one command invocation.
type Env struct {
	Config  config.Config
	Logger  *slog.Logger
	Kit     *stencil.Toolkit
	Store   ports.DocumentStore
	Locker  ports.DistributedLocker
	Metrics *observability.Metrics

	closers []func() error
}

// Setup loads the configuration and builds the environment it describes.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Store != "" {
		cfg.Store.Kind = opts.Store
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	levelName := cfg.LogLevel
	if opts.LogLevel != "" {
		levelName = opts.LogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := logging.NewJSON(stderr, level)
	if !opts.LogJSON {
		logger = logging.NewText(stderr, level)
	}

	env := &Env{Config: cfg, Logger: logger}

	kitOpts := []stencil.Option{
		stencil.WithConfig(cfg),
		stencil.WithLogger(logger),
	}
	if level <= slog.LevelDebug {
		kitOpts = append(kitOpts, stencil.WithLifecycleHooks(observability.LoggingHooks(logger)))
	}
	if cfg.Metrics.Enabled {
		env.Metrics = observability.NewMetrics(cfg.Metrics.Namespace)
		kitOpts = append(kitOpts, stencil.WithLifecycleHooks(env.Metrics.Hooks()))
	}
	env.Kit = stencil.New(kitOpts...)

	if err := env.openStore(); err != nil {
		return nil, err
	}
	return env, nil
}

func (e *Env) openStore() error {
	sc := e.Config.Store
	switch strings.ToLower(sc.Kind) {
	case config.StoreMemory:
		e.Store = memory.NewStore()
	case config.StoreFile:
		e.Store = file.New(filepath.Join(sc.Path, "documents"))
	case config.StoreRedis:
		prefix := sc.Redis.Prefix
		store := redis.New(sc.Redis.Addr, sc.Redis.Password, sc.Redis.DB,
			redis.WithPrefix(prefix+"doc:"),
			redis.WithTTL(sc.Redis.TTL),
		)
		e.Store = store
		e.Locker = redis.NewLocker(store.Client(), prefix)
		e.closers = append(e.closers, store.Close)
	default:
		return fmt.Errorf("%w: store kind %q", config.ErrInvalid, sc.Kind)
	}
	e.Logger.Debug("document store ready", "kind", sc.Kind)
	return nil
}

// Sessions creates a session manager over the environment's store.
func (e *Env) Sessions() *session.Manager {
	opts := []session.Option{session.WithLogger(e.Logger)}
	if e.Locker != nil {
		opts = append(opts, session.WithLocker(e.Locker))
	}
	return session.NewManager(e.Store, e.Kit, opts...)
}

// Close releases store connections.
func (e *Env) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
