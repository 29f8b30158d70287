package stencil

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/stencil/internal/logging"
	"github.com/aretw0/stencil/internal/runtime"
	"github.com/aretw0/stencil/pkg/config"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/registry"
	"github.com/aretw0/stencil/pkg/sketch"
	"github.com/aretw0/stencil/pkg/tools"
)

// Operator is a running instance of a tool bound to one host.
type Operator = runtime.Operator

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/aretw0/stencil.Version=...".
var Version = "0.1.0-dev"

// Values carries property values and pointers for non-interactive execution.
type Values = runtime.Values

// Toolkit is the high-level entry point for the Stencil library.
// It bundles the tool registry, configuration, logger and lifecycle hooks,
// and builds operators for a scene.
type Toolkit struct {
	registry  *registry.Registry
	config    config.Config
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	sceneOpts []sketch.SceneOption
}

// Option defines a functional option for configuring the Toolkit.
type Option func(*Toolkit)

// WithRegistry replaces the built-in tool registry.
func WithRegistry(r *registry.Registry) Option {
	return func(k *Toolkit) {
		k.registry = r
	}
}

// WithConfig sets units, engine thresholds, tool overrides and keymap hints.
func WithConfig(cfg config.Config) Option {
	return func(k *Toolkit) {
		k.config = cfg
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(k *Toolkit) {
		k.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls accumulate.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(k *Toolkit) {
		k.hooks = k.hooks.Merge(hooks)
	}
}

// WithSceneOptions adds options applied to every scene built by NewScene.
func WithSceneOptions(opts ...sketch.SceneOption) Option {
	return func(k *Toolkit) {
		k.sceneOpts = append(k.sceneOpts, opts...)
	}
}

// New creates a Toolkit with the built-in tools and default configuration.
func New(opts ...Option) *Toolkit {
	k := &Toolkit{
		config: config.Default(),
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.registry == nil {
		k.registry = tools.Default()
	}
	if k.logger == nil {
		k.logger = logging.NewNop()
	}
	return k
}

// Config returns the active configuration.
func (k *Toolkit) Config() config.Config { return k.config }

// Registry returns the tool registry.
func (k *Toolkit) Registry() *registry.Registry { return k.registry }

// Logger returns the toolkit logger.
func (k *Toolkit) Logger() *slog.Logger { return k.logger }

// Tools lists the registered tool ids.
func (k *Toolkit) Tools() []string { return k.registry.IDs() }

// NewScene wraps doc in a scene configured from the toolkit settings.
func (k *Toolkit) NewScene(doc *sketch.Document) *sketch.Scene {
	opts := []sketch.SceneOption{
		sketch.WithUnits(k.config.UnitSystem()),
		sketch.WithTolerance(k.config.Engine.PickTolerance),
		sketch.WithHistoryLimit(k.config.Engine.HistoryLimit),
	}
	return sketch.NewScene(doc, append(opts, k.sceneOpts...)...)
}

// Tool builds the tool id for scene and applies configured overrides.
func (k *Toolkit) Tool(id string, scene *sketch.Scene) (*domain.Tool, error) {
	tool, err := k.registry.Build(id, scene)
	if err != nil {
		return nil, err
	}
	k.config.Apply(tool)
	return tool, nil
}

// NewOperator builds an idle operator for tool id on scene.
func (k *Toolkit) NewOperator(id string, scene *sketch.Scene) (*Operator, error) {
	tool, err := k.Tool(id, scene)
	if err != nil {
		return nil, err
	}
	op, err := runtime.New(tool, scene,
		runtime.WithLogger(k.logger),
		runtime.WithLifecycleHooks(k.hooks),
		runtime.WithMoveThreshold(k.config.Engine.MoveThreshold),
		runtime.WithKeymapHint(k.config.Keymap[id]),
	)
	if err != nil {
		k.logger.Error("invalid tool definition", "tool", id, "err", err)
		return nil, err
	}
	return op, nil
}

// Invoke starts tool id on scene with the triggering event.
func (k *Toolkit) Invoke(ctx context.Context, id string, scene *sketch.Scene, ev domain.Event) (*Operator, domain.Report, error) {
	op, err := k.NewOperator(id, scene)
	if err != nil {
		return nil, domain.Report{}, err
	}
	rep, err := op.Invoke(ctx, ev)
	return op, rep, err
}

// Describe returns the tooltip text of tool id.
func (k *Toolkit) Describe(id string) (string, error) {
	tool, err := k.Tool(id, k.NewScene(nil))
	if err != nil {
		return "", err
	}
	return runtime.Describe(tool, k.config.Keymap[id]), nil
}

// Definition returns the built tool id, for introspection such as diagrams.
func (k *Toolkit) Definition(id string) (*domain.Tool, error) {
	tool, err := k.Tool(id, k.NewScene(nil))
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", id, err)
	}
	return tool, nil
}
