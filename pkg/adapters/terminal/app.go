package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/aretw0/stencil/internal/logging"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/session"
	"github.com/aretw0/stencil/pkg/sketch"
	"github.com/gdamore/tcell/v2"
)

// App drives one session from a terminal screen.
type App struct {
	screen   tcell.Screen
	sessions *session.Manager
	id       string

	tr        *Translator
	renderer  *Renderer
	view      sketch.Viewport
	shortcuts map[rune]string
	logger    *slog.Logger
	message   string
}

// Option configures an App.
type Option func(*App)

// WithKeymap binds tools to shortcuts such as "L" or "Shift+C".
// Shortcuts with other modifiers are ignored.
func WithKeymap(keymap map[string]string) Option {
	return func(a *App) {
		for tool, sc := range keymap {
			r, ok := parseShortcut(sc)
			if !ok {
				a.logger.Warn("unsupported shortcut", "tool", tool, "shortcut", sc)
				continue
			}
			a.shortcuts[r] = tool
		}
	}
}

// WithViewport sets the viewport used to draw. It must match the viewport
// of the scenes the session manager creates.
func WithViewport(v sketch.Viewport) Option {
	return func(a *App) {
		a.view = v
	}
}

// WithLogger sets the logger. It must not write to the terminal in use.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New creates an App on an initialized screen.
func New(screen tcell.Screen, sessions *session.Manager, id string, opts ...Option) *App {
	tr := NewTranslator()
	a := &App{
		screen:    screen,
		sessions:  sessions,
		id:        id,
		tr:        tr,
		renderer:  NewRenderer(screen, tr),
		shortcuts: make(map[rune]string),
		logger:    logging.NewNop(),
		message:   "q: quit",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// parseShortcut maps "L" to 'l' and "Shift+L" to 'L'.
func parseShortcut(sc string) (rune, bool) {
	shift := false
	if rest, ok := strings.CutPrefix(sc, "Shift+"); ok {
		shift, sc = true, rest
	}
	r := []rune(sc)
	if len(r) != 1 {
		return 0, false
	}
	if shift {
		return unicode.ToUpper(r[0]), true
	}
	return unicode.ToLower(r[0]), true
}

// Message returns the last outcome shown on the status row.
func (a *App) Message() string { return a.message }

// Handle processes one terminal event and reports whether the app should quit.
// Operator errors are shown on the status row rather than returned.
func (a *App) Handle(ctx context.Context, ev tcell.Event) (bool, error) {
	if _, ok := ev.(*tcell.EventResize); ok {
		a.screen.Sync()
		return false, nil
	}

	info, err := a.sessions.Info(ctx, a.id)
	if err != nil {
		return false, err
	}

	if key, ok := ev.(*tcell.EventKey); ok && key.Key() == tcell.KeyCtrlC {
		if info.Running {
			_, err := a.sessions.Cancel(ctx, a.id)
			return true, err
		}
		return true, nil
	}

	in, ok := a.tr.Translate(ev)
	if !ok {
		return false, nil
	}

	if !info.Running {
		if in.Type != domain.EventKey || in.Key != domain.KeyRune {
			return false, nil
		}
		if in.Rune == 'q' {
			return true, nil
		}
		tool, ok := a.shortcuts[in.Rune]
		if !ok {
			return false, nil
		}
		rep, err := a.sessions.Invoke(ctx, a.id, tool, domain.MouseMove(a.tr.Last()))
		a.outcome(rep, err)
		return false, nil
	}

	rep, err := a.sessions.HandleEvent(ctx, a.id, in)
	a.outcome(rep, err)
	return false, nil
}

func (a *App) outcome(rep domain.Report, err error) {
	switch {
	case err != nil:
		a.logger.Warn("operator error", "err", err)
		a.message = "error: " + err.Error()
	case rep.Result.Done():
		a.message = fmt.Sprintf("%s: %s", rep.Tool, rep.Result)
		if rep.OperationFailed {
			a.message += " (operation failed)"
		}
	case rep.Chained:
		a.message = rep.Tool + ": chained"
	}
}

// Draw renders the session document and status, then shows the screen.
func (a *App) Draw(ctx context.Context) error {
	doc, err := a.sessions.Document(ctx, a.id)
	if err != nil {
		return err
	}
	info, err := a.sessions.Info(ctx, a.id)
	if err != nil {
		return err
	}
	a.renderer.Draw(Frame{Doc: doc, View: a.view, Status: info.Status, Message: a.message})
	a.screen.Show()
	return nil
}

// Run opens the session and processes terminal events until the user quits
// or ctx is done. The caller owns the screen and calls Fini afterwards,
// which also stops the polling goroutine.
func (a *App) Run(ctx context.Context) error {
	if err := a.sessions.Open(ctx, a.id); err != nil {
		return err
	}
	a.screen.EnableMouse()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	if err := a.Draw(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			quit, err := a.Handle(ctx, ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			if err := a.Draw(ctx); err != nil {
				return err
			}
		}
	}
}
