package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/stencil/pkg/adapters/terminal"
	"github.com/gdamore/tcell/v2"
)

// Edit opens a session in the terminal editor. The document is saved when
// the editor quits.
func Edit(ctx context.Context, env *Env, sessionID string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	return EditOn(ctx, env, screen, sessionID)
}

// EditOn runs the editor on an initialized screen and finalizes it.
func EditOn(ctx context.Context, env *Env, screen tcell.Screen, sessionID string) error {
	defer screen.Fini()

	sessions := env.Sessions()
	app := terminal.New(screen, sessions, sessionID,
		terminal.WithLogger(env.Logger),
		terminal.WithKeymap(env.Config.Keymap),
	)
	runErr := app.Run(ctx)
	if err := sessions.Close(context.WithoutCancel(ctx), sessionID); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
