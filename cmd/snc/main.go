// Package main is the entry point for the snc narrative compiler.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/joho/godotenv"

	"github.com/WestonVoglesonger/Multifact-V3/cmd/snc/commands"
	"github.com/WestonVoglesonger/Multifact-V3/internal/app"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	_ "github.com/WestonVoglesonger/Multifact-V3/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	// 0. Provider API keys may live in a .env file; a missing file is fine
	_ = godotenv.Load()

	// 1. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 2. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr passed in
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	// 3. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	// 4. Execution
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrCompilationFailed) {
			// Token failures were already rendered by the command
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
