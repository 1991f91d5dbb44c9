package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/fatih/color"

	"github.com/dukerupert/hbnb/internal/cli"
	"github.com/dukerupert/hbnb/internal/config"
)

func main() {
	dir, err := config.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := &cli.App{
		Out:       os.Stdout,
		Err:       os.Stderr,
		In:        os.Stdin,
		ConfigDir: dir,
	}
	if term.IsTerminal(os.Stdin.Fd()) {
		app.ReadPassword = func() (string, error) {
			b, err := term.ReadPassword(uintptr(syscall.Stdin))
			return string(b), err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
