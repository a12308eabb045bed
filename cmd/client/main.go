package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/radicacion/internal/client/cli"
	"github.com/dmitrijs2005/radicacion/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(config.Default(), os.Stdout)
	if err := cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "radicar: %v\n", err)
		os.Exit(1)
	}
}
