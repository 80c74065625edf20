package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/batch26/keepsake/cmd/yearbook/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cmd.Root(cmd.LoadFromEnv).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
