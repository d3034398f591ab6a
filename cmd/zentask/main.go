package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandeepkv93/zentask/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:], nil); err != nil {
		fmt.Fprintf(os.Stderr, "zentask: %v\n", err)
		stop()
		os.Exit(1)
	}
}
