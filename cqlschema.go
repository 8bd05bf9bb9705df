package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/GoogleCloudPlatform/cloud-bigtable-ecosystem/cassandra-bigtable-migration-tools/cqlschema/command"
)

func main() {
	ctx, cancel := signalContext(context.Background(), os.Interrupt)
	defer cancel()

	err := command.Run(ctx, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		cancel()
		os.Exit(1)
	}
}

// signalContext cancels the returned context when one of sig arrives.
func signalContext(parent context.Context, sig ...os.Signal) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sig...)
	if ctx.Err() == nil {
		go func() {
			select {
			case <-ch:
				cancel()
			case <-ctx.Done():
			}
		}()
	}
	return ctx, func() {
		cancel()
		signal.Stop(ch)
	}
}
