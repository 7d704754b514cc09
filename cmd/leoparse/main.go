// Command leoparse parses Leo source files and reports their syntax tree
// and diagnostics.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/zkcircuit/leoparse/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		stop()
		cli.HandleError(err, a.logger)
	}
}
