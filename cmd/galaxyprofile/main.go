// Command galaxyprofile renders animated SVG documents for a GitHub
// profile README.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/galaxyprofile/internal/cli"
	galaxyerrors "github.com/matzehuels/galaxyprofile/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		os.Exit(130)
	default:
		fmt.Fprintln(os.Stderr, galaxyerrors.UserMessage(err))
		os.Exit(1)
	}
}
