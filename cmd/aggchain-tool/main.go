// Command aggchain-tool computes aggchain encodings and timelock genesis storage.
package main

import (
	"log/slog"
	"os"

	"github.com/gateway-fm/zkevm-contracts-sub000/cmd/aggchain-tool/commands"
	pkgerrors "github.com/gateway-fm/zkevm-contracts-sub000/internal/pkg/errors"
)

func main() {
	root := commands.NewRootCommand(os.Stdout)
	if err := root.Execute(); err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		logger.Error("aggchain-tool failed",
			slog.String("code", pkgerrors.Code(err)),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}

