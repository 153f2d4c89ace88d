// Package commands implements the aggchain-tool subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gateway-fm/zkevm-contracts-sub000/internal/artifacts"
	"github.com/gateway-fm/zkevm-contracts-sub000/internal/config"
)

// runContext is the state shared by every subcommand of one invocation.
type runContext struct {
	configPath string
	outDir     string
	logLevel   string
	logOut     io.Writer

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the aggchain-tool command tree. Logs go to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	rc := &runContext{logOut: logOut}

	root := &cobra.Command{
		Use:   "aggchain-tool",
		Short: "Compute aggchain selectors, hashes, init payloads and timelock genesis storage",
		Long: `aggchain-tool computes the deterministic encodings an aggchain verifier checks
and the genesis storage of the timelock that governs it. Every command writes a
JSON artifact and a manifest.json into the output directory.

Examples:
  aggchain-tool selector --config aggchain.yaml
  aggchain-tool aggchain-hash --config aggchain.yaml --out ./out
  aggchain-tool timelock-storage --config aggchain.yaml --layout oz-timelock-v5`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rc.load,
	}

	root.PersistentFlags().StringVarP(&rc.configPath, "config", "c", "", "config file (default ./aggchain.yaml)")
	root.PersistentFlags().StringVarP(&rc.outDir, "out", "o", "", "artifact output directory (overrides output_dir)")
	root.PersistentFlags().StringVar(&rc.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides log_level)")

	root.AddCommand(
		newSelectorCommand(rc),
		newParamsHashCommand(rc),
		newAggchainHashCommand(rc),
		newInitBytesCommand(rc),
		newTimelockStorageCommand(rc),
	)
	return root
}

func (rc *runContext) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rc.configPath)
	if err != nil {
		return err
	}
	if rc.outDir != "" {
		cfg.OutputDir = rc.outDir
	}
	if rc.logLevel != "" {
		cfg.LogLevel = rc.logLevel
	}
	rc.cfg = cfg

	out := rc.logOut
	if out == nil {
		out = os.Stdout
	}
	rc.logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	rc.logger.Debug("configuration loaded", slog.String("command", cmd.Name()), slog.String("output_dir", cfg.OutputDir))
	return nil
}

// writeArtifact writes one artifact plus the run manifest.
func (rc *runContext) writeArtifact(command string, files ...artifactFile) error {
	w, err := artifacts.NewWriter(rc.logger, rc.cfg.OutputDir, command)
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, err := w.WriteJSON(f.name, f.value); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return w.Close()
}

type artifactFile struct {
	name  string
	value any
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
