package commands

import (
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"github.com/gateway-fm/zkevm-contracts-sub000/internal/artifacts"
	"github.com/gateway-fm/zkevm-contracts-sub000/internal/genesis"
	"github.com/gateway-fm/zkevm-contracts-sub000/internal/timelock"
)

// TimelockStorageResult is the timelock-storage.json artifact.
type TimelockStorageResult struct {
	Layout  string                  `json:"layout"`
	Address string                  `json:"address"`
	Storage timelock.StorageSlotMap `json:"storage"`
}

func newTimelockStorageCommand(rc *runContext) *cobra.Command {
	var layoutName string
	cmd := &cobra.Command{
		Use:   "timelock-storage",
		Short: "Predict the timelock's post-constructor storage and write a genesis alloc",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tc := rc.cfg.Timelock
			if layoutName != "" {
				tc.Layout = layoutName
			}
			in, err := tc.Input()
			if err != nil {
				return err
			}
			layout, err := tc.TimelockLayout()
			if err != nil {
				return err
			}
			code, err := tc.Bytecode()
			if err != nil {
				return fmt.Errorf("decode timelock code: %w", err)
			}

			contract, err := genesis.TimelockContract(layout, in, code)
			if err != nil {
				return err
			}
			var base types.GenesisAlloc
			if tc.BaseAlloc != "" {
				if base, err = genesis.ReadAlloc(tc.BaseAlloc); err != nil {
					return err
				}
			}
			alloc, err := genesis.NewAlloc(base, contract)
			if err != nil {
				return err
			}

			rc.logger.Info("timelock storage simulated",
				slog.String("layout", layout.Version),
				slog.String("address", in.Timelock.Hex()),
				slog.Int("slots", len(contract.Storage)))
			return rc.writeArtifact(cmd.Name(),
				artifactFile{artifacts.TimelockStorageFile, TimelockStorageResult{
					Layout:  layout.Version,
					Address: in.Timelock.Hex(),
					Storage: contract.Storage,
				}},
				artifactFile{artifacts.GenesisFile, alloc},
			)
		},
	}
	cmd.Flags().StringVar(&layoutName, "layout", "", "storage layout: oz-timelock-v4 or oz-timelock-v5 (overrides timelock.layout)")
	return cmd
}
