package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/productscience/tokenvesting/internal/config"
)

const flagForce = "force"

// InitCommand writes a config with freshly generated accounts.
func InitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config with new funder, beneficiary and administrator accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString(flagConfig)
			if err != nil {
				return err
			}
			if path == "" || path == "-" {
				return fmt.Errorf("init needs a file path, got %q", path)
			}
			force, _ := cmd.Flags().GetBool(flagForce)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --%s to overwrite", path, flagForce)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			manager, err := config.NewFileConfigManager(path)
			if err != nil {
				return err
			}
			manager.SetConfig(config.Generate())
			if err := manager.Write(); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			cfg := manager.GetConfig()
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n  funder:        %s\n  beneficiary:   %s\n  administrator: %s\n",
				path, cfg.Funder.Address, cfg.Schedule.Beneficiary, cfg.Schedule.Administrator)
			return nil
		},
	}
	cmd.Flags().Bool(flagForce, false, "overwrite an existing config")
	return cmd
}
