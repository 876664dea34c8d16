package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/productscience/tokenvesting/internal/devnet"
	"github.com/productscience/tokenvesting/internal/server"
)

const (
	flagGenesis = "genesis"
	flagAddress = "address"
)

// ServeCommand runs the devnet behind the HTTP API until interrupted.
func ServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the devnet and expose the vesting schedule over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg := *manager.GetConfig()
			if cmd.Flags().Changed(flagAddress) {
				cfg.Server.Address, _ = cmd.Flags().GetString(flagAddress)
			}
			logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var chain *devnet.Chain
			if genesisPath, _ := cmd.Flags().GetString(flagGenesis); genesisPath != "" {
				chain, err = restoreChain(cfg, genesisPath, logger)
			} else {
				var genesis time.Time
				genesis, err = cfg.GenesisTime(time.Now())
				if err == nil {
					chain, err = bootstrapChain(cfg, newClock(cfg, genesis), genesis, logger)
				}
			}
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(chain, logger)
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start(cfg.Server.Address)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String(flagGenesis, "", "resume from an exported genesis file instead of the config schedule")
	cmd.Flags().String(flagAddress, "", "listen address override")
	return cmd
}
