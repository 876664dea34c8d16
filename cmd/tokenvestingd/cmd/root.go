package cmd

import (
	"fmt"
	"io"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/productscience/tokenvesting/internal/config"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagLogJSON  = "log-json"

	defaultConfigPath = "tokenvesting.yaml"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tokenvestingd",
		Short:         "Linear token vesting with a cliff on a single-process devnet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		InitCommand(),
		SimulateCommand(),
		ServeCommand(),
	)
	return rootCmd
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String(flagConfig, defaultConfigPath, `config file, "-" for stdin, "" for defaults and TOKENVESTING_ env only`)
	flags.String(flagLogLevel, "", "log level override (trace, debug, info, warn, error)")
	flags.Bool(flagLogJSON, false, "log as JSON")
}

// loadConfig reads the config named by --config and applies the log flags on top.
func loadConfig(cmd *cobra.Command) (*config.ConfigManager, error) {
	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, err
	}
	manager, err := config.NewFileConfigManager(path)
	if err != nil {
		return nil, err
	}
	if err := manager.Load(); err != nil {
		return nil, err
	}

	cfg := manager.GetConfig()
	if cmd.Flags().Changed(flagLogLevel) {
		cfg.Log.Level, _ = cmd.Flags().GetString(flagLogLevel)
	}
	if cmd.Flags().Changed(flagLogJSON) {
		cfg.Log.JSON, _ = cmd.Flags().GetBool(flagLogJSON)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return manager, nil
}

func newLogger(cfg config.LogConfig, out io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := []log.Option{log.LevelOption(level)}
	if cfg.JSON {
		opts = append(opts, log.OutputJSONOption())
	} else {
		opts = append(opts, log.ColorOption(false))
	}
	return log.NewLogger(out, opts...), nil
}
