package cmd

import (
	"fmt"
	"os"
	"time"

	"cosmossdk.io/log"

	"github.com/productscience/tokenvesting/internal/config"
	"github.com/productscience/tokenvesting/internal/devnet"
	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

func newClock(cfg config.Config, genesis time.Time) devnet.Clock {
	if cfg.Clock.Mode == config.ClockWall {
		return devnet.WallClock{}
	}
	return devnet.NewManualClock(genesis)
}

// bootstrapChain starts a chain with only the funder's balance, then creates
// the configured schedule in its own block so custody is funded by a transfer.
func bootstrapChain(cfg config.Config, clock devnet.Clock, genesis time.Time, logger log.Logger) (*devnet.Chain, error) {
	coins, err := cfg.FunderCoins()
	if err != nil {
		return nil, err
	}
	chain, err := devnet.NewChainFromGenesis(logger, clock, devnet.Genesis{
		GenesisTime: genesis,
		ChainID:     devnet.ChainID,
		Balances:    []devnet.Balance{{Address: cfg.Funder.Address, Coins: coins}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init chain: %w", err)
	}

	start, err := cfg.ScheduleStart(genesis)
	if err != nil {
		return nil, err
	}
	schedule, err := cfg.VestingSchedule(start)
	if err != nil {
		return nil, err
	}
	if _, err := chain.CreateSchedule(types.NewMsgCreateSchedule(cfg.Funder.Address, schedule)); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return chain, nil
}

// restoreChain loads a chain from an exported genesis file. A manual clock
// resumes at the exported block time.
func restoreChain(cfg config.Config, path string, logger log.Logger) (*devnet.Chain, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	gen, err := devnet.UnmarshalGenesis(bz)
	if err != nil {
		return nil, fmt.Errorf("failed to decode genesis %s: %w", path, err)
	}
	return devnet.NewChainFromGenesis(logger, newClock(cfg, gen.GenesisTime), gen)
}
