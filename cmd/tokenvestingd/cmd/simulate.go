package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/productscience/tokenvesting/internal/config"
	"github.com/productscience/tokenvesting/internal/devnet"
	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

const (
	flagStep       = "step"
	flagRevokeAt   = "revoke-at"
	flagNoWithdraw = "no-withdraw"
)

type simulateOptions struct {
	step     time.Duration
	revokeAt time.Duration
	withdraw bool
}

// SimulateCommand replays the configured schedule on a manual clock.
func SimulateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Step a fresh devnet through the configured schedule and print the vesting curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg := *manager.GetConfig()
			logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			opts := simulateOptions{}
			opts.step, _ = cmd.Flags().GetDuration(flagStep)
			opts.revokeAt, _ = cmd.Flags().GetDuration(flagRevokeAt)
			noWithdraw, _ := cmd.Flags().GetBool(flagNoWithdraw)
			opts.withdraw = !noWithdraw
			if opts.step <= 0 {
				opts.step = cfg.Schedule.Duration / 10
			}
			if opts.step < time.Second {
				opts.step = time.Second
			}

			genesis, err := cfg.GenesisTime(time.Now())
			if err != nil {
				return err
			}
			clock := devnet.NewManualClock(genesis)
			chain, err := bootstrapChain(cfg, clock, genesis, logger)
			if err != nil {
				return err
			}
			return runSimulation(chain, clock, cfg, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Duration(flagStep, 0, "time between checkpoints (default a tenth of the duration)")
	cmd.Flags().Duration(flagRevokeAt, 0, "revoke this long after the start (0 never revokes)")
	cmd.Flags().Bool(flagNoWithdraw, false, "do not withdraw at each checkpoint")
	return cmd
}

func runSimulation(chain *devnet.Chain, clock *devnet.ManualClock, cfg config.Config, opts simulateOptions, out io.Writer) error {
	beneficiary := sdk.MustAccAddressFromBech32(cfg.Schedule.Beneficiary)
	initial, err := chain.Schedule()
	if err != nil {
		return err
	}
	schedule := initial.Schedule
	total := schedule.TotalAllocated

	fmt.Fprintf(out, "start %s  cliff %s  end %s  total %s%s\n\n",
		schedule.StartTime().Format(time.RFC3339),
		schedule.CliffTime().Format(time.RFC3339),
		schedule.EndTime().Format(time.RFC3339),
		total, schedule.Denom)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "elapsed\tvested\tvested %\treleased\tpaid now\tcustody\tevent\t")

	revoked := false
	end := schedule.EndTime().Add(opts.step)
	for at := schedule.StartTime(); !at.After(end); at = at.Add(opts.step) {
		if at.After(clock.Now()) {
			if err := clock.AdvanceTo(at); err != nil {
				return err
			}
		}

		event := ""
		if opts.revokeAt > 0 && !revoked && !at.Before(schedule.StartTime().Add(opts.revokeAt)) {
			reclaimed, err := chain.Revoke(cfg.Schedule.Administrator)
			if err != nil {
				return fmt.Errorf("revoke at %s: %w", at.Format(time.RFC3339), err)
			}
			revoked = true
			event = "revoked, reclaimed " + reclaimed.String()
		}

		paid := math.ZeroInt()
		if opts.withdraw {
			coin, err := chain.Withdraw(beneficiary.String())
			switch {
			case err == nil:
				paid = coin.Amount
			case errors.Is(err, types.ErrNotYetVested), errors.Is(err, types.ErrNothingDue):
			default:
				return fmt.Errorf("withdraw at %s: %w", at.Format(time.RFC3339), err)
			}
		}

		state, err := chain.Schedule()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			at.Sub(schedule.StartTime()),
			state.Vested,
			percentOf(state.Vested, total),
			state.Schedule.ReleasedAmount(),
			paid,
			state.Custody.Amount,
			event,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	return printSettlement(chain, cfg, out)
}

// printSettlement shows where the allocation ended up and fails if any of it
// was created or lost along the way.
func printSettlement(chain *devnet.Chain, cfg config.Config, out io.Writer) error {
	state, err := chain.Schedule()
	if err != nil {
		return err
	}
	denom := state.Schedule.Denom
	beneficiary := chain.Balances(sdk.MustAccAddressFromBech32(cfg.Schedule.Beneficiary)).AmountOf(denom)
	administrator := math.ZeroInt()
	if cfg.Schedule.Administrator != "" {
		administrator = chain.Balances(sdk.MustAccAddressFromBech32(cfg.Schedule.Administrator)).AmountOf(denom)
	}
	custody := state.Custody.Amount

	fmt.Fprintf(out, "\nbeneficiary %s%s  administrator %s%s  custody %s%s\n",
		beneficiary, denom, administrator, denom, custody, denom)

	sum := beneficiary.Add(administrator).Add(custody)
	if !sum.Equal(state.Schedule.TotalAllocated) {
		return fmt.Errorf("allocation not conserved: %s held against %s allocated", sum, state.Schedule.TotalAllocated)
	}
	return nil
}

func percentOf(part, total math.Int) string {
	if total.IsZero() {
		return "0.00"
	}
	return decimal.NewFromBigInt(part.BigInt(), 0).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromBigInt(total.BigInt(), 0)).
		StringFixed(2)
}
