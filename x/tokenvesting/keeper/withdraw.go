package keeper

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

// Withdraw pays the beneficiary everything vested at block time that has not
// been released yet. The released counter is only persisted if the payout
// succeeds.
func (k Keeper) Withdraw(ctx sdk.Context, caller string) (math.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	schedule, found := k.GetVestingSchedule(ctx)
	if !found {
		return math.ZeroInt(), types.ErrScheduleNotFound
	}

	beneficiary, err := sdk.AccAddressFromBech32(schedule.Beneficiary)
	if err != nil {
		return math.ZeroInt(), errorsmod.Wrapf(types.ErrInvalidSchedule, "stored beneficiary: %s", err)
	}
	if !isCaller(caller, beneficiary) {
		return math.ZeroInt(), errorsmod.Wrapf(types.ErrUnauthorized, "%s is not the beneficiary", caller)
	}

	now := ctx.BlockTime()
	if !schedule.CliffReached(now) {
		return math.ZeroInt(), errorsmod.Wrapf(types.ErrNotYetVested, "cliff ends at %s", schedule.CliffTime())
	}

	payable := schedule.Payable(now)
	if !payable.IsPositive() {
		return math.ZeroInt(), errorsmod.Wrapf(types.ErrNothingDue, "released %s of %s vested", schedule.ReleasedAmount(), schedule.VestedAmount(now))
	}

	schedule.Released = schedule.ReleasedAmount().Add(payable)

	cacheCtx, write := ctx.CacheContext()
	k.SetVestingSchedule(cacheCtx, schedule)
	payout := schedule.Coins(payable)
	if err := k.bankEscrowKeeper.SendCoinsFromModuleToAccount(cacheCtx, types.ModuleName, beneficiary, payout); err != nil {
		k.Logger().Error("Failed to pay vested tokens", "beneficiary", schedule.Beneficiary, "amount", payout, "error", err)
		return math.ZeroInt(), errorsmod.Wrapf(types.ErrTransferFailed, "paying %s to %s: %s", payout, schedule.Beneficiary, err)
	}
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdraw,
			sdk.NewAttribute(types.AttributeKeyBeneficiary, schedule.Beneficiary),
			sdk.NewAttribute(types.AttributeKeyAmount, payout.String()),
			sdk.NewAttribute(types.AttributeKeyReleased, schedule.Released.String()),
		),
	)

	k.Logger().Info("Released vested tokens",
		"beneficiary", schedule.Beneficiary,
		"amount", payout,
		"released", schedule.Released,
		"total", schedule.TotalAllocated,
	)
	return payable, nil
}

func isCaller(caller string, expected sdk.AccAddress) bool {
	addr, err := sdk.AccAddressFromBech32(caller)
	if err != nil {
		return false
	}
	return addr.Equals(expected)
}
