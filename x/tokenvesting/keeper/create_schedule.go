package keeper

import (
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

// CreateSchedule stores a fresh schedule. When funder is set, TotalAllocated is
// moved from funder into custody as part of the same atomic unit. A nil funder
// means custody has already been funded out of band.
func (k Keeper) CreateSchedule(ctx sdk.Context, schedule types.VestingSchedule, funder sdk.AccAddress) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := schedule.Validate(); err != nil {
		return err
	}
	if k.HasVestingSchedule(ctx) {
		return types.ErrScheduleExists
	}

	schedule.Released = math.ZeroInt()
	schedule.Revoked = false
	schedule.RevokedAt = 0
	schedule.VestedAtRevocation = math.ZeroInt()

	cacheCtx, write := ctx.CacheContext()
	k.SetVestingSchedule(cacheCtx, schedule)

	if funder != nil {
		allocation := schedule.Coins(schedule.TotalAllocated)
		err := k.bankEscrowKeeper.SendCoinsFromAccountToModule(cacheCtx, funder, types.ModuleName, allocation)
		if err != nil {
			k.Logger().Error("Failed to fund vesting custody", "funder", funder.String(), "amount", allocation, "error", err)
			return errorsmod.Wrapf(types.ErrTransferFailed, "funding %s from %s: %s", allocation, funder, err)
		}
	}
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCreateSchedule,
			sdk.NewAttribute(types.AttributeKeyBeneficiary, schedule.Beneficiary),
			sdk.NewAttribute(types.AttributeKeyAdministrator, schedule.Administrator),
			sdk.NewAttribute(types.AttributeKeyAmount, sdk.NewCoin(schedule.Denom, schedule.TotalAllocated).String()),
			sdk.NewAttribute(types.AttributeKeyRevocable, strconv.FormatBool(schedule.Revocable)),
		),
	)

	k.Logger().Info("Vesting schedule created",
		"beneficiary", schedule.Beneficiary,
		"total", schedule.TotalAllocated,
		"start", schedule.StartTime(),
		"cliff", schedule.CliffTime(),
		"end", schedule.EndTime(),
		"revocable", schedule.Revocable,
	)
	return nil
}
