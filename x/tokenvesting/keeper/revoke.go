package keeper

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

// Revoke freezes vesting at the amount vested at block time and sends the
// unvested remainder back to the administrator. Tokens that already vested
// stay claimable by the beneficiary.
func (k Keeper) Revoke(ctx sdk.Context, caller string) (math.Int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	schedule, found := k.GetVestingSchedule(ctx)
	if !found {
		return math.ZeroInt(), types.ErrScheduleNotFound
	}
	if !schedule.Revocable {
		return math.ZeroInt(), types.ErrNotRevocable
	}

	administrator, err := sdk.AccAddressFromBech32(schedule.Administrator)
	if err != nil {
		return math.ZeroInt(), errorsmod.Wrapf(types.ErrInvalidSchedule, "stored administrator: %s", err)
	}
	if !isCaller(caller, administrator) {
		return math.ZeroInt(), errorsmod.Wrapf(types.ErrUnauthorized, "%s is not the administrator", caller)
	}
	if schedule.Revoked {
		return math.ZeroInt(), errorsmod.Wrapf(types.ErrAlreadyRevoked, "revoked at %d", schedule.RevokedAt)
	}

	now := ctx.BlockTime()
	vestedNow := schedule.VestedAmount(now)
	unvested := schedule.TotalAllocated.Sub(vestedNow)

	schedule.Revoked = true
	schedule.RevokedAt = now.Unix()
	schedule.VestedAtRevocation = vestedNow

	cacheCtx, write := ctx.CacheContext()
	k.SetVestingSchedule(cacheCtx, schedule)
	if unvested.IsPositive() {
		reclaim := schedule.Coins(unvested)
		if err := k.bankEscrowKeeper.SendCoinsFromModuleToAccount(cacheCtx, types.ModuleName, administrator, reclaim); err != nil {
			k.Logger().Error("Failed to reclaim unvested tokens", "administrator", schedule.Administrator, "amount", reclaim, "error", err)
			return math.ZeroInt(), errorsmod.Wrapf(types.ErrTransferFailed, "reclaiming %s to %s: %s", reclaim, schedule.Administrator, err)
		}
	}
	write()

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRevoke,
			sdk.NewAttribute(types.AttributeKeyAdministrator, schedule.Administrator),
			sdk.NewAttribute(types.AttributeKeyAmount, sdk.NewCoin(schedule.Denom, unvested).String()),
			sdk.NewAttribute(types.AttributeKeyVested, vestedNow.String()),
		),
	)

	k.Logger().Info("Vesting schedule revoked",
		"administrator", schedule.Administrator,
		"vested", vestedNow,
		"reclaimed", unvested,
		"released", schedule.ReleasedAmount(),
	)
	return unvested, nil
}
