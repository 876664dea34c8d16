package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

const (
	custodyBackingRoute  = "custody-backing"
	releasedWithinVested = "released-within-vested"
)

// RegisterInvariants registers the module invariants with the registry.
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, custodyBackingRoute, CustodyBackingInvariant(k))
	ir.RegisterRoute(types.ModuleName, releasedWithinVested, ReleasedWithinVestedInvariant(k))
}

// AllInvariants runs every module invariant and stops at the first broken one.
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if res, stop := CustodyBackingInvariant(k)(ctx); stop {
			return res, stop
		}
		return ReleasedWithinVestedInvariant(k)(ctx)
	}
}

// CustodyBackingInvariant checks that custody holds at least what the
// schedule still owes the beneficiary.
func CustodyBackingInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		schedule, found := k.GetVestingSchedule(ctx)
		if !found {
			return sdk.FormatInvariant(types.ModuleName, custodyBackingRoute, "no schedule"), false
		}

		custody := k.bankKeeper.GetBalance(ctx, k.CustodyAddress(), schedule.Denom).Amount
		outstanding := schedule.Outstanding()
		broken := custody.LT(outstanding)
		return sdk.FormatInvariant(types.ModuleName, custodyBackingRoute,
			fmt.Sprintf("custody %s%s, outstanding %s%s", custody, schedule.Denom, outstanding, schedule.Denom)), broken
	}
}

// ReleasedWithinVestedInvariant checks the stored accounting and that nothing
// was paid ahead of the curve.
func ReleasedWithinVestedInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		schedule, found := k.GetVestingSchedule(ctx)
		if !found {
			return sdk.FormatInvariant(types.ModuleName, releasedWithinVested, "no schedule"), false
		}
		if err := schedule.ValidateState(); err != nil {
			return sdk.FormatInvariant(types.ModuleName, releasedWithinVested, err.Error()), true
		}

		vested := schedule.VestedAmount(ctx.BlockTime())
		released := schedule.ReleasedAmount()
		broken := released.GT(vested)
		return sdk.FormatInvariant(types.ModuleName, releasedWithinVested,
			fmt.Sprintf("released %s, vested %s", released, vested)), broken
	}
}
