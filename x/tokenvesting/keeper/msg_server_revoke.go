package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

func (k msgServer) Revoke(goCtx context.Context, msg *types.MsgRevoke) (*types.MsgRevokeResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	reclaimed, err := k.Keeper.Revoke(ctx, msg.Creator)
	if err != nil {
		return nil, err
	}

	schedule, _ := k.GetVestingSchedule(ctx)
	return &types.MsgRevokeResponse{Reclaimed: sdk.NewCoin(schedule.Denom, reclaimed)}, nil
}
