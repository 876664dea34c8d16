package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

func (k msgServer) Withdraw(goCtx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	amount, err := k.Keeper.Withdraw(ctx, msg.Creator)
	if err != nil {
		return nil, err
	}

	schedule, _ := k.GetVestingSchedule(ctx)
	return &types.MsgWithdrawResponse{Amount: sdk.NewCoin(schedule.Denom, amount)}, nil
}
