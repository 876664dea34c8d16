package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the module's message handlers
// for the provided Keeper.
func NewMsgServerImpl(keeper Keeper) *msgServer {
	return &msgServer{Keeper: keeper}
}

func (k msgServer) CreateSchedule(goCtx context.Context, msg *types.MsgCreateSchedule) (*types.MsgCreateScheduleResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	funder, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid creator address: %s", err)
	}

	if err := k.Keeper.CreateSchedule(ctx, msg.Schedule(), funder); err != nil {
		return nil, err
	}
	return &types.MsgCreateScheduleResponse{}, nil
}
