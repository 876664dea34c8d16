package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

// VestedAmount returns the amount vested at block time, zero if no schedule exists.
func (k Keeper) VestedAmount(ctx sdk.Context) math.Int {
	return k.VestedAmountAt(ctx, ctx.BlockTime())
}

// VestedAmountAt projects the vested amount at an arbitrary instant.
func (k Keeper) VestedAmountAt(ctx sdk.Context, at time.Time) math.Int {
	schedule, found := k.GetVestingSchedule(ctx)
	if !found {
		return math.ZeroInt()
	}
	return schedule.VestedAmount(at)
}

func (k Keeper) ReleasedAmount(ctx sdk.Context) math.Int {
	schedule, found := k.GetVestingSchedule(ctx)
	if !found {
		return math.ZeroInt()
	}
	return schedule.ReleasedAmount()
}

func (k Keeper) IsRevoked(ctx sdk.Context) bool {
	schedule, found := k.GetVestingSchedule(ctx)
	return found && schedule.Revoked
}

func (k Keeper) TotalAllocated(ctx sdk.Context) math.Int {
	schedule, found := k.GetVestingSchedule(ctx)
	if !found {
		return math.ZeroInt()
	}
	return schedule.TotalAllocated
}

// CustodyBalance is the ledger balance of the module account in the schedule's denom.
func (k Keeper) CustodyBalance(ctx sdk.Context) math.Int {
	schedule, found := k.GetVestingSchedule(ctx)
	if !found {
		return math.ZeroInt()
	}
	return k.bankKeeper.GetBalance(ctx, k.CustodyAddress(), schedule.Denom).Amount
}

type QueryScheduleRequest struct{}

type QueryScheduleResponse struct {
	Schedule       types.VestingSchedule `json:"schedule"`
	BlockTime      time.Time             `json:"block_time"`
	Vested         math.Int              `json:"vested"`
	Payable        math.Int              `json:"payable"`
	VestedFraction math.LegacyDec        `json:"vested_fraction"`
	Custody        sdk.Coin              `json:"custody"`
	FullyReleased  bool                  `json:"fully_released"`
}

type QueryVestedAtRequest struct {
	At time.Time `json:"at"`
}

type QueryVestedAtResponse struct {
	At     time.Time `json:"at"`
	Vested math.Int  `json:"vested"`
}

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the module's query service.
func NewQueryServerImpl(keeper Keeper) *queryServer {
	return &queryServer{Keeper: keeper}
}

func (q queryServer) Schedule(goCtx context.Context, _ *QueryScheduleRequest) (*QueryScheduleResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	schedule, found := q.GetVestingSchedule(ctx)
	if !found {
		return nil, types.ErrScheduleNotFound
	}

	now := ctx.BlockTime()
	return &QueryScheduleResponse{
		Schedule:       schedule,
		BlockTime:      now,
		Vested:         schedule.VestedAmount(now),
		Payable:        schedule.Payable(now),
		VestedFraction: schedule.VestedFraction(now),
		Custody:        q.bankKeeper.GetBalance(ctx, q.CustodyAddress(), schedule.Denom),
		FullyReleased:  schedule.FullyReleased(),
	}, nil
}

func (q queryServer) VestedAt(goCtx context.Context, req *QueryVestedAtRequest) (*QueryVestedAtResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	if !q.HasVestingSchedule(ctx) {
		return nil, types.ErrScheduleNotFound
	}
	return &QueryVestedAtResponse{
		At:     req.At,
		Vested: q.VestedAmountAt(ctx, req.At),
	}, nil
}
