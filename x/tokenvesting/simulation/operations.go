package simulation

import (
	"math/rand"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"

	"github.com/productscience/tokenvesting/x/tokenvesting/keeper"
	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

const (
	opWeightMsgWithdraw      = "op_weight_msg_withdraw"
	defaultWeightMsgWithdraw = 80

	opWeightMsgRevoke      = "op_weight_msg_revoke"
	defaultWeightMsgRevoke = 5

	maxRandomScheduleSeconds = 3600
	maxRandomAllocation      = 1_000_000_000
)

// OperationResult describes one simulated message. OK is false when the
// module rejected the message in one of the ways it is allowed to.
type OperationResult struct {
	Name    string
	OK      bool
	Comment string
	Amount  math.Int
}

type Operation func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (OperationResult, error)

type WeightedOperation struct {
	Name   string
	Weight int
	Op     Operation
}

func WeightedOperations(k keeper.Keeper) []WeightedOperation {
	return []WeightedOperation{
		{Name: opWeightMsgWithdraw, Weight: defaultWeightMsgWithdraw, Op: SimulateMsgWithdraw(k)},
		{Name: opWeightMsgRevoke, Weight: defaultWeightMsgRevoke, Op: SimulateMsgRevoke(k)},
	}
}

// SelectOperation picks an operation with probability proportional to its weight.
func SelectOperation(r *rand.Rand, ops []WeightedOperation) Operation {
	total := 0
	for _, op := range ops {
		total += op.Weight
	}
	n := r.Intn(total)
	for _, op := range ops {
		if n < op.Weight {
			return op.Op
		}
		n -= op.Weight
	}
	return ops[len(ops)-1].Op
}

// RandomSchedule builds a valid schedule with distinct beneficiary and
// administrator drawn from accs, which must hold at least two accounts.
func RandomSchedule(r *rand.Rand, accs []simtypes.Account, denom string, start time.Time) types.VestingSchedule {
	perm := r.Perm(len(accs))
	beneficiary := accs[perm[0]].Address.String()
	administrator := accs[perm[1]].Address.String()

	duration := 1 + r.Int63n(maxRandomScheduleSeconds)
	cliff := r.Int63n(duration + 1)
	total := simtypes.RandomAmount(r, math.NewInt(maxRandomAllocation)).AddRaw(1)

	return types.NewVestingSchedule(
		beneficiary,
		administrator,
		denom,
		start,
		time.Duration(cliff)*time.Second,
		time.Duration(duration)*time.Second,
		r.Intn(2) == 0,
		total,
	)
}

// SimulateMsgWithdraw withdraws as the beneficiary, or now and then as a random account.
func SimulateMsgWithdraw(k keeper.Keeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (OperationResult, error) {
		schedule, found := k.GetVestingSchedule(ctx)
		if !found {
			return noOp("withdraw", "no schedule"), nil
		}
		caller := schedule.Beneficiary
		if r.Intn(4) == 0 {
			acc, _ := simtypes.RandomAcc(r, accs)
			caller = acc.Address.String()
		}

		resp, err := keeper.NewMsgServerImpl(k).Withdraw(ctx, types.NewMsgWithdraw(caller))
		if err != nil {
			return rejected("withdraw", err, caller == schedule.Beneficiary)
		}
		return OperationResult{Name: "withdraw", OK: true, Amount: resp.Amount.Amount}, nil
	}
}

// SimulateMsgRevoke revokes as the administrator, or now and then as a random account.
func SimulateMsgRevoke(k keeper.Keeper) Operation {
	return func(r *rand.Rand, ctx sdk.Context, accs []simtypes.Account) (OperationResult, error) {
		schedule, found := k.GetVestingSchedule(ctx)
		if !found {
			return noOp("revoke", "no schedule"), nil
		}
		caller := schedule.Administrator
		if r.Intn(4) == 0 {
			acc, _ := simtypes.RandomAcc(r, accs)
			caller = acc.Address.String()
		}

		resp, err := keeper.NewMsgServerImpl(k).Revoke(ctx, types.NewMsgRevoke(caller))
		if err != nil {
			return rejected("revoke", err, caller == schedule.Administrator)
		}
		return OperationResult{Name: "revoke", OK: true, Amount: resp.Reclaimed.Amount}, nil
	}
}

func noOp(name, comment string) OperationResult {
	return OperationResult{Name: name, Comment: comment, Amount: math.ZeroInt()}
}

// rejected turns an allowed module rejection into a no-op and returns
// anything else as an error. Unauthorized is only allowed for the wrong caller.
func rejected(name string, err error, authorized bool) (OperationResult, error) {
	if errorsmod.IsOf(err, types.ErrNotYetVested, types.ErrNothingDue, types.ErrNotRevocable, types.ErrAlreadyRevoked) {
		return noOp(name, err.Error()), nil
	}
	if !authorized && errorsmod.IsOf(err, types.ErrUnauthorized) {
		return noOp(name, err.Error()), nil
	}
	return OperationResult{}, err
}
