package keeper_test

import (
	"sync"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

type callResult struct {
	revoke bool
	amount math.Int
	err    error
}

// race fires every call at once and collects what each returned.
func (suite *KeeperTestSuite) race(withdrawAt, revokeAt []time.Duration) []callResult {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []callResult
		start   = make(chan struct{})
	)
	record := func(r callResult) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, r)
	}

	for _, offset := range withdrawAt {
		ctx := suite.at(offset)
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			amount, err := suite.keeper.Withdraw(ctx, suite.beneficiary.String())
			record(callResult{amount: amount, err: err})
		}()
	}
	for _, offset := range revokeAt {
		ctx := suite.at(offset)
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			amount, err := suite.keeper.Revoke(ctx, suite.administrator.String())
			record(callResult{revoke: true, amount: amount, err: err})
		}()
	}

	close(start)
	wg.Wait()
	return results
}

func (suite *KeeperTestSuite) TestConcurrentWithdrawAndRevoke_SameBlockTime() {
	suite.createSchedule(true)
	offset := year + 12*week

	withdrawAt := make([]time.Duration, 16)
	for i := range withdrawAt {
		withdrawAt[i] = offset
	}
	results := suite.race(withdrawAt, []time.Duration{offset, offset, offset})

	var paid, reclaimed []math.Int
	for _, r := range results {
		switch {
		case r.err == nil && r.revoke:
			reclaimed = append(reclaimed, r.amount)
		case r.err == nil:
			paid = append(paid, r.amount)
		case r.revoke:
			suite.Require().ErrorIs(r.err, types.ErrAlreadyRevoked)
		default:
			suite.Require().ErrorIs(r.err, types.ErrNothingDue)
		}
	}

	suite.Require().Len(paid, 1)
	suite.Require().Equal(math.NewInt(615), paid[0])
	suite.Require().Len(reclaimed, 1)
	suite.Require().Equal(math.NewInt(385), reclaimed[0])

	ctx := suite.at(offset)
	suite.Require().Equal(math.NewInt(615), suite.keeper.ReleasedAmount(ctx))
	suite.Require().Equal(math.NewInt(615), suite.balance(suite.beneficiary))
	suite.Require().Equal(math.NewInt(385), suite.balance(suite.administrator))
	suite.Require().True(suite.keeper.CustodyBalance(ctx).IsZero())
	suite.requireConservation(ctx)
}

func (suite *KeeperTestSuite) TestConcurrentWithdrawAndRevoke_StaggeredBlockTimes() {
	suite.createSchedule(true)

	var withdrawAt []time.Duration
	for i := 0; i < 24; i++ {
		withdrawAt = append(withdrawAt, year-week+time.Duration(i)*4*week)
	}
	results := suite.race(withdrawAt, []time.Duration{year + 20*week, year + 30*week})

	paid := math.ZeroInt()
	payouts, revokes := 0, 0
	for _, r := range results {
		if r.err == nil {
			if r.revoke {
				revokes++
			} else {
				suite.Require().True(r.amount.IsPositive())
				paid = paid.Add(r.amount)
				payouts++
			}
			continue
		}
		suite.Require().True(
			errorsmod.IsOf(r.err, types.ErrNothingDue, types.ErrNotYetVested, types.ErrAlreadyRevoked),
			"unexpected error: %v", r.err,
		)
		suite.Require().Equal(r.revoke, errorsmod.IsOf(r.err, types.ErrAlreadyRevoked))
	}

	suite.Require().Equal(1, revokes)
	suite.Require().Positive(payouts)

	ctx := suite.at(3 * year)
	released := suite.keeper.ReleasedAmount(ctx)
	suite.Require().Equal(paid, released)
	suite.Require().Equal(released, suite.balance(suite.beneficiary))
	suite.Require().True(released.LTE(suite.keeper.VestedAmount(ctx)))
	suite.requireConservation(ctx)
}
