package keeper_test

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/productscience/tokenvesting/x/tokenvesting/keeper"
	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

func (suite *KeeperTestSuite) TestInvariants_HoldThroughLifecycle() {
	invariant := keeper.AllInvariants(suite.keeper)

	_, broken := invariant(suite.ctx)
	suite.Require().False(broken, "no schedule yet")

	suite.createSchedule(true)
	for _, offset := range []int{0, 52, 60, 78, 104, 200} {
		ctx := suite.at(week * time.Duration(offset))
		_, _ = suite.keeper.Withdraw(ctx, suite.beneficiary.String())
		if offset == 78 {
			_, err := suite.keeper.Revoke(ctx, suite.administrator.String())
			suite.Require().NoError(err)
		}
		msg, broken := invariant(ctx)
		suite.Require().False(broken, msg)
	}
}

func (suite *KeeperTestSuite) TestInvariants_CustodyBacking() {
	suite.createSchedule(true)
	ctx := suite.at(year)
	invariant := keeper.CustodyBackingInvariant(suite.keeper)

	suite.Require().NoError(suite.bank.MintCoins(ctx, suite.keeper.CustodyAddress(), sdk.NewCoins(sdk.NewInt64Coin(denom, 5))))
	_, broken := invariant(ctx)
	suite.Require().False(broken, "surplus in custody is fine")

	drain := sdk.NewCoins(sdk.NewInt64Coin(denom, 10))
	suite.Require().NoError(suite.bank.SendCoinsFromModuleToAccount(ctx, types.ModuleName, suite.funder, drain))
	msg, broken := invariant(ctx)
	suite.Require().True(broken)
	suite.Require().Contains(msg, "outstanding 1000"+denom)
}

func (suite *KeeperTestSuite) TestInvariants_ReleasedWithinVested() {
	suite.createSchedule(true)
	ctx := suite.at(year)
	invariant := keeper.ReleasedWithinVestedInvariant(suite.keeper)

	schedule, found := suite.keeper.GetVestingSchedule(ctx)
	suite.Require().True(found)
	schedule.Released = math.NewInt(501)
	suite.keeper.SetVestingSchedule(ctx, schedule)

	_, broken := invariant(ctx)
	suite.Require().True(broken)

	_, broken = invariant(suite.at(2 * year))
	suite.Require().False(broken)
}

type invariantRegistry map[string]sdk.Invariant

func (r invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r[moduleName+"/"+route] = invar
}

func (suite *KeeperTestSuite) TestRegisterInvariants() {
	registry := invariantRegistry{}
	keeper.RegisterInvariants(registry, suite.keeper)
	suite.Require().Len(registry, 2)

	suite.createSchedule(true)
	ctx := suite.at(year)
	for _, route := range []string{"tokenvesting/custody-backing", "tokenvesting/released-within-vested"} {
		invariant, ok := registry[route]
		suite.Require().True(ok, route)
		msg, broken := invariant(ctx)
		suite.Require().False(broken, msg)
	}

	schedule, _ := suite.keeper.GetVestingSchedule(ctx)
	schedule.Released = math.NewInt(501)
	suite.keeper.SetVestingSchedule(ctx, schedule)
	_, broken := registry["tokenvesting/released-within-vested"](ctx)
	suite.Require().True(broken)
}
