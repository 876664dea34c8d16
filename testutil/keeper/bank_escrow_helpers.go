package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.uber.org/mock/gomock"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

const TestDenom = "nicoin"

func coinsOf(amount int64) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(TestDenom, math.NewInt(amount)))
}

// ExpectPayout expects a single transfer of amount out of custody to who.
func (escrow *MockBankEscrowKeeper) ExpectPayout(who string, amount int64) *gomock.Call {
	whoAddr, err := sdk.AccAddressFromBech32(who)
	if err != nil {
		panic(err)
	}
	return escrow.EXPECT().SendCoinsFromModuleToAccount(gomock.Any(), types.ModuleName, whoAddr, coinsOf(amount))
}

// ExpectFunding expects the allocation to be moved from who into custody.
func (escrow *MockBankEscrowKeeper) ExpectFunding(who string, amount int64) *gomock.Call {
	whoAddr, err := sdk.AccAddressFromBech32(who)
	if err != nil {
		panic(err)
	}
	return escrow.EXPECT().SendCoinsFromAccountToModule(gomock.Any(), whoAddr, types.ModuleName, coinsOf(amount))
}
