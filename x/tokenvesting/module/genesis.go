package tokenvesting

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/productscience/tokenvesting/x/tokenvesting/keeper"
	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

// InitGenesis initializes the module's state from a provided genesis state.
// Custody funds are expected to come from the bank genesis.
func InitGenesis(ctx sdk.Context, k keeper.Keeper, genState types.GenesisState) {
	if err := genState.Validate(); err != nil {
		panic(err)
	}
	if genState.Schedule != nil {
		k.SetVestingSchedule(ctx, *genState.Schedule)
	}
}

// ExportGenesis returns the module's exported genesis.
func ExportGenesis(ctx sdk.Context, k keeper.Keeper) *types.GenesisState {
	genesis := types.DefaultGenesis()

	if schedule, found := k.GetVestingSchedule(ctx); found {
		genesis.Schedule = &schedule
	}

	return genesis
}
