package keeper

import (
	"fmt"
	"sync"

	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

type (
	Keeper struct {
		cdc          *codec.LegacyAmino
		storeService store.KVStoreService
		logger       log.Logger

		// serializes every read-modify-write of the schedule
		mu *sync.Mutex

		bankKeeper       types.BankKeeper
		bankEscrowKeeper types.BankEscrowKeeper
	}
)

func NewKeeper(
	cdc *codec.LegacyAmino,
	storeService store.KVStoreService,
	logger log.Logger,

	bankKeeper types.BankKeeper,
	bankEscrowKeeper types.BankEscrowKeeper,
) Keeper {
	return Keeper{
		cdc:          cdc,
		storeService: storeService,
		logger:       logger,
		mu:           &sync.Mutex{},

		bankKeeper:       bankKeeper,
		bankEscrowKeeper: bankEscrowKeeper,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// CustodyAddress is the module account holding the unreleased allocation.
func (k Keeper) CustodyAddress() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.ModuleName)
}

// SetVestingSchedule stores the vesting schedule
func (k Keeper) SetVestingSchedule(ctx sdk.Context, schedule types.VestingSchedule) {
	store := k.storeService.OpenKVStore(ctx)
	bz := k.cdc.MustMarshalJSON(&schedule)
	if err := store.Set(types.ScheduleKey, bz); err != nil {
		panic(err)
	}
}

// GetVestingSchedule retrieves the vesting schedule
func (k Keeper) GetVestingSchedule(ctx sdk.Context) (schedule types.VestingSchedule, found bool) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.ScheduleKey)
	if err != nil {
		panic(err)
	}
	if bz == nil {
		return schedule, false
	}

	k.cdc.MustUnmarshalJSON(bz, &schedule)
	return schedule, true
}

// HasVestingSchedule reports whether a schedule has been created
func (k Keeper) HasVestingSchedule(ctx sdk.Context) bool {
	store := k.storeService.OpenKVStore(ctx)
	has, err := store.Has(types.ScheduleKey)
	if err != nil {
		panic(err)
	}
	return has
}
