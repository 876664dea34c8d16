package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/productscience/tokenvesting/internal/ledger"
	"github.com/productscience/tokenvesting/x/tokenvesting/keeper"
	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

// GenesisTime is the block time every test context starts at.
var GenesisTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// TokenVestingMocks holds all the mock keepers for testing
type TokenVestingMocks struct {
	BankKeeper       *MockBankKeeper
	BankEscrowKeeper *MockBankEscrowKeeper
}

func TokenVestingKeeperWithMocks(t testing.TB) (keeper.Keeper, sdk.Context, TokenVestingMocks) {
	ctrl := gomock.NewController(t)
	mocks := TokenVestingMocks{
		BankKeeper:       NewMockBankKeeper(ctrl),
		BankEscrowKeeper: NewMockBankEscrowKeeper(ctrl),
	}

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	stateStore := newStateStore(t, storeKey)

	k := keeper.NewKeeper(
		types.ModuleCdc,
		runtime.NewKVStoreService(storeKey),
		log.NewNopLogger(),
		mocks.BankKeeper,
		mocks.BankEscrowKeeper,
	)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: GenesisTime}, false, log.NewNopLogger())
	return k, ctx, mocks
}

// TokenVestingKeeperWithLedger wires the keeper to a real ledger sharing the
// same multistore, so a rolled back cache context also rolls back balances.
func TokenVestingKeeperWithLedger(t testing.TB) (keeper.Keeper, sdk.Context, ledger.Keeper) {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ledgerKey := storetypes.NewKVStoreKey(ledger.StoreKey)
	stateStore := newStateStore(t, storeKey, ledgerKey)

	bank := ledger.NewKeeper(runtime.NewKVStoreService(ledgerKey), log.NewNopLogger())
	k := keeper.NewKeeper(
		types.ModuleCdc,
		runtime.NewKVStoreService(storeKey),
		log.NewNopLogger(),
		bank,
		bank,
	)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: GenesisTime}, false, log.NewNopLogger())
	return k, ctx, bank
}

func newStateStore(t testing.TB, keys ...*storetypes.KVStoreKey) storetypes.CommitMultiStore {
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, key := range keys {
		stateStore.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	require.NoError(t, stateStore.LoadLatestVersion())
	return stateStore
}
