// Package devnet runs the tokenvesting keeper as a single-process chain: one
// IAVL multistore on memdb, a block clock and all-or-nothing message delivery.
package devnet

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/productscience/tokenvesting/internal/ledger"
	"github.com/productscience/tokenvesting/x/tokenvesting/keeper"
	tokenvesting "github.com/productscience/tokenvesting/x/tokenvesting/module"
	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

const ChainID = "tokenvesting-devnet"

type Chain struct {
	mu     sync.Mutex
	cms    storetypes.CommitMultiStore
	logger log.Logger
	clock  Clock
	height int64

	keeper     keeper.Keeper
	bank       ledger.Keeper
	invariants invariantRegistry
}

func NewChain(logger log.Logger, clock Clock) (*Chain, error) {
	db := dbm.NewMemDB()
	keys := storetypes.NewKVStoreKeys(types.StoreKey, ledger.StoreKey)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("loading store: %w", err)
	}

	bank := ledger.NewKeeper(runtime.NewKVStoreService(keys[ledger.StoreKey]), logger)
	k := keeper.NewKeeper(
		types.ModuleCdc,
		runtime.NewKVStoreService(keys[types.StoreKey]),
		logger,
		bank,
		bank,
	)

	c := &Chain{
		cms:    cms,
		logger: logger.With("module", "devnet"),
		clock:  clock,
		height: 1,
		keeper: k,
		bank:   bank,
	}
	keeper.RegisterInvariants(&c.invariants, k)
	return c, nil
}

// NewChainFromGenesis builds a chain and applies gen as its first block.
func NewChainFromGenesis(logger log.Logger, clock Clock, gen Genesis) (*Chain, error) {
	c, err := NewChain(logger, clock)
	if err != nil {
		return nil, err
	}
	if err := c.InitChain(gen); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Chain) context() sdk.Context {
	header := cmtproto.Header{
		ChainID: ChainID,
		Height:  c.height,
		Time:    c.clock.Now(),
	}
	return sdk.NewContext(c.cms, header, false, c.logger)
}

// Deliver runs fn as one block at the current clock time. State written by fn
// is committed only if fn returns nil and the module invariants still hold.
func (c *Chain) Deliver(fn func(ctx sdk.Context) error) (sdk.Events, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := c.context()
	cacheCtx, write := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		c.logger.Debug("Block discarded", "height", c.height, "error", err)
		return nil, err
	}
	if route, msg, broken := c.invariants.check(cacheCtx); broken {
		c.logger.Error("Block discarded, invariant broken", "height", c.height, "route", route, "invariant", msg)
		return nil, fmt.Errorf("invariant broken: %s", msg)
	}
	events := cacheCtx.EventManager().Events()
	write()

	commitID := c.cms.Commit()
	c.logger.Debug("Block committed", "height", c.height, "time", ctx.BlockTime(), "hash", fmt.Sprintf("%X", commitID.Hash))
	c.height++
	return events, nil
}

// InvariantRoutes lists the invariant routes checked before every commit.
func (c *Chain) InvariantRoutes() []string {
	return c.invariants.Routes()
}

// Query runs fn against a throwaway view of the latest state.
func (c *Chain) Query(fn func(ctx sdk.Context) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cacheCtx, _ := c.context().CacheContext()
	return fn(cacheCtx)
}

func (c *Chain) Height() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

func (c *Chain) Clock() Clock {
	return c.clock
}

func (c *Chain) Now() time.Time {
	return c.clock.Now()
}

func (c *Chain) Keeper() keeper.Keeper {
	return c.keeper
}

func (c *Chain) Ledger() ledger.Keeper {
	return c.bank
}

func (c *Chain) CustodyAddress() sdk.AccAddress {
	return c.keeper.CustodyAddress()
}

// Fund mints coins to addr in a block of its own.
func (c *Chain) Fund(addr sdk.AccAddress, coins sdk.Coins) error {
	_, err := c.Deliver(func(ctx sdk.Context) error {
		return c.bank.MintCoins(ctx, addr, coins)
	})
	return err
}

func (c *Chain) CreateSchedule(msg *types.MsgCreateSchedule) (sdk.Events, error) {
	return c.Deliver(func(ctx sdk.Context) error {
		_, err := keeper.NewMsgServerImpl(c.keeper).CreateSchedule(ctx, msg)
		return err
	})
}

func (c *Chain) Withdraw(caller string) (sdk.Coin, error) {
	var resp *types.MsgWithdrawResponse
	_, err := c.Deliver(func(ctx sdk.Context) (err error) {
		resp, err = keeper.NewMsgServerImpl(c.keeper).Withdraw(ctx, types.NewMsgWithdraw(caller))
		return err
	})
	if err != nil {
		return sdk.Coin{}, err
	}
	return resp.Amount, nil
}

func (c *Chain) Revoke(caller string) (sdk.Coin, error) {
	var resp *types.MsgRevokeResponse
	_, err := c.Deliver(func(ctx sdk.Context) (err error) {
		resp, err = keeper.NewMsgServerImpl(c.keeper).Revoke(ctx, types.NewMsgRevoke(caller))
		return err
	})
	if err != nil {
		return sdk.Coin{}, err
	}
	return resp.Reclaimed, nil
}

func (c *Chain) Schedule() (*keeper.QueryScheduleResponse, error) {
	var resp *keeper.QueryScheduleResponse
	err := c.Query(func(ctx sdk.Context) (err error) {
		resp, err = keeper.NewQueryServerImpl(c.keeper).Schedule(ctx, &keeper.QueryScheduleRequest{})
		return err
	})
	return resp, err
}

func (c *Chain) VestedAt(at time.Time) (*keeper.QueryVestedAtResponse, error) {
	var resp *keeper.QueryVestedAtResponse
	err := c.Query(func(ctx sdk.Context) (err error) {
		resp, err = keeper.NewQueryServerImpl(c.keeper).VestedAt(ctx, &keeper.QueryVestedAtRequest{At: at})
		return err
	})
	return resp, err
}

func (c *Chain) Balances(addr sdk.AccAddress) sdk.Coins {
	var balances sdk.Coins
	_ = c.Query(func(ctx sdk.Context) error {
		balances = c.bank.GetAllBalances(ctx, addr)
		return nil
	})
	return balances
}

// InitChain loads balances and module state, then checks custody can cover
// everything the schedule still owes.
func (c *Chain) InitChain(gen Genesis) error {
	if err := gen.Validate(); err != nil {
		return err
	}
	_, err := c.Deliver(func(ctx sdk.Context) error {
		for _, balance := range gen.Balances {
			addr, err := sdk.AccAddressFromBech32(balance.Address)
			if err != nil {
				return err
			}
			if err := c.bank.MintCoins(ctx, addr, balance.Coins); err != nil {
				return err
			}
		}
		if gen.TokenVesting == nil {
			return nil
		}
		tokenvesting.InitGenesis(ctx, c.keeper, *gen.TokenVesting)

		schedule := gen.TokenVesting.Schedule
		if schedule == nil {
			return nil
		}
		custody := c.bank.GetBalance(ctx, c.keeper.CustodyAddress(), schedule.Denom)
		if custody.Amount.LT(schedule.Outstanding()) {
			return fmt.Errorf("custody holds %s but schedule still owes %s%s", custody, schedule.Outstanding(), schedule.Denom)
		}
		return nil
	})
	return err
}

func (c *Chain) ExportGenesis() Genesis {
	gen := Genesis{ChainID: ChainID}
	_ = c.Query(func(ctx sdk.Context) error {
		gen.GenesisTime = ctx.BlockTime()

		byAddress := make(map[string]sdk.Coins)
		c.bank.IterateAllBalances(ctx, func(addr sdk.AccAddress, coin sdk.Coin) bool {
			byAddress[addr.String()] = byAddress[addr.String()].Add(coin)
			return false
		})
		for addr, coins := range byAddress {
			gen.Balances = append(gen.Balances, Balance{Address: addr, Coins: coins})
		}
		sort.Slice(gen.Balances, func(i, j int) bool {
			return gen.Balances[i].Address < gen.Balances[j].Address
		})

		gen.TokenVesting = tokenvesting.ExportGenesis(ctx, c.keeper)
		return nil
	})
	return gen
}
