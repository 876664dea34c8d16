// Package ledger is a minimal account-balance store. It keeps balances in its
// own KV store so transfers share the caller's cache context and roll back with it.
package ledger

import (
	"context"
	"sync"

	"cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

const (
	ModuleName = "ledger"
	StoreKey   = ModuleName
)

var BalancesPrefix = []byte{0x02}

type Keeper struct {
	storeService store.KVStoreService
	logger       log.Logger

	mu      *sync.RWMutex
	blocked map[string]bool
}

func NewKeeper(storeService store.KVStoreService, logger log.Logger) Keeper {
	return Keeper{
		storeService: storeService,
		logger:       logger,
		mu:           &sync.RWMutex{},
		blocked:      make(map[string]bool),
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", ModuleName)
}

// BlockAddress makes every transfer to addr fail, the way x/bank refuses
// sends to blocked module accounts.
func (k Keeper) BlockAddress(addr sdk.AccAddress) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.blocked[addr.String()] = true
}

func (k Keeper) UnblockAddress(addr sdk.AccAddress) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.blocked, addr.String())
}

func (k Keeper) isBlocked(addr sdk.AccAddress) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.blocked[addr.String()]
}

func balanceKey(addr sdk.AccAddress, denom string) []byte {
	key := append([]byte{}, BalancesPrefix...)
	key = append(key, address.MustLengthPrefix(addr)...)
	return append(key, []byte(denom)...)
}

func (k Keeper) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(balanceKey(addr, denom))
	if err != nil {
		panic(err)
	}
	if bz == nil {
		return sdk.NewCoin(denom, math.ZeroInt())
	}

	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(err)
	}
	return sdk.NewCoin(denom, amount)
}

func (k Keeper) GetAllBalances(ctx context.Context, addr sdk.AccAddress) sdk.Coins {
	store := k.storeService.OpenKVStore(ctx)
	prefix := append(append([]byte{}, BalancesPrefix...), address.MustLengthPrefix(addr)...)

	iterator, err := store.Iterator(prefix, storetypes.PrefixEndBytes(prefix))
	if err != nil {
		panic(err)
	}
	defer iterator.Close()

	balances := sdk.NewCoins()
	for ; iterator.Valid(); iterator.Next() {
		denom := string(iterator.Key()[len(prefix):])
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}
		balances = balances.Add(sdk.NewCoin(denom, amount))
	}
	return balances
}

func (k Keeper) setBalance(ctx context.Context, addr sdk.AccAddress, coin sdk.Coin) {
	store := k.storeService.OpenKVStore(ctx)
	key := balanceKey(addr, coin.Denom)
	if coin.IsZero() {
		if err := store.Delete(key); err != nil {
			panic(err)
		}
		return
	}
	bz, err := coin.Amount.Marshal()
	if err != nil {
		panic(err)
	}
	if err := store.Set(key, bz); err != nil {
		panic(err)
	}
}

// SendCoins debits from and credits to in one step. Nothing is written unless
// every denom can be covered.
func (k Keeper) SendCoins(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidCoins, amt.String())
	}
	if k.isBlocked(to) {
		return errorsmod.Wrapf(sdkerrors.ErrUnauthorized, "%s is not allowed to receive funds", to)
	}

	for _, coin := range amt {
		balance := k.GetBalance(ctx, from, coin.Denom)
		if balance.IsLT(coin) {
			return errorsmod.Wrapf(sdkerrors.ErrInsufficientFunds, "spendable balance %s is smaller than %s", balance, coin)
		}
	}
	for _, coin := range amt {
		k.setBalance(ctx, from, k.GetBalance(ctx, from, coin.Denom).Sub(coin))
		k.setBalance(ctx, to, k.GetBalance(ctx, to, coin.Denom).Add(coin))
	}

	k.Logger().Debug("coins transferred", "from", from.String(), "to", to.String(), "amount", amt.String())
	return nil
}

func (k Keeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return k.SendCoins(ctx, senderAddr, authtypes.NewModuleAddress(recipientModule), amt)
}

func (k Keeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return k.SendCoins(ctx, authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

// MintCoins credits new coins to an account. Used for genesis funding.
func (k Keeper) MintCoins(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) error {
	if !amt.IsValid() {
		return errorsmod.Wrap(sdkerrors.ErrInvalidCoins, amt.String())
	}
	for _, coin := range amt {
		k.setBalance(ctx, addr, k.GetBalance(ctx, addr, coin.Denom).Add(coin))
	}
	k.Logger().Info("coins minted", "address", addr.String(), "amount", amt.String())
	return nil
}

// IterateAllBalances walks every non-zero balance in key order.
func (k Keeper) IterateAllBalances(ctx context.Context, cb func(addr sdk.AccAddress, coin sdk.Coin) (stop bool)) {
	store := k.storeService.OpenKVStore(ctx)
	iterator, err := store.Iterator(BalancesPrefix, storetypes.PrefixEndBytes(BalancesPrefix))
	if err != nil {
		panic(err)
	}
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()[len(BalancesPrefix):]
		addrLen := int(key[0])
		addr := sdk.AccAddress(key[1 : 1+addrLen])
		denom := string(key[1+addrLen:])

		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}
		if cb(addr, sdk.NewCoin(denom, amount)) {
			return
		}
	}
}
