package devnet

import (
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

type Balance struct {
	Address string    `json:"address"`
	Coins   sdk.Coins `json:"coins"`
}

// Genesis is the full devnet state: ledger balances plus the module genesis.
type Genesis struct {
	GenesisTime  time.Time           `json:"genesis_time"`
	ChainID      string              `json:"chain_id"`
	Balances     []Balance           `json:"balances"`
	TokenVesting *types.GenesisState `json:"tokenvesting"`
}

func (g Genesis) Validate() error {
	seen := make(map[string]bool, len(g.Balances))
	for _, balance := range g.Balances {
		if _, err := sdk.AccAddressFromBech32(balance.Address); err != nil {
			return fmt.Errorf("invalid balance address %q: %w", balance.Address, err)
		}
		if seen[balance.Address] {
			return fmt.Errorf("duplicate balance for %s", balance.Address)
		}
		seen[balance.Address] = true
		if err := balance.Coins.Validate(); err != nil {
			return fmt.Errorf("invalid coins for %s: %w", balance.Address, err)
		}
	}
	if g.TokenVesting != nil {
		return g.TokenVesting.Validate()
	}
	return nil
}

func (g Genesis) MarshalJSON() ([]byte, error) {
	type plain Genesis
	return types.ModuleCdc.MarshalJSONIndent(plain(g), "", "  ")
}

func UnmarshalGenesis(bz []byte) (Genesis, error) {
	type plain Genesis
	var gen plain
	if err := types.ModuleCdc.UnmarshalJSON(bz, &gen); err != nil {
		return Genesis{}, err
	}
	return Genesis(gen), nil
}
