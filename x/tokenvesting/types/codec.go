package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
)

var (
	amino = codec.NewLegacyAmino()

	// ModuleCdc encodes the schedule and genesis state. The module has no
	// interface types, so plain amino JSON is enough.
	ModuleCdc = amino
)

func init() {
	cryptocodec.RegisterCrypto(amino)
	amino.Seal()
}
