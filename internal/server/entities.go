package server

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

type StatusResponse struct {
	Status    string    `json:"status"`
	ChainID   string    `json:"chain_id"`
	Height    int64     `json:"height"`
	BlockTime time.Time `json:"block_time"`
}

type ScheduleResponse struct {
	Schedule       types.VestingSchedule `json:"schedule"`
	StartTime      time.Time             `json:"start_time"`
	CliffTime      time.Time             `json:"cliff_time"`
	EndTime        time.Time             `json:"end_time"`
	BlockTime      time.Time             `json:"block_time"`
	Vested         math.Int              `json:"vested"`
	Payable        math.Int              `json:"payable"`
	VestedFraction math.LegacyDec        `json:"vested_fraction"`
	CustodyAddress string                `json:"custody_address"`
	Custody        sdk.Coin              `json:"custody"`
	FullyReleased  bool                  `json:"fully_released"`
}

type VestedAtResponse struct {
	At     time.Time `json:"at"`
	Vested math.Int  `json:"vested"`
}

type CallerRequest struct {
	Caller string `json:"caller"`
}

type WithdrawResponse struct {
	Amount sdk.Coin `json:"amount"`
}

type RevokeResponse struct {
	Reclaimed sdk.Coin `json:"reclaimed"`
}

type AdvanceClockRequest struct {
	Duration string `json:"duration"`
}

type AdvanceClockResponse struct {
	BlockTime time.Time `json:"block_time"`
}

type BalancesResponse struct {
	Address  string    `json:"address"`
	Balances sdk.Coins `json:"balances"`
}
