package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MsgCreateSchedule creates the vesting schedule and moves TotalAllocated
// from Creator into module custody.
type MsgCreateSchedule struct {
	Creator        string   `json:"creator"`
	Beneficiary    string   `json:"beneficiary"`
	Administrator  string   `json:"administrator,omitempty"`
	Denom          string   `json:"denom"`
	Start          int64    `json:"start"`
	Cliff          uint64   `json:"cliff"`
	Duration       uint64   `json:"duration"`
	Revocable      bool     `json:"revocable"`
	TotalAllocated math.Int `json:"total_allocated"`
}

type MsgCreateScheduleResponse struct{}

type MsgWithdraw struct {
	Creator string `json:"creator"`
}

type MsgWithdrawResponse struct {
	Amount sdk.Coin `json:"amount"`
}

type MsgRevoke struct {
	Creator string `json:"creator"`
}

type MsgRevokeResponse struct {
	Reclaimed sdk.Coin `json:"reclaimed"`
}

func NewMsgCreateSchedule(creator string, schedule VestingSchedule) *MsgCreateSchedule {
	return &MsgCreateSchedule{
		Creator:        creator,
		Beneficiary:    schedule.Beneficiary,
		Administrator:  schedule.Administrator,
		Denom:          schedule.Denom,
		Start:          schedule.Start,
		Cliff:          schedule.Cliff,
		Duration:       schedule.Duration,
		Revocable:      schedule.Revocable,
		TotalAllocated: schedule.TotalAllocated,
	}
}

// Schedule builds the fresh schedule the message asks for.
func (msg *MsgCreateSchedule) Schedule() VestingSchedule {
	return VestingSchedule{
		Beneficiary:        msg.Beneficiary,
		Administrator:      msg.Administrator,
		Denom:              msg.Denom,
		Start:              msg.Start,
		Cliff:              msg.Cliff,
		Duration:           msg.Duration,
		TotalAllocated:     msg.TotalAllocated,
		Released:           math.ZeroInt(),
		Revocable:          msg.Revocable,
		VestedAtRevocation: math.ZeroInt(),
	}
}

func (msg *MsgCreateSchedule) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid creator address (%s)", err)
	}
	return msg.Schedule().Validate()
}

func NewMsgWithdraw(creator string) *MsgWithdraw {
	return &MsgWithdraw{Creator: creator}
}

func (msg *MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid creator address (%s)", err)
	}
	return nil
}

func NewMsgRevoke(creator string) *MsgRevoke {
	return &MsgRevoke{Creator: creator}
}

func (msg *MsgRevoke) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid creator address (%s)", err)
	}
	return nil
}
