package types

// DONTCOVER

import (
	sdkerrors "cosmossdk.io/errors"
)

// x/tokenvesting module sentinel errors
var (
	ErrInvalidSchedule  = sdkerrors.Register(ModuleName, 1100, "invalid vesting schedule")
	ErrUnauthorized     = sdkerrors.Register(ModuleName, 1101, "caller is not authorized for this operation")
	ErrNotYetVested     = sdkerrors.Register(ModuleName, 1102, "vesting cliff has not been reached")
	ErrNothingDue       = sdkerrors.Register(ModuleName, 1103, "no vested tokens are due")
	ErrNotRevocable     = sdkerrors.Register(ModuleName, 1104, "vesting schedule is not revocable")
	ErrAlreadyRevoked   = sdkerrors.Register(ModuleName, 1105, "vesting schedule already revoked")
	ErrTransferFailed   = sdkerrors.Register(ModuleName, 1106, "asset transfer failed")
	ErrScheduleNotFound = sdkerrors.Register(ModuleName, 1107, "vesting schedule not found")
	ErrScheduleExists   = sdkerrors.Register(ModuleName, 1108, "vesting schedule already exists")
)
