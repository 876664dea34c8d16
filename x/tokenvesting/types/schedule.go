package types

import (
	stdmath "math"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// VestingSchedule is the single vesting arrangement managed by the module.
// Start is a unix timestamp in seconds, Cliff and Duration are seconds after Start.
type VestingSchedule struct {
	Beneficiary   string `json:"beneficiary"`
	Administrator string `json:"administrator,omitempty"`
	Denom         string `json:"denom"`

	Start    int64  `json:"start"`
	Cliff    uint64 `json:"cliff"`
	Duration uint64 `json:"duration"`

	TotalAllocated math.Int `json:"total_allocated"`
	Released       math.Int `json:"released"`

	Revocable          bool     `json:"revocable"`
	Revoked            bool     `json:"revoked"`
	RevokedAt          int64    `json:"revoked_at,omitempty"`
	VestedAtRevocation math.Int `json:"vested_at_revocation"`
}

func NewVestingSchedule(
	beneficiary string,
	administrator string,
	denom string,
	start time.Time,
	cliff time.Duration,
	duration time.Duration,
	revocable bool,
	totalAllocated math.Int,
) VestingSchedule {
	return VestingSchedule{
		Beneficiary:        beneficiary,
		Administrator:      administrator,
		Denom:              denom,
		Start:              start.Unix(),
		Cliff:              durationSeconds(cliff),
		Duration:           durationSeconds(duration),
		TotalAllocated:     totalAllocated,
		Released:           math.ZeroInt(),
		Revocable:          revocable,
		VestedAtRevocation: math.ZeroInt(),
	}
}

func durationSeconds(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Second)
}

// Validate checks the immutable construction parameters.
func (s VestingSchedule) Validate() error {
	if s.Beneficiary == "" {
		return errorsmod.Wrap(ErrInvalidSchedule, "beneficiary is not set")
	}
	if _, err := sdk.AccAddressFromBech32(s.Beneficiary); err != nil {
		return errorsmod.Wrapf(ErrInvalidSchedule, "invalid beneficiary address (%s)", err)
	}
	if s.Administrator != "" {
		if _, err := sdk.AccAddressFromBech32(s.Administrator); err != nil {
			return errorsmod.Wrapf(ErrInvalidSchedule, "invalid administrator address (%s)", err)
		}
	}
	if s.Revocable && s.Administrator == "" {
		return errorsmod.Wrap(ErrInvalidSchedule, "revocable schedule requires an administrator")
	}
	if err := sdk.ValidateDenom(s.Denom); err != nil {
		return errorsmod.Wrapf(ErrInvalidSchedule, "invalid denom (%s)", err)
	}
	if s.Duration == 0 {
		return errorsmod.Wrap(ErrInvalidSchedule, "duration must be positive")
	}
	if s.Duration > stdmath.MaxInt64 {
		return errorsmod.Wrapf(ErrInvalidSchedule, "duration %d overflows int64 seconds", s.Duration)
	}
	if s.Cliff > s.Duration {
		return errorsmod.Wrapf(ErrInvalidSchedule, "cliff %d exceeds duration %d", s.Cliff, s.Duration)
	}
	if s.Start > stdmath.MaxInt64-int64(s.Duration) {
		return errorsmod.Wrapf(ErrInvalidSchedule, "start %d plus duration %d overflows int64 seconds", s.Start, s.Duration)
	}
	if s.TotalAllocated.IsNil() || !s.TotalAllocated.IsPositive() {
		return errorsmod.Wrap(ErrInvalidSchedule, "total allocated must be positive")
	}
	return nil
}

// ValidateState checks the accounting fields against the allocation.
func (s VestingSchedule) ValidateState() error {
	released := s.ReleasedAmount()
	if released.IsNegative() {
		return errorsmod.Wrapf(ErrInvalidSchedule, "negative released amount %s", released)
	}
	if released.GT(s.TotalAllocated) {
		return errorsmod.Wrapf(ErrInvalidSchedule, "released %s exceeds total allocated %s", released, s.TotalAllocated)
	}
	if !s.Revoked {
		return nil
	}
	if !s.Revocable {
		return errorsmod.Wrap(ErrInvalidSchedule, "non-revocable schedule is marked revoked")
	}
	ceiling := s.VestedAtRevocation
	if ceiling.IsNil() || ceiling.IsNegative() || ceiling.GT(s.TotalAllocated) {
		return errorsmod.Wrapf(ErrInvalidSchedule, "revocation ceiling %s out of range", ceiling)
	}
	if released.GT(ceiling) {
		return errorsmod.Wrapf(ErrInvalidSchedule, "released %s exceeds revocation ceiling %s", released, ceiling)
	}
	return nil
}

func (s VestingSchedule) StartTime() time.Time {
	return time.Unix(s.Start, 0).UTC()
}

func (s VestingSchedule) CliffTime() time.Time {
	return time.Unix(s.Start+int64(s.Cliff), 0).UTC()
}

func (s VestingSchedule) EndTime() time.Time {
	return time.Unix(s.Start+int64(s.Duration), 0).UTC()
}

// CliffReached reports whether now is at or past Start+Cliff.
func (s VestingSchedule) CliffReached(now time.Time) bool {
	return now.Unix() >= s.Start+int64(s.Cliff)
}

func (s VestingSchedule) ReleasedAmount() math.Int {
	if s.Released.IsNil() {
		return math.ZeroInt()
	}
	return s.Released
}

// VestedAmount is always re-derived from Start, never accrued, so floor
// remainders are picked up by later evaluations.
func (s VestingSchedule) VestedAmount(now time.Time) math.Int {
	if !s.CliffReached(now) {
		return math.ZeroInt()
	}
	if s.Revoked {
		return s.VestedAtRevocation
	}
	return s.linearVested(now)
}

func (s VestingSchedule) linearVested(now time.Time) math.Int {
	if now.Unix() >= s.Start+int64(s.Duration) {
		return s.TotalAllocated
	}
	elapsed := now.Unix() - s.Start
	return s.TotalAllocated.
		Mul(math.NewInt(elapsed)).
		Quo(math.NewIntFromUint64(s.Duration))
}

// Payable is what a withdraw at now would transfer.
func (s VestingSchedule) Payable(now time.Time) math.Int {
	payable := s.VestedAmount(now).Sub(s.ReleasedAmount())
	if payable.IsNegative() {
		return math.ZeroInt()
	}
	return payable
}

// VestedFraction is the vested share of the allocation at now, in [0, 1].
func (s VestingSchedule) VestedFraction(now time.Time) math.LegacyDec {
	if s.TotalAllocated.IsNil() || s.TotalAllocated.IsZero() {
		return math.LegacyZeroDec()
	}
	return math.LegacyNewDecFromInt(s.VestedAmount(now)).QuoInt(s.TotalAllocated)
}

// Outstanding is what custody still owes the beneficiary over the life of the
// schedule: the unreleased part of the allocation, or of the ceiling once revoked.
func (s VestingSchedule) Outstanding() math.Int {
	ceiling := s.TotalAllocated
	if s.Revoked {
		ceiling = s.VestedAtRevocation
	}
	outstanding := ceiling.Sub(s.ReleasedAmount())
	if outstanding.IsNegative() {
		return math.ZeroInt()
	}
	return outstanding
}

// FullyReleased reports whether every token that will ever vest has been paid out.
func (s VestingSchedule) FullyReleased() bool {
	return !s.Outstanding().IsPositive()
}

func (s VestingSchedule) Coins(amount math.Int) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(s.Denom, amount))
}
