package types

const (
	// ModuleName defines the module name
	ModuleName = "tokenvesting"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// ScheduleKey holds the single vesting schedule managed by the module
	ScheduleKey = []byte("vesting_schedule")
)
