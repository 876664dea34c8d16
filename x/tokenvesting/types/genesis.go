package types

import (
	"fmt"
)

// GenesisState holds the schedule, if one has been created.
type GenesisState struct {
	Schedule *VestingSchedule `json:"schedule,omitempty"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if gs.Schedule == nil {
		return nil
	}
	if err := gs.Schedule.Validate(); err != nil {
		return fmt.Errorf("genesis schedule: %w", err)
	}
	if err := gs.Schedule.ValidateState(); err != nil {
		return fmt.Errorf("genesis schedule state: %w", err)
	}
	return nil
}

func (gs GenesisState) MustMarshalJSON() []byte {
	return ModuleCdc.MustMarshalJSON(&gs)
}

func UnmarshalGenesis(bz []byte) (*GenesisState, error) {
	var gs GenesisState
	if err := ModuleCdc.UnmarshalJSON(bz, &gs); err != nil {
		return nil, err
	}
	return &gs, nil
}
