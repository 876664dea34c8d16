package config

import (
	"fmt"
	"time"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/rs/zerolog"

	"github.com/productscience/tokenvesting/x/tokenvesting/types"
)

const (
	ClockManual = "manual"
	ClockWall   = "wall"
)

type Config struct {
	Denom    string         `koanf:"denom"`
	Funder   FunderConfig   `koanf:"funder"`
	Schedule ScheduleConfig `koanf:"schedule"`
	Clock    ClockConfig    `koanf:"clock"`
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
}

// FunderConfig is the account that receives Balance at genesis and pays the
// allocation into custody when the schedule is created.
type FunderConfig struct {
	Address string `koanf:"address"`
	Balance string `koanf:"balance"`
}

type ScheduleConfig struct {
	Beneficiary   string `koanf:"beneficiary"`
	Administrator string `koanf:"administrator"`
	// Start is RFC3339. When empty the schedule starts StartDelay after genesis.
	Start          string        `koanf:"start"`
	StartDelay     time.Duration `koanf:"start_delay"`
	Cliff          time.Duration `koanf:"cliff"`
	Duration       time.Duration `koanf:"duration"`
	Revocable      bool          `koanf:"revocable"`
	TotalAllocated string        `koanf:"total_allocated"`
}

type ClockConfig struct {
	Mode        string `koanf:"mode"`
	GenesisTime string `koanf:"genesis_time"`
}

type ServerConfig struct {
	Address string `koanf:"address"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

// Default mirrors the original deployment: vesting opens a minute after
// genesis, the cliff is three minutes and everything is vested after fifteen.
func Default() Config {
	return Config{
		Denom: "nicoin",
		Funder: FunderConfig{
			Balance: "1000000",
		},
		Schedule: ScheduleConfig{
			StartDelay:     time.Minute,
			Cliff:          3 * time.Minute,
			Duration:       15 * time.Minute,
			Revocable:      true,
			TotalAllocated: "1000000",
		},
		Clock: ClockConfig{
			Mode: ClockManual,
		},
		Server: ServerConfig{
			Address: ":8080",
		},
		Log: LogConfig{
			Level: zerolog.InfoLevel.String(),
		},
	}
}

// Generate returns the default config with fresh funder, beneficiary and
// administrator accounts.
func Generate() Config {
	cfg := Default()
	cfg.Funder.Address = newAddress()
	cfg.Schedule.Beneficiary = newAddress()
	cfg.Schedule.Administrator = newAddress()
	return cfg
}

func newAddress() string {
	return sdk.AccAddress(ed25519.GenPrivKey().PubKey().Address()).String()
}

func (c Config) Validate() error {
	if err := sdk.ValidateDenom(c.Denom); err != nil {
		return fmt.Errorf("denom: %w", err)
	}
	if _, err := sdk.AccAddressFromBech32(c.Funder.Address); err != nil {
		return fmt.Errorf("funder.address: %w", err)
	}
	balance, err := parseAmount(c.Funder.Balance)
	if err != nil {
		return fmt.Errorf("funder.balance: %w", err)
	}
	total, err := parseAmount(c.Schedule.TotalAllocated)
	if err != nil {
		return fmt.Errorf("schedule.total_allocated: %w", err)
	}
	if balance.LT(total) {
		return fmt.Errorf("funder balance %s cannot cover total allocated %s", balance, total)
	}
	if c.Schedule.StartDelay < 0 {
		return fmt.Errorf("schedule.start_delay must not be negative")
	}
	if c.Schedule.Start != "" {
		if _, err := time.Parse(time.RFC3339, c.Schedule.Start); err != nil {
			return fmt.Errorf("schedule.start: %w", err)
		}
	}
	if c.Clock.GenesisTime != "" {
		if _, err := time.Parse(time.RFC3339, c.Clock.GenesisTime); err != nil {
			return fmt.Errorf("clock.genesis_time: %w", err)
		}
	}
	switch c.Clock.Mode {
	case ClockManual, ClockWall:
	default:
		return fmt.Errorf("clock.mode must be %q or %q, got %q", ClockManual, ClockWall, c.Clock.Mode)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	start, err := c.ScheduleStart(time.Now())
	if err != nil {
		return err
	}
	schedule, err := c.VestingSchedule(start)
	if err != nil {
		return err
	}
	return schedule.Validate()
}

// GenesisTime is the configured genesis time, or now when none is set.
func (c Config) GenesisTime(now time.Time) (time.Time, error) {
	if c.Clock.GenesisTime == "" {
		return now.UTC().Truncate(time.Second), nil
	}
	return time.Parse(time.RFC3339, c.Clock.GenesisTime)
}

func (c Config) ScheduleStart(genesis time.Time) (time.Time, error) {
	if c.Schedule.Start == "" {
		return genesis.Add(c.Schedule.StartDelay), nil
	}
	return time.Parse(time.RFC3339, c.Schedule.Start)
}

// VestingSchedule builds the schedule described by the config starting at start.
func (c Config) VestingSchedule(start time.Time) (types.VestingSchedule, error) {
	total, err := parseAmount(c.Schedule.TotalAllocated)
	if err != nil {
		return types.VestingSchedule{}, fmt.Errorf("schedule.total_allocated: %w", err)
	}
	return types.NewVestingSchedule(
		c.Schedule.Beneficiary,
		c.Schedule.Administrator,
		c.Denom,
		start,
		c.Schedule.Cliff,
		c.Schedule.Duration,
		c.Schedule.Revocable,
		total,
	), nil
}

func (c Config) FunderCoins() (sdk.Coins, error) {
	balance, err := parseAmount(c.Funder.Balance)
	if err != nil {
		return nil, fmt.Errorf("funder.balance: %w", err)
	}
	return sdk.NewCoins(sdk.NewCoin(c.Denom, balance)), nil
}

func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid amount %q", s)
	}
	if amount.IsNegative() {
		return math.Int{}, fmt.Errorf("negative amount %q", s)
	}
	return amount, nil
}
