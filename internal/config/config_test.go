package config_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/stretchr/testify/require"

	"github.com/productscience/tokenvesting/internal/config"
	"github.com/productscience/tokenvesting/testutil/sample"
)

var (
	funder        = sample.AccAddress()
	beneficiary   = sample.AccAddress()
	administrator = sample.AccAddress()
)

func testYaml() string {
	return `
denom: ngonka
funder:
  address: ` + funder + `
  balance: 5000
schedule:
  beneficiary: ` + beneficiary + `
  administrator: ` + administrator + `
  start: "2024-01-01T00:01:00Z"
  cliff: 8760h
  duration: 17520h
  revocable: true
  total_allocated: 1000
clock:
  mode: manual
  genesis_time: "2024-01-01T00:00:00Z"
server:
  address: 127.0.0.1:9090
`
}

type CaptureWriterProvider struct {
	bytes.Buffer
}

func (c *CaptureWriterProvider) Close() error {
	return nil
}

func (c *CaptureWriterProvider) GetWriter() (io.WriteCloser, error) {
	return c, nil
}

func TestConfigLoad(t *testing.T) {
	manager := &config.ConfigManager{KoanProvider: rawbytes.Provider([]byte(testYaml()))}
	require.NoError(t, manager.Load())

	cfg := manager.GetConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "ngonka", cfg.Denom)
	require.Equal(t, "5000", cfg.Funder.Balance)
	require.Equal(t, beneficiary, cfg.Schedule.Beneficiary)
	require.Equal(t, 365*24*time.Hour, cfg.Schedule.Cliff)
	require.Equal(t, "1000", cfg.Schedule.TotalAllocated)
	require.Equal(t, "127.0.0.1:9090", cfg.Server.Address)
	// not in the file, so the default survives
	require.Equal(t, "info", cfg.Log.Level)

	genesis, err := cfg.GenesisTime(time.Now())
	require.NoError(t, err)
	start, err := cfg.ScheduleStart(genesis)
	require.NoError(t, err)
	require.Equal(t, genesis.Add(time.Minute), start)

	schedule, err := cfg.VestingSchedule(start)
	require.NoError(t, err)
	require.Equal(t, uint64(2*365*24*60*60), schedule.Duration)
	require.Equal(t, "1000", schedule.TotalAllocated.String())
}

func TestConfigDefaultsAndEnv(t *testing.T) {
	t.Setenv("TOKENVESTING_SCHEDULE__CLIFF", "5m")
	t.Setenv("TOKENVESTING_SCHEDULE__TOTAL_ALLOCATED", "42")
	t.Setenv("TOKENVESTING_LOG__JSON", "true")

	manager, err := config.NewFileConfigManager("")
	require.NoError(t, err)
	require.NoError(t, manager.Load())

	cfg := manager.GetConfig()
	require.Equal(t, 5*time.Minute, cfg.Schedule.Cliff)
	require.Equal(t, 15*time.Minute, cfg.Schedule.Duration)
	require.Equal(t, time.Minute, cfg.Schedule.StartDelay)
	require.Equal(t, "42", cfg.Schedule.TotalAllocated)
	require.True(t, cfg.Log.JSON)
	require.Equal(t, config.ClockManual, cfg.Clock.Mode)
}

func TestConfigRoundTrip(t *testing.T) {
	capture := &CaptureWriterProvider{}
	manager := &config.ConfigManager{
		KoanProvider:   rawbytes.Provider([]byte(testYaml())),
		WriterProvider: capture,
	}
	require.NoError(t, manager.Load())
	require.NoError(t, manager.Write())

	manager2 := &config.ConfigManager{KoanProvider: rawbytes.Provider(capture.Bytes())}
	require.NoError(t, manager2.Load())
	require.Equal(t, *manager.GetConfig(), *manager2.GetConfig())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *config.Config)
	}{
		{"missing funder", func(c *config.Config) { c.Funder.Address = "" }},
		{"underfunded", func(c *config.Config) { c.Funder.Balance = "10" }},
		{"bad amount", func(c *config.Config) { c.Schedule.TotalAllocated = "lots" }},
		{"cliff after end", func(c *config.Config) { c.Schedule.Cliff = time.Hour }},
		{"zero duration", func(c *config.Config) { c.Schedule.Duration = 0 }},
		{"revocable without admin", func(c *config.Config) { c.Schedule.Administrator = "" }},
		{"bad clock", func(c *config.Config) { c.Clock.Mode = "sundial" }},
		{"bad log level", func(c *config.Config) { c.Log.Level = "loud" }},
		{"bad start", func(c *config.Config) { c.Schedule.Start = "tomorrow" }},
	}
	require.NoError(t, config.Generate().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Generate()
			tt.modify(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
