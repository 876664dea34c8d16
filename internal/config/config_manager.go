package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "TOKENVESTING_"

type WriteCloserProvider interface {
	GetWriter() (io.WriteCloser, error)
}

// ConfigManager layers the built-in defaults, a YAML source and TOKENVESTING_
// environment variables, in that order.
type ConfigManager struct {
	KoanProvider   koanf.Provider
	WriterProvider WriteCloserProvider

	currentConfig Config
	mutex         sync.Mutex
}

// NewFileConfigManager reads and writes path. An empty path means defaults
// and environment only, "-" reads YAML from stdin.
func NewFileConfigManager(path string) (*ConfigManager, error) {
	manager := &ConfigManager{}
	switch path {
	case "":
	case "-":
		bz, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading config from stdin: %w", err)
		}
		manager.KoanProvider = rawbytes.Provider(bz)
	default:
		manager.KoanProvider = file.Provider(path)
		manager.WriterProvider = NewFileWriteCloserProvider(path)
	}
	return manager, nil
}

func (cm *ConfigManager) Load() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	config, err := readConfig(cm.KoanProvider)
	if err != nil {
		return err
	}
	cm.currentConfig = config
	return nil
}

func (cm *ConfigManager) GetConfig() *Config {
	return &cm.currentConfig
}

func (cm *ConfigManager) SetConfig(config Config) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.currentConfig = config
}

func (cm *ConfigManager) Write() error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	if cm.WriterProvider == nil {
		return fmt.Errorf("config has no writable destination")
	}
	writer, err := cm.WriterProvider.GetWriter()
	if err != nil {
		return err
	}
	defer writer.Close()
	return WriteConfig(cm.currentConfig, writer)
}

func readConfig(provider koanf.Provider) (Config, error) {
	k := koanf.New(".")
	parser := yaml.Parser()

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("error loading defaults: %w", err)
	}
	if provider != nil {
		if err := k.Load(provider, parser); err != nil {
			return Config{}, fmt.Errorf("error loading config: %w", err)
		}
	}
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "__", ".", -1)
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("error loading env: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return Config{}, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return config, nil
}

func WriteConfig(config Config, writer io.Writer) error {
	k := koanf.New(".")
	parser := yaml.Parser()
	if err := k.Load(structs.Provider(config, "koanf"), nil); err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	output, err := k.Marshal(parser)
	if err != nil {
		return fmt.Errorf("error marshalling config: %w", err)
	}
	if _, err := writer.Write(output); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}

type FileWriteCloserProvider struct {
	path string
}

func NewFileWriteCloserProvider(path string) *FileWriteCloserProvider {
	return &FileWriteCloserProvider{path: path}
}

func (f *FileWriteCloserProvider) GetWriter() (io.WriteCloser, error) {
	file, err := os.OpenFile(f.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error opening file at %s: %w", f.path, err)
	}
	return file, nil
}
