package assembler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AssemblerConfig controls where the two address spaces start and which
// symbol-table pass provides label addresses.
type AssemblerConfig struct {
	TextBase uint32 `yaml:"textBase"`
	DataBase uint32 `yaml:"dataBase"`
	// ResolveExpandedAddresses makes labels take the addresses computed with
	// pseudo-instruction sizes instead of the fixed 4 bytes per line.
	ResolveExpandedAddresses bool `yaml:"resolveExpandedAddresses"`
}

const (
	DefaultTextBase = 0x00000000
	DefaultDataBase = 0x10000000
)

func DefaultConfig() AssemblerConfig {
	return AssemblerConfig{
		TextBase: DefaultTextBase,
		DataBase: DefaultDataBase,
	}
}

var assemblerConfig = DefaultConfig()

func GetConfig() AssemblerConfig {
	return assemblerConfig
}

func SetConfig(config AssemblerConfig) {
	assemblerConfig = config
}

// LoadConfig reads a YAML (or JSON) file on top of the defaults.
func LoadConfig(path string) (AssemblerConfig, error) {
	config := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read assembler config: %w", err)
	}
	if err := yaml.Unmarshal(b, &config); err != nil {
		return config, fmt.Errorf("failed to parse assembler config %s: %w", path, err)
	}
	return config, nil
}
