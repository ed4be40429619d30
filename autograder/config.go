package autograder

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/assembler"
)

// DefaultConfigPath is where Gradescope unpacks the assignment's config.
const DefaultConfigPath = "source/autograderConfig.yaml"

type TestCase struct {
	Number     int    `yaml:"number"`
	Name       string `yaml:"name"`
	Visibility string `yaml:"visibility"`
	Points     int    `yaml:"points"`
	// Source is the submitted file this case assembles, relative to the
	// student code path.
	Source string `yaml:"source"`
	// Expected is the reference hex listing, relative to the config file.
	Expected string `yaml:"expected"`
}

type Config struct {
	AssignmentName  string                    `yaml:"assignmentName"`
	StudentCodePath string                    `yaml:"studentCodePath"`
	ResultsPath     string                    `yaml:"resultsPath"`
	TestCases       []TestCase                `yaml:"testCases"`
	AssemblyPoints  int                       `yaml:"assemblyPoints"` // awarded when every source assembles cleanly
	Assembler       assembler.AssemblerConfig `yaml:"assembler"`

	dir string
}

// LoadConfig reads an autograder config. JSON configs load too since yaml.v3
// accepts them.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read autograder config: %w", err)
	}

	conf := &Config{
		ResultsPath: "results/results.json",
		Assembler:   assembler.DefaultConfig(),
	}
	if err := yaml.Unmarshal(b, conf); err != nil {
		return nil, fmt.Errorf("failed to parse autograder config %s: %w", path, err)
	}
	if len(conf.TestCases) == 0 {
		return nil, fmt.Errorf("autograder config %s has no test cases", path)
	}
	for i, tc := range conf.TestCases {
		if tc.Source == "" || tc.Expected == "" {
			return nil, fmt.Errorf("test case %d (%s) needs both a source and an expected listing", i, tc.Name)
		}
		if tc.Visibility == "" {
			conf.TestCases[i].Visibility = "visible"
		}
	}
	conf.dir = filepath.Dir(path)
	return conf, nil
}

func (c *Config) expectedPath(tc TestCase) string {
	if filepath.IsAbs(tc.Expected) {
		return tc.Expected
	}
	return filepath.Join(c.dir, tc.Expected)
}

func (c *Config) sourcePath(tc TestCase) string {
	if filepath.IsAbs(tc.Source) {
		return tc.Source
	}
	return filepath.Join(c.StudentCodePath, tc.Source)
}
