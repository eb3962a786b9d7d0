package command

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/delaneyj/compbench/bench"
	"github.com/delaneyj/compbench/registry"
)

// runConfig is the file form of a benchmark run. Command line flags that are
// set explicitly override values read from the file.
type runConfig struct {
	bench.Config `yaml:",inline"`

	Algorithms    []registry.Selection `json:"algorithms,omitempty" yaml:"algorithms,omitempty"`
	Dictionary    string               `json:"dictionary,omitempty" yaml:"dictionary,omitempty"`
	DictionaryLen int                  `json:"dictionaryLen,omitempty" yaml:"dictionaryLen,omitempty"`
	Report        string               `json:"report,omitempty" yaml:"report,omitempty"`
	Human         bool                 `json:"human,omitempty" yaml:"human,omitempty"`
	GoBench       bool                 `json:"goBench,omitempty" yaml:"goBench,omitempty"`
}

func loadRunConfig(path string) (runConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runConfig{}, err
	}
	var cfg runConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return runConfig{}, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return runConfig{}, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			if err := json.Unmarshal(data, &cfg); err != nil {
				return runConfig{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	return cfg, nil
}
