package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Selection picks an algorithm and, optionally, the levels to benchmark.
// In configuration files it is either a bare algorithm name or an object.
type Selection struct {
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Levels    []int  `json:"levels,omitempty" yaml:"levels,omitempty"`
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	type alias Selection
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*s = Selection{Algorithm: name}
		return nil
	}
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Selection(aux)
	return nil
}

func (s *Selection) UnmarshalYAML(node *yaml.Node) error {
	type alias Selection
	if node.Kind == yaml.ScalarNode {
		*s = Selection{Algorithm: node.Value}
		return nil
	}
	var aux alias
	if err := node.Decode(&aux); err != nil {
		return err
	}
	*s = Selection(aux)
	return nil
}

// ParseSelections parses the command line form "zstd,lz4:1:9,brotli".
// Levels after a colon override the catalog levels.
func ParseSelections(list []string) ([]Selection, error) {
	var out []Selection
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		sel := Selection{Algorithm: parts[0]}
		for _, p := range parts[1:] {
			level, err := strconv.Atoi(p)
			if err != nil {
				return nil, fmt.Errorf("%w: %q in %q", ErrInvalidLevel, p, item)
			}
			sel.Levels = append(sel.Levels, level)
		}
		out = append(out, sel)
	}
	return out, nil
}
