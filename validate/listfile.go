package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"chesttrack/match"
)

// ListSpec is the YAML file form of one validation list.
type ListSpec struct {
	Type      string   `yaml:"type"`
	Fuzzy     bool     `yaml:"fuzzy,omitempty"`
	Threshold float64  `yaml:"threshold,omitempty"`
	Entries   []string `yaml:"entries"`
}

// LoadListsFile reads validation lists from a YAML file keyed by list name.
func LoadListsFile(path string, logger *zap.SugaredLogger) (map[string]*List, error) {
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return nil, fmt.Errorf("invalid file path: path traversal detected")
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read validation lists file: %w", err)
	}

	var specs map[string]ListSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to parse validation lists YAML: %w", err)
	}

	lists := make(map[string]*List, len(specs))
	for name, spec := range specs {
		l := NewList(ParseListType(spec.Type), name, spec.Entries, logger)
		l.UseFuzzy = spec.Fuzzy
		if spec.Threshold > 0 {
			l.UpdateFuzzyThreshold(spec.Threshold)
		}
		lists[name] = l
	}
	return lists, nil
}

// SaveListsFile writes validation lists to a YAML file keyed by list name.
func SaveListsFile(path string, lists map[string]*List) error {
	specs := make(map[string]ListSpec, len(lists))
	for name, l := range lists {
		spec := ListSpec{
			Type:    l.Type.String(),
			Fuzzy:   l.UseFuzzy,
			Entries: l.Entries(),
		}
		if l.Threshold() != match.DefaultThreshold {
			spec.Threshold = l.Threshold()
		}
		specs[name] = spec
	}

	data, err := yaml.Marshal(specs)
	if err != nil {
		return fmt.Errorf("failed to marshal validation lists to YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write validation lists file: %w", err)
	}
	return nil
}
