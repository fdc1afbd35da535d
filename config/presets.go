package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Dosada05/hackathon-platform/models"
)

// JudgingPresets maps a preset name ("default", "ai-track"...) to its criteria.
type JudgingPresets map[string][]models.JudgingCriterion

type presetsFile struct {
	Presets map[string][]models.JudgingCriterion `yaml:"presets"`
}

// LoadJudgingPresets reads named criteria sets an organizer can pick from when
// creating a hackathon. A missing file yields an empty set.
func LoadJudgingPresets(path string) (JudgingPresets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return JudgingPresets{}, nil
		}
		return nil, fmt.Errorf("read judging presets %s: %w", path, err)
	}
	return ParseJudgingPresets(data)
}

func ParseJudgingPresets(data []byte) (JudgingPresets, error) {
	var f presetsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse judging presets: %w", err)
	}
	out := make(JudgingPresets, len(f.Presets))
	for name, criteria := range f.Presets {
		seen := make(map[string]bool, len(criteria))
		for i, c := range criteria {
			if c.Name == "" {
				return nil, fmt.Errorf("preset %q: criterion #%d has no name", name, i+1)
			}
			if seen[c.Name] {
				return nil, fmt.Errorf("preset %q: duplicate criterion %q", name, c.Name)
			}
			seen[c.Name] = true
			if c.Weight <= 0 {
				criteria[i].Weight = 1
			}
		}
		out[name] = criteria
	}
	return out, nil
}

// Get returns a copy of the named preset.
func (p JudgingPresets) Get(name string) ([]models.JudgingCriterion, bool) {
	criteria, ok := p[name]
	if !ok {
		return nil, false
	}
	return append([]models.JudgingCriterion(nil), criteria...), true
}

func (p JudgingPresets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
