package moveset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preset is a named move set stored as a YAML document.
//
// Precondition: ID must be non-empty after loading.
type Preset struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Moves       []string `yaml:"moves"`
}

// MoveSet validates the preset's moves.
//
// Postcondition: Returns a valid MoveSet or an error naming the preset.
func (p *Preset) MoveSet() (MoveSet, error) {
	ms, err := New(p.Moves)
	if err != nil {
		return MoveSet{}, fmt.Errorf("preset %q: %w", p.ID, err)
	}
	return ms, nil
}

// LoadPresets reads every .yaml/.yml file in dir and parses each as a Preset.
// Presets are returned keyed by ID. Move lists are not validated here;
// callers validate the one they select via Preset.MoveSet.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed presets or a non-nil error on read, parse,
// missing ID, or duplicate ID.
func LoadPresets(dir string) (map[string]*Preset, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	presets := make(map[string]*Preset, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var p Preset
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing preset file %s: %w", path, err)
		}
		if p.ID == "" {
			return nil, fmt.Errorf("preset file %s: id must not be empty", path)
		}
		if _, dup := presets[p.ID]; dup {
			return nil, fmt.Errorf("preset file %s: duplicate id %q", path, p.ID)
		}
		presets[p.ID] = &p
	}
	return presets, nil
}

// PresetIDs returns the IDs of presets in sorted order.
func PresetIDs(presets map[string]*Preset) []string {
	ids := make([]string, 0, len(presets))
	for id := range presets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
