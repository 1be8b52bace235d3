package config

import "sort"

// Presets are common action spaces. Only the action space differs; every
// other setting keeps its default.
var Presets = map[string]ActionSpaceConfig{
	"default":  {MaxSpeed: 2.0, MaxSteer: 30.0},
	"sprint":   {MaxSpeed: 4.0, MaxSteer: 30.0},
	"cautious": {MaxSpeed: 1.0, MaxSteer: 30.0},
	"narrow":   {MaxSpeed: 2.0, MaxSteer: 15.0},
}

func GetPreset(name string) *Config {
	as, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.ActionSpace = as
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
