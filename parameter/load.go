package parameter

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads a TOML override file on top of the variant preset
// A missing 'variant' key keeps the preset; unknown keys are rejected
func Load(path string, variant Variant) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read tuning file: %w", err)
	}
	return Parse(data, variant)
}

// Parse applies TOML overrides to the preset of the requested variant
func Parse(data []byte, variant Variant) (Tuning, error) {
	// Peek the variant first so overrides layer on the right preset
	var head struct {
		Variant Variant `toml:"variant"`
	}
	if _, err := toml.Decode(string(data), &head); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if head.Variant != "" {
		variant = head.Variant
	}

	t := ForVariant(variant)
	if !variant.Known() {
		t.Variant = variant // surfaced by Validate
	}

	md, err := toml.Decode(string(data), &t)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Tuning{}, fmt.Errorf("unknown tuning keys: %s", strings.Join(keys, ", "))
	}

	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid tuning: %w", err)
	}
	return t, nil
}
