/*
Package rules provides configuration-to-Go rule-set conversion.

PURPOSE:
  Converts YAML/JSON rule-set definitions into schedule.Rules. The engine
  enforces one concrete, auditable rule set at a time; this package is what
  makes that rule set replaceable without code changes - operators pick a
  preset or ship a config file, and the factory builds the proper struct.

SCHEMA (YAML, JSON works identically):
  preset: eu-working-time        # optional base preset
  min_daily_rest_hours: 11
  min_weekly_rest_hours: 35
  max_avg_weekly_hours: 48
  max_daily_hours: 12

  Explicit fields override the preset's numbers. Omitted fields keep the
  preset (or default) value.

PRESETS:
  eu-working-time: 11 / 35 / 48 / 12 (the stock schedule.DefaultRules)
  lenient:          8 / 24 / 60 / 14

USAGE:
  rules, err := rules.LoadFile("rules.yaml")
  validator := schedule.NewValidator(rules)

SEE ALSO:
  - schedule/compliance.go: the validator consuming the rule set
*/
package rules

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/warp/schedule-engine/schedule"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIG SCHEMA
// =============================================================================

// Config is the serialized representation of a rule set. Pointer fields
// distinguish "omitted" from an explicit zero.
type Config struct {
	Preset             string   `yaml:"preset,omitempty" json:"preset,omitempty"`
	MinDailyRestHours  *float64 `yaml:"min_daily_rest_hours,omitempty" json:"min_daily_rest_hours,omitempty"`
	MinWeeklyRestHours *float64 `yaml:"min_weekly_rest_hours,omitempty" json:"min_weekly_rest_hours,omitempty"`
	MaxAvgWeeklyHours  *float64 `yaml:"max_avg_weekly_hours,omitempty" json:"max_avg_weekly_hours,omitempty"`
	MaxDailyHours      *float64 `yaml:"max_daily_hours,omitempty" json:"max_daily_hours,omitempty"`
}

// =============================================================================
// PRESETS
// =============================================================================

const (
	PresetEUWorkingTime = "eu-working-time"
	PresetLenient       = "lenient"
)

func presetRules(name string) (schedule.Rules, error) {
	switch name {
	case "", PresetEUWorkingTime:
		return schedule.DefaultRules(), nil
	case PresetLenient:
		return schedule.Rules{
			MinDailyRestHours:  decimal.NewFromInt(8),
			MinWeeklyRestHours: decimal.NewFromInt(24),
			MaxAvgWeeklyHours:  decimal.NewFromInt(60),
			MaxDailyHours:      decimal.NewFromInt(14),
		}, nil
	default:
		return schedule.Rules{}, fmt.Errorf("unknown rule preset %q", name)
	}
}

// =============================================================================
// FACTORY
// =============================================================================

// FromConfig builds a rule set: preset (or defaults) plus explicit overrides.
func FromConfig(cfg Config) (schedule.Rules, error) {
	rules, err := presetRules(cfg.Preset)
	if err != nil {
		return schedule.Rules{}, err
	}

	apply := func(target *decimal.Decimal, value *float64, field string) error {
		if value == nil {
			return nil
		}
		if *value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", field, *value)
		}
		*target = decimal.NewFromFloat(*value)
		return nil
	}

	if err := apply(&rules.MinDailyRestHours, cfg.MinDailyRestHours, "min_daily_rest_hours"); err != nil {
		return schedule.Rules{}, err
	}
	if err := apply(&rules.MinWeeklyRestHours, cfg.MinWeeklyRestHours, "min_weekly_rest_hours"); err != nil {
		return schedule.Rules{}, err
	}
	if err := apply(&rules.MaxAvgWeeklyHours, cfg.MaxAvgWeeklyHours, "max_avg_weekly_hours"); err != nil {
		return schedule.Rules{}, err
	}
	if err := apply(&rules.MaxDailyHours, cfg.MaxDailyHours, "max_daily_hours"); err != nil {
		return schedule.Rules{}, err
	}

	return rules, nil
}

// Parse decodes a YAML (or JSON, which YAML is a superset of) document into
// a rule set.
func Parse(data []byte) (schedule.Rules, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return schedule.Rules{}, fmt.Errorf("failed to parse rule config: %w", err)
	}
	return FromConfig(cfg)
}

// LoadFile reads and parses a rule-set file. An empty path yields the
// default rule set.
func LoadFile(path string) (schedule.Rules, error) {
	if path == "" {
		return schedule.DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schedule.Rules{}, fmt.Errorf("failed to read rule config %s: %w", path, err)
	}
	return Parse(data)
}
