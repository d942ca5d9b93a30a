// Package health scores analyzed equipment and derives the maintenance
// assessment: status bands, schedules, lifespan and cost estimates,
// recommendations, the simulated degradation trend, and fleet comparison.
// The penalty tables are tunable through a YAML rules file that can be
// hot-reloaded while the server runs.
package health

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// DamagePenalty maps a damage keyword to its score deduction. Order
// matters: the first keyword contained in an observation wins.
type DamagePenalty struct {
	Keyword string `yaml:"keyword" json:"keyword"`
	Points  int    `yaml:"points" json:"points"`
}

// Rules holds the tunable scoring tables.
type Rules struct {
	DamagePenalties      []DamagePenalty `yaml:"damage_penalties" json:"damage_penalties"`
	UnknownDamagePenalty int             `yaml:"unknown_damage_penalty" json:"unknown_damage_penalty"`
	PoorConditionPenalty int             `yaml:"poor_condition_penalty" json:"poor_condition_penalty"`
	FairConditionPenalty int             `yaml:"fair_condition_penalty" json:"fair_condition_penalty"`
	NonFunctionalPenalty int             `yaml:"non_functional_penalty" json:"non_functional_penalty"`
	LimitedPenalty       int             `yaml:"limited_penalty" json:"limited_penalty"`
	OldAgePenalty        int             `yaml:"old_age_penalty" json:"old_age_penalty"`
}

// DefaultRules returns the built-in penalty tables.
func DefaultRules() Rules {
	return Rules{
		DamagePenalties: []DamagePenalty{
			{Keyword: "burn marks", Points: 25},
			{Keyword: "scorch marks", Points: 20},
			{Keyword: "corrosion", Points: 15},
			{Keyword: "rust", Points: 15},
			{Keyword: "broken display", Points: 20},
			{Keyword: "overheating", Points: 30},
			{Keyword: "loose wires", Points: 10},
			{Keyword: "water damage", Points: 40},
			{Keyword: "mechanical damage", Points: 20},
			{Keyword: "missing components", Points: 25},
		},
		UnknownDamagePenalty: 10,
		PoorConditionPenalty: 20,
		FairConditionPenalty: 10,
		NonFunctionalPenalty: 30,
		LimitedPenalty:       15,
		OldAgePenalty:        10,
	}
}

// LoadRules reads a YAML rules file. A missing path returns the defaults;
// a present but unreadable or invalid file returns an error so callers
// never score with a half-applied table.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRules(), nil
		}
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	rules := DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate checks the rule tables for values scoring cannot work with.
func (r Rules) Validate() error {
	for i, p := range r.DamagePenalties {
		if p.Keyword == "" {
			return fmt.Errorf("damage penalty %d has an empty keyword", i)
		}
		if p.Points < 0 {
			return fmt.Errorf("damage penalty %q has negative points: %d", p.Keyword, p.Points)
		}
	}
	if r.UnknownDamagePenalty < 0 {
		return fmt.Errorf("unknown_damage_penalty must not be negative: %d", r.UnknownDamagePenalty)
	}
	if r.PoorConditionPenalty < 0 || r.FairConditionPenalty < 0 {
		return fmt.Errorf("condition penalties must not be negative")
	}
	if r.NonFunctionalPenalty < 0 || r.LimitedPenalty < 0 {
		return fmt.Errorf("operational penalties must not be negative")
	}
	if r.OldAgePenalty < 0 {
		return fmt.Errorf("old_age_penalty must not be negative: %d", r.OldAgePenalty)
	}
	return nil
}

// ActiveRules is the rule table currently in force. The watcher swaps it
// atomically on hot reload; readers always see a complete table.
type ActiveRules struct {
	mu    sync.RWMutex
	rules Rules
}

// NewActiveRules wraps an initial rule table.
func NewActiveRules(rules Rules) *ActiveRules {
	return &ActiveRules{rules: rules}
}

// Current returns the rules in force.
func (a *ActiveRules) Current() Rules {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rules
}

// Swap replaces the rules in force.
func (a *ActiveRules) Swap(rules Rules) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rules = rules
}
