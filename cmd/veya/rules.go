package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nitin85058/VEYA/internal/health"
)

// rulesCmd prints the effective scoring rules
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective scoring rules as YAML",
	Long: `Prints the scoring rules the analyzer is using: the built-in defaults
merged with any overrides from the configured rules file. The output is
valid input for health.rules_path, so it doubles as a starting point for
a custom rules file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := health.LoadRules(cfg.Health.RulesPath)
		if err != nil {
			return fmt.Errorf("failed to load scoring rules: %w", err)
		}

		out, err := yaml.Marshal(rules)
		if err != nil {
			return fmt.Errorf("failed to render rules: %w", err)
		}

		if cfg.Health.RulesPath != "" {
			fmt.Printf("# rules: defaults + %s\n", cfg.Health.RulesPath)
		} else {
			fmt.Println("# rules: built-in defaults")
		}
		fmt.Print(string(out))
		return nil
	},
}
