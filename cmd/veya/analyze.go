package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nitin85058/VEYA/internal/export"
	"github.com/nitin85058/VEYA/internal/health"
	"github.com/nitin85058/VEYA/internal/imaging"
	"github.com/nitin85058/VEYA/internal/types"
)

var (
	analyzeJSON bool
	analyzeOut  string
)

// analyzeCmd runs the pipeline from the terminal
var analyzeCmd = &cobra.Command{
	Use:   "analyze [image]...",
	Short: "Analyze equipment photos from the terminal",
	Long: `Runs the full analysis pipeline on one or more image files and renders
the results in the terminal. With two or more images a fleet comparison
is appended.

Examples:
  veya analyze transformer.jpg
  veya analyze --json panel.png > panel.json
  veya analyze --out reports/ ups1.jpg ups2.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the full analysis as JSON")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write JSON and text reports into this directory")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	runner, _, model, err := buildRunner()
	if err != nil {
		return err
	}
	defer closeClient(model)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	var analyses []*types.Analysis
	for _, path := range args {
		name := filepath.Base(path)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := imaging.ValidateName(name); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := imaging.Validate(data, cfg.MaxUploadBytes()); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if !analyzeJSON {
			fmt.Println(mutedStyle.Render("Analyzing " + name + "..."))
		}

		a, err := runner.Run(ctx, name, data)
		if err != nil {
			return fmt.Errorf("analysis of %s failed: %w", path, err)
		}
		analyses = append(analyses, a)

		if analyzeJSON {
			report, err := export.JSONReport(a)
			if err != nil {
				return err
			}
			fmt.Println(string(report))
		} else {
			fmt.Println(renderAnalysis(a))
		}

		if analyzeOut != "" {
			if err := writeReports(a); err != nil {
				return err
			}
		}
	}

	if len(analyses) >= 2 && !analyzeJSON {
		fmt.Println(renderFleet(health.Fleet(analyses)))
	}
	return nil
}

func writeReports(a *types.Analysis) error {
	if err := os.MkdirAll(analyzeOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	jsonData, err := export.JSONReport(a)
	if err != nil {
		return err
	}
	jsonPath := filepath.Join(analyzeOut, export.JSONFilename(a))
	if err := os.WriteFile(jsonPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", jsonPath, err)
	}

	textPath := filepath.Join(analyzeOut, export.TextFilename(a))
	if err := os.WriteFile(textPath, []byte(export.TextReport(a)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", textPath, err)
	}

	fmt.Println(mutedStyle.Render("Reports written to " + analyzeOut))
	return nil
}

// Terminal styles

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return goodStyle
	case score >= 40:
		return warnStyle
	default:
		return badStyle
	}
}

// renderScoreBar creates a text-based health bar
func renderScoreBar(score, width int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score * width / 100
	bar := scoreStyle(score).Render(strings.Repeat("#", filled)) +
		mutedStyle.Render(strings.Repeat(".", width-filled))
	return "[" + bar + "]"
}

func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return labelStyle.Render(label) + value
}

func renderAnalysis(a *types.Analysis) string {
	var lines []string

	lines = append(lines,
		titleStyle.Render(a.Category)+mutedStyle.Render("  "+a.Filename),
		"",
		field("Manufacturer", a.Record.Manufacturer),
		field("Model", a.Record.ModelNumber),
		field("Serial", a.Record.SerialNumber),
		field("Condition", a.Record.Condition),
		field("Status", a.Record.OperationalStatus),
	)

	specs := a.Record.Specifications
	if !specs.Empty() {
		lines = append(lines, "",
			field("Voltage", specs.Voltage),
			field("Current", specs.Current),
			field("Frequency", specs.Frequency),
			field("Power", specs.PowerRating),
			field("Temp range", specs.TemperatureRange),
		)
	}

	if len(a.Record.ComplianceMarks) > 0 {
		lines = append(lines, "", field("Compliance", strings.Join(a.Record.ComplianceMarks, ", ")))
	}
	if a.Record.AgeEstimate != "" {
		lines = append(lines, field("Age estimate", a.Record.AgeEstimate))
	}

	scoreLine := fmt.Sprintf("%s %s %d%%  %s (%s risk)",
		labelStyle.Render("Health"),
		renderScoreBar(a.Health.Score, 20),
		a.Health.Score,
		scoreStyle(a.Health.Score).Render(a.Health.Status),
		a.Health.RiskLevel)
	lines = append(lines, "", scoreLine)

	if len(a.Damages) > 0 {
		lines = append(lines, field("Damage", strings.Join(a.Damages, ", ")))
	}
	for _, d := range a.Health.Breakdown {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  -%d  %s", d.Points, d.Label)))
	}

	lines = append(lines, "",
		field("Action", a.Health.Action),
		field("Maintenance", a.Health.MaintenanceSchedule),
		field("Lifespan", a.Health.EstimatedLifespan),
		field("Repair cost", a.Health.CostBand),
	)

	if len(a.Health.Recommendations) > 0 {
		lines = append(lines, "", titleStyle.Render("Recommendations"))
		for _, rec := range a.Health.Recommendations {
			lines = append(lines, "  - "+rec)
		}
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderFleet(fleet health.FleetComparison) string {
	var lines []string
	lines = append(lines, titleStyle.Render("Fleet comparison"), "")

	for i, entry := range fleet.Ranking {
		lines = append(lines, fmt.Sprintf("%d. %s %3d%%  %s (%s)",
			i+1,
			renderScoreBar(entry.Score, 12),
			entry.Score,
			entry.Filename,
			entry.Category))
	}

	s := fleet.Summary
	lines = append(lines, "", mutedStyle.Render(fmt.Sprintf(
		"average %.1f%%  healthy %d  needs attention %d  critical %d",
		s.AverageScore, s.HealthyCount, s.NeedsAttentionCount, s.CriticalCount)))

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
