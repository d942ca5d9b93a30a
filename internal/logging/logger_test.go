package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func resetState() {
	CloseAll()
	CloseAudit()
	loggers = make(map[Category]*Logger)
	logsDir = ""
	jsonFormat = false
	logLevel = LevelInfo
}

// TestAllCategoriesLog tests that all categories create log files
func TestAllCategoriesLog(t *testing.T) {
	tempDir := t.TempDir()

	resetState()
	if err := Initialize(tempDir, "debug", false); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	categories := []Category{
		CategoryBoot,
		CategoryServer,
		CategoryVision,
		CategoryVLM,
		CategoryPipeline,
		CategoryAnalysis,
		CategoryHealth,
		CategoryStore,
		CategoryExport,
	}

	for _, cat := range categories {
		logger := Get(cat)
		logger.Info("Test info message for %s", cat)
		logger.Debug("Test debug message for %s", cat)
		logger.Warn("Test warn message for %s", cat)
		logger.Error("Test error message for %s", cat)
	}

	// Also test convenience functions
	Boot("Convenience boot log")
	Server("Convenience server log")
	Vision("Convenience vision log")
	VLM("Convenience vlm log")
	Pipeline("Convenience pipeline log")
	Analysis("Convenience analysis log")
	Health("Convenience health log")
	Store("Convenience store log")
	Export("Convenience export log")

	// Close all loggers to flush
	CloseAll()

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("Failed to read logs dir: %v", err)
	}

	for _, cat := range categories {
		found := false
		for _, entry := range entries {
			if strings.Contains(entry.Name(), string(cat)+".log") {
				found = true
				content, err := os.ReadFile(filepath.Join(tempDir, entry.Name()))
				if err != nil {
					t.Errorf("Failed to read log file for %s: %v", cat, err)
					continue
				}
				if len(content) == 0 {
					t.Errorf("Log file for %s is empty", cat)
				}
				break
			}
		}
		if !found {
			t.Errorf("No log file found for category: %s", cat)
		}
	}
}

// TestDisabledLogging tests that no logs are created without Initialize
func TestDisabledLogging(t *testing.T) {
	resetState()

	if Enabled() {
		t.Error("Expected logging to be disabled before Initialize")
	}

	// Should all be silent no-ops
	Boot("This should NOT be logged")
	Vision("This should NOT be logged")

	logger := Get(CategoryPipeline)
	logger.Info("This should NOT be logged")
	logger.Error("This should NOT be logged")

	if len(loggers) != 0 {
		t.Errorf("Expected no loggers created, got %d", len(loggers))
	}
}

// TestEmptyDirIsNoOp tests Initialize with an empty dir
func TestEmptyDirIsNoOp(t *testing.T) {
	resetState()

	if err := Initialize("", "debug", false); err != nil {
		t.Fatalf("Initialize with empty dir should not error: %v", err)
	}
	if Enabled() {
		t.Error("Empty dir should leave logging disabled")
	}
}

// TestLevelGate tests that messages below the level are dropped
func TestLevelGate(t *testing.T) {
	tempDir := t.TempDir()

	resetState()
	if err := Initialize(tempDir, "error", false); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	VisionDebug("dropped")
	Vision("dropped")
	VisionError("kept")

	CloseAll()

	entries, _ := os.ReadDir(tempDir)
	for _, e := range entries {
		if !strings.Contains(e.Name(), "vision") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(tempDir, e.Name()))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if strings.Contains(string(content), "dropped") {
			t.Error("Expected info/debug lines to be dropped at error level")
		}
		if !strings.Contains(string(content), "kept") {
			t.Error("Expected error line to be written")
		}
	}
}

// TestJSONFormat tests structured line output
func TestJSONFormat(t *testing.T) {
	tempDir := t.TempDir()

	resetState()
	if err := Initialize(tempDir, "info", true); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	Health("scored %d", 85)
	CloseAll()

	entries, _ := os.ReadDir(tempDir)
	for _, e := range entries {
		if !strings.Contains(e.Name(), "health") {
			continue
		}
		content, _ := os.ReadFile(filepath.Join(tempDir, e.Name()))
		if !strings.Contains(string(content), `"cat":"health"`) {
			t.Errorf("Expected JSON log line, got: %s", content)
		}
	}
}

// TestRequestLogger tests correlation-ID logging
func TestRequestLogger(t *testing.T) {
	tempDir := t.TempDir()

	resetState()
	if err := Initialize(tempDir, "debug", false); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	rl := WithRequestID(CategoryServer, "req-123").WithField("file", "panel.jpg")
	rl.Info("analysis accepted")
	CloseAll()

	entries, _ := os.ReadDir(tempDir)
	for _, e := range entries {
		if !strings.Contains(e.Name(), "server") {
			continue
		}
		content, _ := os.ReadFile(filepath.Join(tempDir, e.Name()))
		if !strings.Contains(string(content), "req:req-123") {
			t.Errorf("Expected request ID in log line, got: %s", content)
		}
	}
}

// TestTimerLogging tests the timing helper
func TestTimerLogging(t *testing.T) {
	tempDir := t.TempDir()

	resetState()
	Initialize(tempDir, "debug", false)

	timer := StartTimer(CategoryPipeline, "TestOperation")
	time.Sleep(time.Millisecond)
	elapsed := timer.Stop()

	if elapsed <= 0 {
		t.Error("Timer should have recorded non-zero duration")
	}

	CloseAll()
}
