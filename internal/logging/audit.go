package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AuditEventType identifies the kind of session event being recorded.
type AuditEventType string

const (
	// Analysis lifecycle
	AuditAnalysisCreated AuditEventType = "analysis_created"
	AuditAnalysisFailed  AuditEventType = "analysis_failed"
	AuditAnalysisDeleted AuditEventType = "analysis_deleted"
	AuditSessionCleared  AuditEventType = "session_cleared"

	// Report downloads
	AuditReportExported AuditEventType = "report_exported"

	// Scoring rules file
	AuditRulesReloaded AuditEventType = "rules_reloaded"
	AuditRulesRejected AuditEventType = "rules_rejected"
)

// AuditEvent is one line of the session audit trail, written as JSON.
type AuditEvent struct {
	Timestamp  int64          `json:"ts"`       // Unix milliseconds
	EventType  AuditEventType `json:"event"`    // What happened
	AnalysisID string         `json:"id"`       // Analysis correlation
	Filename   string         `json:"filename"` // Image or rules file name
	Category   string         `json:"category"` // Equipment category
	Score      int            `json:"score"`    // Health score at event time
	Count      int            `json:"count"`    // Affected items for bulk events
	Success    bool           `json:"success"`  // Operation succeeded
	Error      string         `json:"error"`    // Failure detail
}

var (
	auditFile *os.File
	auditMu   sync.Mutex
)

// InitAudit opens the session audit trail in the logs directory. A no-op
// when file logging is disabled.
func InitAudit() error {
	if !Enabled() {
		return nil
	}

	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile != nil {
		return nil // Already initialized
	}

	date := time.Now().Format("2006-01-02")
	auditPath := filepath.Join(logsDir, fmt.Sprintf("%s_audit.log", date))

	file, err := os.OpenFile(auditPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	auditFile = file

	header := fmt.Sprintf("# Audit trail started at %s\n", time.Now().Format(time.RFC3339))
	auditFile.WriteString(header)

	return nil
}

// CloseAudit closes the audit trail file (call at shutdown).
func CloseAudit() {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile != nil {
		auditFile.Close()
		auditFile = nil
	}
}

// WriteAudit appends one event to the audit trail. Events are dropped
// silently when the trail is not open.
func WriteAudit(event AuditEvent) {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile == nil {
		return
	}

	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	auditFile.WriteString(string(data) + "\n")
}

// =============================================================================
// TYPED EVENT HELPERS
// =============================================================================

// AuditCreated records a completed analysis entering the session store.
func AuditCreated(id, filename, category string, score int) {
	WriteAudit(AuditEvent{
		EventType:  AuditAnalysisCreated,
		AnalysisID: id,
		Filename:   filename,
		Category:   category,
		Score:      score,
		Success:    true,
	})
}

// AuditFailed records an upload whose analysis did not complete.
func AuditFailed(filename string, err error) {
	event := AuditEvent{
		EventType: AuditAnalysisFailed,
		Filename:  filename,
	}
	if err != nil {
		event.Error = err.Error()
	}
	WriteAudit(event)
}

// AuditDeleted records removal of a single analysis from the session.
func AuditDeleted(id string) {
	WriteAudit(AuditEvent{
		EventType:  AuditAnalysisDeleted,
		AnalysisID: id,
		Success:    true,
	})
}

// AuditCleared records a full session wipe.
func AuditCleared(count int) {
	WriteAudit(AuditEvent{
		EventType: AuditSessionCleared,
		Count:     count,
		Success:   true,
	})
}

// AuditExported records a report download. filename is the name offered
// to the client, which also carries the format.
func AuditExported(id, filename string) {
	WriteAudit(AuditEvent{
		EventType:  AuditReportExported,
		AnalysisID: id,
		Filename:   filename,
		Success:    true,
	})
}

// AuditRulesLoaded records a successful live reload of the scoring rules.
func AuditRulesLoaded(path string, penalties int) {
	WriteAudit(AuditEvent{
		EventType: AuditRulesReloaded,
		Filename:  path,
		Count:     penalties,
		Success:   true,
	})
}

// AuditRulesFailed records a rules file edit that could not be applied.
func AuditRulesFailed(path string, err error) {
	event := AuditEvent{
		EventType: AuditRulesRejected,
		Filename:  path,
	}
	if err != nil {
		event.Error = err.Error()
	}
	WriteAudit(event)
}
