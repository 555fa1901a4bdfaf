package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Reporter defines the interface for emitting synthesized issue records.
// Sinks are constructed explicitly by the caller; the synthesis core
// never reads process-wide configuration to decide where output goes.
type Reporter interface {
	Save(issue *Issue) error
}

// JSONReporter writes the issue record as indented JSON to a file.
type JSONReporter struct {
	path string
}

// NewJSONReporter creates a JSONReporter writing to path.
func NewJSONReporter(path string) *JSONReporter {
	return &JSONReporter{path: path}
}

// Save writes the issue as JSON, creating parent directories as needed.
func (r *JSONReporter) Save(issue *Issue) error {
	data, err := json.MarshalIndent(issue, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal issue: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	return os.WriteFile(r.path, data, 0644)
}

// ActionsReporter appends the issue record to a GitHub Actions output
// file in the workflow multiline-output format, so a later workflow step
// can file the issue.
type ActionsReporter struct {
	path string
}

// NewActionsReporter creates an ActionsReporter appending to path
// (typically the file a workflow exposes for step outputs).
func NewActionsReporter(path string) *ActionsReporter {
	return &ActionsReporter{path: path}
}

// Save appends issue_title, issue_body, issue_labels and severity
// entries to the output file.
func (r *ActionsReporter) Save(issue *Issue) error {
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open actions output file: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	fmt.Fprintf(&b, "issue_title<<EOF\n%s\nEOF\n", issue.Title)
	fmt.Fprintf(&b, "issue_body<<EOF\n%s\nEOF\n", issue.Body)
	fmt.Fprintf(&b, "issue_labels=%s\n", strings.Join(issue.Labels, ","))
	fmt.Fprintf(&b, "severity=%s\n", issue.Severity)

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to write actions output: %w", err)
	}
	return nil
}

// MarkdownReporter saves the rendered issue body as a markdown file in
// a report directory, one file per artifact fingerprint.
type MarkdownReporter struct {
	outputDir string
}

// NewMarkdownReporter creates a MarkdownReporter writing into outputDir.
func NewMarkdownReporter(outputDir string) *MarkdownReporter {
	return &MarkdownReporter{outputDir: outputDir}
}

// Save writes the issue title and body to crash_<fingerprint>.md. The
// fingerprint is recovered from the title, keeping Save deterministic
// for a given record.
func (r *MarkdownReporter) Save(issue *Issue) error {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	name := fmt.Sprintf("crash_%s.md", fingerprintFromTitle(issue.Title))
	path := filepath.Join(r.outputDir, name)

	content := fmt.Sprintf("# %s\n\n%s", issue.Title, issue.Body)
	return os.WriteFile(path, []byte(content), 0644)
}

// fingerprintFromTitle pulls the parenthesized short hash out of an
// issue title, falling back to "unknown" for malformed titles.
func fingerprintFromTitle(title string) string {
	start := strings.LastIndex(title, "(")
	end := strings.LastIndex(title, ")")
	if start >= 0 && end > start+1 {
		return title[start+1 : end]
	}
	return "unknown"
}
