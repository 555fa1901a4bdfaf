package report

import "github.com/zjy-dev/fuzz-triage/internal/classify"

// Issue is the terminal artifact of the triage pipeline: a structured
// bug-report record ready for an external sink to file.
type Issue struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Severity classify.Severity `json:"severity"`
	Category string            `json:"crash_type"`
	Labels   []string          `json:"labels"`
}

// priorityLabels maps every severity tier to exactly one priority label.
var priorityLabels = map[classify.Severity]string{
	classify.SeverityCritical: "P0",
	classify.SeverityHigh:     "P1",
	classify.SeverityMedium:   "P2",
	classify.SeverityLow:      "P3",
}

// PriorityLabel returns the priority label for a severity. The mapping
// is total; unrecognized severities fall back to P2, the same tier an
// unclassified crash gets.
func PriorityLabel(severity classify.Severity) string {
	if label, ok := priorityLabels[severity]; ok {
		return label
	}
	return "P2"
}

// LabelsFor derives the label set for a severity: always bug, fuzzing
// and the priority label; security is added for high and critical.
func LabelsFor(severity classify.Severity) []string {
	labels := []string{"bug", "fuzzing", PriorityLabel(severity)}
	if severity == classify.SeverityHigh || severity == classify.SeverityCritical {
		labels = append(labels, "security")
	}
	return labels
}
