// Package trace extracts a bounded, best-effort excerpt of the call
// trace from crash diagnostic text.
package trace

import "strings"

const (
	// MaxFrameLines caps how many trace lines are collected, so a report
	// stays readable even for recursive-overflow dumps with thousands of
	// frames.
	MaxFrameLines = 20

	// MaxTailLines caps the fallback excerpt taken when no trace start
	// is found.
	MaxTailLines = 10

	backtraceMarker = "stack backtrace:"
)

// isFrameLine reports whether a line looks like a backtrace frame: a
// frame location ("at src/..."), a namespaced symbol ("core::ptr::..."),
// or a symbol of the project under test identified by symbolToken.
func isFrameLine(line, symbolToken string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "at ") || strings.Contains(trimmed, "::") {
		return true
	}
	return symbolToken != "" && strings.Contains(trimmed, symbolToken)
}

// Extract scans diagnostic text for a call-trace excerpt. It returns at
// most MaxFrameLines frame lines starting at the first line that looks
// like the beginning of a backtrace. When no trace start is found it
// falls back to the last MaxTailLines non-empty lines as a diagnostic
// tail. A nil result means the text had nothing to excerpt.
func Extract(diagnosticText, symbolToken string) []string {
	lines := strings.Split(diagnosticText, "\n")

	start := -1
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), backtraceMarker) || isFrameLine(line, symbolToken) {
			start = i
			break
		}
	}

	if start >= 0 {
		var frames []string
		for _, line := range lines[start:] {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				if len(frames) > 0 {
					// Blank line after the trace started marks its end.
					break
				}
				continue
			}
			if isFrameLine(trimmed, symbolToken) {
				frames = append(frames, trimmed)
				if len(frames) >= MaxFrameLines {
					break
				}
			}
		}
		if len(frames) > 0 {
			return frames
		}
	}

	return tail(lines)
}

// tail returns the last MaxTailLines non-empty trimmed lines.
func tail(lines []string) []string {
	var nonEmpty []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			nonEmpty = append(nonEmpty, trimmed)
		}
	}
	if len(nonEmpty) > MaxTailLines {
		nonEmpty = nonEmpty[len(nonEmpty)-MaxTailLines:]
	}
	if len(nonEmpty) == 0 {
		return nil
	}
	return nonEmpty
}
