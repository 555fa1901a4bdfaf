package conformance

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// suiteDescriptions maps suite names to human-readable descriptions.
// Unknown suites fall through to their raw name.
var suiteDescriptions = map[string]string{
	"suite1_core_slice_prod": "Core + Production + Slice Extensions",
	"suite2_core_prod_matl":  "Core + Production + Materials Extensions",
	"suite3_core":            "Core Specification (Basic)",
	"suite4_core_slice":      "Core + Slice Extension",
	"suite5_core_prod":       "Core + Production Extension",
	"suite6_core_matl":       "Core + Materials Extension",
	"suite7_beam":            "Beam Lattice Extension",
	"suite8_secure":          "Secure Content Extension",
	"suite9_core_ext":        "Core Extensions",
	"suite10_boolean":        "Boolean Operations Extension",
	"suite11_Displacement":   "Displacement Extension",
}

func describeSuite(name string) string {
	if desc, ok := suiteDescriptions[name]; ok {
		return desc
	}
	return name
}

// marker picks the status emoji for a passed/total pair.
func marker(passed, total int) string {
	switch {
	case passed == total:
		return "✅"
	case passed > 0:
		return "⚠️"
	default:
		return "❌"
	}
}

// sortedSuiteNames returns the suite names in stable order.
func sortedSuiteNames(r *Results) []string {
	names := make([]string, 0, len(r.Suites))
	for name := range r.Suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render produces the markdown conformance report. The timestamp is
// passed in by the caller so rendering stays deterministic.
func Render(r *Results, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("# 3MF Conformance Test Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", generatedAt.UTC().Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Overall Summary\n\n")
	if r.Overall != nil {
		fmt.Fprintf(&b, "**Overall Conformance:** %.1f%% (%d/%d tests passed)\n",
			r.Overall.Percentage, r.Overall.Passed, r.Overall.Total)
	}
	if r.Total != nil {
		pos, neg := r.Total.Positive, r.Total.Negative
		fmt.Fprintf(&b, "- **Positive Tests:** %d/%d passed (%.1f%%)\n", pos.Passed, pos.Total, pos.Rate())
		fmt.Fprintf(&b, "- **Negative Tests:** %d/%d passed (%.1f%%)\n", neg.Passed, neg.Total, neg.Rate())
	}
	b.WriteString("\n")

	b.WriteString("## Results by Test Suite\n\n")
	b.WriteString("| Suite | Description | Positive Tests | Negative Tests | Total |\n")
	b.WriteString("|-------|-------------|----------------|----------------|-------|\n")
	for _, name := range sortedSuiteNames(r) {
		stats := r.Suites[name]
		pos, neg := stats.Positive, stats.Negative
		totalPassed := pos.Passed + neg.Passed
		totalTests := pos.Total + neg.Total

		fmt.Fprintf(&b, "| %s | %s | %s %d/%d | %s %d/%d | %s %d/%d |\n",
			name, describeSuite(name),
			marker(pos.Passed, pos.Total), pos.Passed, pos.Total,
			marker(neg.Passed, neg.Total), neg.Passed, neg.Total,
			marker(totalPassed, totalTests), totalPassed, totalTests)
	}
	b.WriteString("\n")

	b.WriteString("## Detailed Suite Breakdown\n\n")
	for _, name := range sortedSuiteNames(r) {
		stats := r.Suites[name]
		fmt.Fprintf(&b, "### %s\n*%s*\n\n", name, describeSuite(name))
		writeDirection(&b, "Positive", stats.Positive)
		writeDirection(&b, "Negative", stats.Negative)
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	b.WriteString("## About This Report\n\n")
	b.WriteString("This report is automatically generated by running the conformance test suite against the official 3MF Consortium test cases from [3MFConsortium/test_suites](https://github.com/3MFConsortium/test_suites).\n\n")
	b.WriteString("**Test Methodology:**\n")
	b.WriteString("- **Positive tests** validate that valid 3MF files parse successfully\n")
	b.WriteString("- **Negative tests** validate that invalid 3MF files are properly rejected\n\n")
	b.WriteString("**How to Regenerate:**\n")
	b.WriteString("```bash\nfuzztriage conformance-report\n```\n")

	return b.String()
}

// writeDirection prints the positive or negative summary line of a
// suite section.
func writeDirection(b *strings.Builder, label string, c Counts) {
	if c.Total == 0 {
		fmt.Fprintf(b, "**%s Tests:** No tests found\n", label)
		return
	}
	status := "✅ All passed"
	if c.Passed != c.Total {
		status = fmt.Sprintf("⚠️ %d failed", c.Total-c.Passed)
	}
	fmt.Fprintf(b, "**%s Tests:** %d/%d (%.1f%%) - %s\n", label, c.Passed, c.Total, c.Rate(), status)
}
