package report

import (
	"fmt"
	"strings"

	"github.com/zjy-dev/fuzz-triage/internal/artifact"
	"github.com/zjy-dev/fuzz-triage/internal/classify"
	"github.com/zjy-dev/fuzz-triage/internal/triage"
)

// severityBadges render the severity tier at the top of the summary.
var severityBadges = map[classify.Severity]string{
	classify.SeverityCritical: "🔴 **CRITICAL**",
	classify.SeverityHigh:     "🟠 **HIGH**",
	classify.SeverityMedium:   "🟡 **MEDIUM**",
	classify.SeverityLow:      "🟢 **LOW**",
}

// Synthesize composes the issue record for one triaged crash. It is a
// pure function of its inputs: synthesizing the same tuple twice yields
// byte-identical title and body.
func Synthesize(target string, art *artifact.Artifact, analysis *triage.Analysis) *Issue {
	c := analysis.Classification
	return &Issue{
		Title:    buildTitle(target, art, c),
		Body:     buildBody(target, art, analysis),
		Severity: c.Severity,
		Category: c.Category,
		Labels:   LabelsFor(c.Severity),
	}
}

func buildTitle(target string, art *artifact.Artifact, c classify.Classification) string {
	return fmt.Sprintf("[Fuzzing] %s in %s (%s)", c.Category, target, art.ShortHash())
}

func buildBody(target string, art *artifact.Artifact, analysis *triage.Analysis) string {
	c := analysis.Classification

	badge, ok := severityBadges[c.Severity]
	if !ok {
		badge = severityBadges[classify.SeverityMedium]
	}

	var b strings.Builder

	b.WriteString("## Fuzzing Crash Report\n\n")
	b.WriteString("**Auto-generated by fuzzing CI** - This issue was automatically created when fuzzing discovered a crash.\n\n")

	b.WriteString("### Summary\n\n")
	fmt.Fprintf(&b, "%s Priority\n\n", badge)
	fmt.Fprintf(&b, "**Crash Type:** %s  \n", c.Category)
	fmt.Fprintf(&b, "**Fuzzing Target:** `%s`  \n", target)
	fmt.Fprintf(&b, "**Artifact:** `%s`  \n", art.Name)
	fmt.Fprintf(&b, "**Artifact Hash:** `%s`  \n", art.Hash)
	fmt.Fprintf(&b, "**Artifact Size:** %d bytes\n\n", art.Size)

	b.WriteString("### Analysis\n\n")
	fmt.Fprintf(&b, "%s\n\n", c.Description)

	if len(analysis.Trace) > 0 {
		b.WriteString("### Stack Trace\n\n")
		fmt.Fprintf(&b, "```\n%s\n```\n\n", strings.Join(analysis.Trace, "\n"))
	}

	b.WriteString("### Reproduction Steps\n\n")
	b.WriteString("1. Download the crash artifact from the GitHub Actions run\n")
	b.WriteString("2. Run the fuzzer with the crash artifact:\n")
	fmt.Fprintf(&b, "   ```bash\n   cargo +nightly fuzz run %s path/to/crash-artifact\n   ```\n\n", target)

	b.WriteString("### Initial Investigation\n\n")
	b.WriteString("**Automated Analysis Complete** - The following steps are suggested for manual investigation:\n\n")
	b.WriteString("1. **Reproduce Locally:** \n")
	b.WriteString("   - Ensure you can reproduce the crash with the artifact\n")
	b.WriteString("   - Check if the crash is deterministic\n\n")
	b.WriteString("2. **Root Cause Analysis:**\n")
	b.WriteString(guidanceFor(c.Category))

	b.WriteString("\n3. **Security Impact:**\n")
	b.WriteString("   - Assess if this is a Denial of Service (DoS) vulnerability\n")
	b.WriteString("   - Check if arbitrary input can trigger the crash\n")
	b.WriteString("   - Determine if this affects production use cases\n\n")
	b.WriteString("4. **Fix and Test:**\n")
	b.WriteString("   - Implement a fix with proper error handling\n")
	b.WriteString("   - Add a regression test with the crash artifact\n")
	b.WriteString("   - Run extended fuzzing to verify the fix\n\n")

	b.WriteString("### Labels\n\n")
	b.WriteString("This issue should be labeled with:\n")
	b.WriteString("- `bug` - This is a defect\n")
	b.WriteString("- `fuzzing` - Found by fuzzing\n")
	b.WriteString("- `security` - If this is a DoS or security issue\n")
	fmt.Fprintf(&b, "- `%s` - %s priority\n", PriorityLabel(c.Severity), priorityWord(c.Severity))

	b.WriteString("\n### Artifact Information\n\n")
	b.WriteString("The crash artifact has been uploaded to the GitHub Actions workflow run. Download it from the \"Artifacts\" section of the workflow run.\n\n")
	b.WriteString("---\n")
	b.WriteString("*This issue was automatically generated by the fuzzing CI workflow. For more information, see `.github/workflows/fuzzing.yml`.*\n")

	return b.String()
}

func priorityWord(severity classify.Severity) string {
	switch severity {
	case classify.SeverityCritical:
		return "Critical"
	case classify.SeverityHigh:
		return "High"
	case classify.SeverityLow:
		return "Low"
	default:
		return "Medium"
	}
}
