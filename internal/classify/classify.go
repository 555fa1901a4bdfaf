package classify

import "strings"

// Severity represents the triage severity tier of a crash.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Classification is the result of scanning diagnostic text against the
// crash taxonomy. Exactly one Classification is produced per scan.
type Classification struct {
	Category    string
	Severity    Severity
	Description string
}

// rule is a single entry of the ordered crash taxonomy. A rule matches
// when any of its triggers is present as a case-insensitive substring
// and, for needsPanic rules, the text also carries a panic marker
// somewhere. The panic marker is intentionally not required to be on
// the same line as the trigger; an "overflow" in an unrelated log line
// of a panicking run still matches (known false-positive source).
type rule struct {
	triggers   []string
	needsPanic bool
	result     Classification
}

// rules encodes the taxonomy in priority order; the first matching rule
// wins. Memory-safety categories come before the panic rules so that a
// SIGSEGV report that also mentions a panic is never downgraded to
// "Panic: Unknown". The bare "panic" row is the fallback for panics no
// finer rule recognized.
var rules = []rule{
	{
		triggers: []string{"undefined behavior"},
		result: Classification{
			Category:    "Undefined Behavior",
			Severity:    SeverityCritical,
			Description: "Potential memory safety issue - CRITICAL",
		},
	},
	{
		triggers: []string{"segmentation fault", "sigsegv"},
		result: Classification{
			Category:    "Segmentation Fault",
			Severity:    SeverityCritical,
			Description: "Memory safety violation - CRITICAL (check for unsafe code)",
		},
	},
	{
		triggers: []string{"stack overflow"},
		result: Classification{
			Category:    "Stack Overflow",
			Severity:    SeverityHigh,
			Description: "Deep recursion or infinite loop - DoS vulnerability",
		},
	},
	{
		triggers: []string{"out of memory", "oom"},
		result: Classification{
			Category:    "Out of Memory",
			Severity:    SeverityHigh,
			Description: "Excessive memory allocation - DoS vulnerability",
		},
	},
	{
		triggers:   []string{"overflow", "underflow"},
		needsPanic: true,
		result: Classification{
			Category:    "Panic: Integer Overflow/Underflow",
			Severity:    SeverityHigh,
			Description: "Arithmetic overflow - potential security issue",
		},
	},
	{
		triggers: []string{"timeout", "slow-unit"},
		result: Classification{
			Category:    "Timeout/Hang",
			Severity:    SeverityMedium,
			Description: "Excessive CPU usage or infinite loop - DoS risk",
		},
	},
	{
		triggers:   []string{"index out of bounds"},
		needsPanic: true,
		result: Classification{
			Category:    "Panic: Index Out of Bounds",
			Severity:    SeverityMedium,
			Description: "Array/vector access with invalid index - potential DoS",
		},
	},
	{
		triggers:   []string{"unwrap", "expect"},
		needsPanic: true,
		result: Classification{
			Category:    "Panic: Unwrap on None/Err",
			Severity:    SeverityMedium,
			Description: "Unhandled error case - potential DoS",
		},
	},
	{
		triggers:   []string{"slice"},
		needsPanic: true,
		result: Classification{
			Category:    "Panic: Invalid Slice",
			Severity:    SeverityMedium,
			Description: "Slice operation on invalid range - potential DoS",
		},
	},
	{
		triggers: []string{"panic"},
		result: Classification{
			Category:    "Panic: Unknown",
			Severity:    SeverityMedium,
			Description: "Unexpected panic - requires investigation",
		},
	},
	{
		triggers: []string{"assertion failed", "assert"},
		result: Classification{
			Category:    "Assertion Failure",
			Severity:    SeverityLow,
			Description: "Failed assertion - logic error",
		},
	},
}

// unknown is the total-taxonomy fallback for text that matches nothing.
var unknown = Classification{
	Category:    "Unknown Crash",
	Severity:    SeverityMedium,
	Description: "Unclassified crash - requires manual analysis",
}

// Classify maps raw diagnostic text to a taxonomy entry. It is total:
// any input, including the empty string, yields a Classification.
func Classify(diagnosticText string) Classification {
	lower := strings.ToLower(diagnosticText)
	inPanic := strings.Contains(lower, "panic")

	for _, r := range rules {
		if r.needsPanic && !inPanic {
			continue
		}
		for _, trigger := range r.triggers {
			if strings.Contains(lower, trigger) {
				return r.result
			}
		}
	}
	return unknown
}

// TimeoutClassification is the fixed classification applied when the
// reproduction attempt itself times out. It bypasses the taxonomy scan
// entirely: a hung target is a triage signal in its own right.
func TimeoutClassification() Classification {
	return Classification{
		Category:    "Timeout/Hang",
		Severity:    SeverityMedium,
		Description: "Crash reproduction timed out - possible infinite loop",
	}
}

// Unclassified is the default classification used when reproduction
// could not be attempted at all (e.g. the runner failed to start).
func Unclassified() Classification {
	return Classification{
		Category:    "Unknown",
		Severity:    SeverityMedium,
		Description: "No description available",
	}
}
