package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantCategory string
		wantSeverity Severity
	}{
		{
			name:         "undefined behavior",
			text:         "ERROR: UndefinedBehaviorSanitizer: undefined behavior in parser",
			wantCategory: "Undefined Behavior",
			wantSeverity: SeverityCritical,
		},
		{
			name:         "segmentation fault",
			text:         "==12345== ERROR: libFuzzer: deadly signal\nSIGSEGV on unknown address",
			wantCategory: "Segmentation Fault",
			wantSeverity: SeverityCritical,
		},
		{
			name:         "stack overflow",
			text:         "thread 'main' has overflowed its stack\nfatal runtime error: stack overflow",
			wantCategory: "Stack Overflow",
			wantSeverity: SeverityHigh,
		},
		{
			name:         "out of memory",
			text:         "==4242== ERROR: libFuzzer: out-of-memory (malloc(4294967296))\noom",
			wantCategory: "Out of Memory",
			wantSeverity: SeverityHigh,
		},
		{
			name:         "integer overflow in panic",
			text:         "thread 'main' panicked at 'attempt to add with overflow', src/parser.rs:88",
			wantCategory: "Panic: Integer Overflow/Underflow",
			wantSeverity: SeverityHigh,
		},
		{
			name:         "timeout",
			text:         "==99== ERROR: libFuzzer: timeout after 60 seconds",
			wantCategory: "Timeout/Hang",
			wantSeverity: SeverityMedium,
		},
		{
			name:         "slow unit",
			text:         "slow-unit: 12.5 seconds to run",
			wantCategory: "Timeout/Hang",
			wantSeverity: SeverityMedium,
		},
		{
			name:         "index out of bounds",
			text:         "thread '<unnamed>' panicked at 'index out of bounds: the len is 3 but the index is 7'",
			wantCategory: "Panic: Index Out of Bounds",
			wantSeverity: SeverityMedium,
		},
		{
			name:         "unwrap on none",
			text:         "thread 'main' panicked at 'called `Option::unwrap()` on a `None` value'",
			wantCategory: "Panic: Unwrap on None/Err",
			wantSeverity: SeverityMedium,
		},
		{
			name:         "invalid slice",
			text:         "thread 'main' panicked at 'slice index starts at 10 but ends at 4'",
			wantCategory: "Panic: Invalid Slice",
			wantSeverity: SeverityMedium,
		},
		{
			name:         "generic panic",
			text:         "thread 'main' panicked at 'something went wrong', src/model.rs:10",
			wantCategory: "Panic: Unknown",
			wantSeverity: SeverityMedium,
		},
		{
			name:         "assertion failure",
			text:         "assertion failed: mesh.is_manifold()",
			wantCategory: "Assertion Failure",
			wantSeverity: SeverityLow,
		},
		{
			name:         "unmatched text",
			text:         "the program exited in a strange way",
			wantCategory: "Unknown Crash",
			wantSeverity: SeverityMedium,
		},
		{
			name:         "empty input",
			text:         "",
			wantCategory: "Unknown Crash",
			wantSeverity: SeverityMedium,
		},
		{
			name:         "case insensitive matching",
			text:         "SEGMENTATION FAULT (core dumped)",
			wantCategory: "Segmentation Fault",
			wantSeverity: SeverityCritical,
		},
		{
			name:         "overflow without panic context is not arithmetic",
			text:         "buffer overflow detected in logging subsystem",
			wantCategory: "Unknown Crash",
			wantSeverity: SeverityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantSeverity, got.Severity)
			assert.NotEmpty(t, got.Description)
		})
	}
}

// A segfault report that also mentions a panic must classify by the
// higher-priority memory-safety rule, never as a generic panic.
func TestClassify_RuleOrdering(t *testing.T) {
	text := "thread 'main' panicked at 'boom'\nSIGSEGV on unknown address 0x000000000000"
	got := Classify(text)
	assert.Equal(t, "Segmentation Fault", got.Category)
	assert.Equal(t, SeverityCritical, got.Severity)
}

func TestClassify_Deterministic(t *testing.T) {
	text := "thread 'main' panicked at 'index out of bounds: the len is 0 but the index is 0'"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
}

func TestTimeoutClassification(t *testing.T) {
	c := TimeoutClassification()
	assert.Equal(t, "Timeout/Hang", c.Category)
	assert.Equal(t, SeverityMedium, c.Severity)
	assert.Contains(t, c.Description, "timed out")
}

func TestUnclassified(t *testing.T) {
	c := Unclassified()
	assert.Equal(t, "Unknown", c.Category)
	assert.Equal(t, SeverityMedium, c.Severity)
}
