package report

// family groups taxonomy categories that share the same root-cause
// investigation guidance.
type family string

const (
	familyBounds    family = "bounds"
	familyUnwrap    family = "unwrap"
	familyArith     family = "arithmetic"
	familyRecursion family = "recursion"
	familyMemory    family = "memory"
	familyTimeout   family = "timeout"
	familyGeneric   family = "generic"
)

// categoryFamilies selects the guidance family for each taxonomy
// category. Categories without an entry (segfaults, UB, slices,
// assertions, unknowns) get the generic block.
var categoryFamilies = map[string]family{
	"Panic: Index Out of Bounds":        familyBounds,
	"Panic: Unwrap on None/Err":         familyUnwrap,
	"Panic: Integer Overflow/Underflow": familyArith,
	"Stack Overflow":                    familyRecursion,
	"Out of Memory":                     familyMemory,
	"Timeout/Hang":                      familyTimeout,
}

// guidanceBlocks holds one canned root-cause-analysis block per family.
var guidanceBlocks = map[family]string{
	familyBounds: `   - Review array/vector indexing in the affected code path
   - Look for missing bounds checks
   - Consider if input validation is sufficient
`,
	familyUnwrap: `   - Identify the unwrap() or expect() call that panicked
   - Determine what error condition triggered it
   - Replace with proper error handling (?, Result, or match)
`,
	familyArith: `   - Identify the arithmetic operation that overflowed
   - Use checked arithmetic (checked_add, checked_mul, etc.)
   - Validate input ranges before arithmetic
`,
	familyRecursion: `   - Look for recursive function calls
   - Check for infinite recursion conditions
   - Consider adding recursion depth limits
`,
	familyMemory: `   - Identify large allocations
   - Check for unbounded data structures
   - Add input size validation
`,
	familyTimeout: `   - Profile the code to find hot spots
   - Look for infinite loops or excessive iterations
   - Consider adding complexity limits
`,
	familyGeneric: `   - Examine the stack trace to locate the crash
   - Review the code path leading to the failure
   - Check for logic errors or invalid state
`,
}

// guidanceFor returns the root-cause guidance block for a category.
func guidanceFor(category string) string {
	f, ok := categoryFamilies[category]
	if !ok {
		f = familyGeneric
	}
	return guidanceBlocks[f]
}
