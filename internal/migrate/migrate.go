// Package migrate regroups the flat expected_failures.json records into
// the newer format that carries one entry per test case with the list
// of suites it appears in.
package migrate

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Failure is a flat (old format) expected-failure record.
type Failure struct {
	File              string `json:"file,omitempty"`
	Suite             string `json:"suite,omitempty"`
	TestType          string `json:"test_type"`
	Reason            string `json:"reason"`
	IssueURL          string `json:"issue_url,omitempty"`
	DateAdded         string `json:"date_added,omitempty"`
	ExpectedErrorType string `json:"expected_error_type,omitempty"`
}

// GroupedFailure is a new-format record keyed by test case ID and
// listing every suite the case fails in.
type GroupedFailure struct {
	TestCaseID        string   `json:"test_case_id"`
	Suites            []string `json:"suites"`
	TestType          string   `json:"test_type"`
	Reason            string   `json:"reason"`
	IssueURL          string   `json:"issue_url"`
	DateAdded         string   `json:"date_added"`
	ExpectedErrorType string   `json:"expected_error_type,omitempty"`
}

// document is the on-disk shape of expected_failures.json. Entries are
// kept raw so records that cannot be regrouped pass through unchanged.
type document struct {
	ExpectedFailures []json.RawMessage `json:"expected_failures"`
}

// Summary reports what a migration did.
type Summary struct {
	OriginalEntries int
	Grouped         int
	Ungrouped       int
	// MultiSuite lists test case IDs that appear in more than one suite.
	MultiSuite []string
}

// ExtractTestCaseID derives the test case ID from a test file name,
// e.g. "P_XXX_0420_01.3mf" -> "0420_01". It returns "" when the name
// does not follow the P/N_PREFIX_NNNN_NN convention.
func ExtractTestCaseID(filename string) string {
	withoutExt := strings.TrimSuffix(filename, ".3mf")
	parts := strings.Split(withoutExt, "_")
	if len(parts) < 4 {
		return ""
	}
	return parts[len(parts)-2] + "_" + parts[len(parts)-1]
}

// normalizeReason collapses known wording variations of the same issue
// so they group into one entry.
func normalizeReason(testCaseID, reason string) string {
	switch {
	case testCaseID == "0313_01" && strings.Contains(reason, "invalid content type for PNG"):
		return "File contains invalid content type for PNG extension"
	case testCaseID == "0326_03" && strings.Contains(reason, "zero determinant"):
		return "Build item transform matrix with zero determinant"
	case testCaseID == "0338_01" && strings.Contains(reason, "zero determinant"):
		return "Build item transform matrix with zero determinant"
	case testCaseID == "0418_01" && strings.Contains(reason, "Build transform bounds validation"):
		return "Build transform bounds validation"
	}
	return reason
}

// groupKey identifies records that describe the same underlying failure.
type groupKey struct {
	testCaseID        string
	testType          string
	normalizedReason  string
	expectedErrorType string
}

// Migrate reads the old-format file at inputPath and writes the
// regrouped document to outputPath.
func Migrate(inputPath, outputPath string) (*Summary, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", inputPath, err)
	}

	grouped := make(map[groupKey]*GroupedFailure)
	var keys []groupKey
	var ungrouped []json.RawMessage

	for _, raw := range doc.ExpectedFailures {
		var f Failure
		if err := json.Unmarshal(raw, &f); err != nil {
			ungrouped = append(ungrouped, raw)
			continue
		}

		testCaseID := ExtractTestCaseID(f.File)
		if testCaseID == "" {
			ungrouped = append(ungrouped, raw)
			continue
		}

		key := groupKey{
			testCaseID:        testCaseID,
			testType:          f.TestType,
			normalizedReason:  normalizeReason(testCaseID, f.Reason),
			expectedErrorType: f.ExpectedErrorType,
		}

		entry, ok := grouped[key]
		if !ok {
			entry = &GroupedFailure{
				TestCaseID:        testCaseID,
				TestType:          f.TestType,
				ExpectedErrorType: f.ExpectedErrorType,
			}
			grouped[key] = entry
			keys = append(keys, key)
		}

		entry.Suites = append(entry.Suites, f.Suite)
		// Keep the longest, most detailed wording of the reason.
		if len(f.Reason) > len(entry.Reason) {
			entry.Reason = f.Reason
		}
		if f.IssueURL != "" {
			entry.IssueURL = f.IssueURL
		}
		// Keep the earliest date the failure was recorded.
		if entry.DateAdded == "" || (f.DateAdded != "" && f.DateAdded < entry.DateAdded) {
			entry.DateAdded = f.DateAdded
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.testCaseID != b.testCaseID {
			return a.testCaseID < b.testCaseID
		}
		if a.testType != b.testType {
			return a.testType < b.testType
		}
		return a.normalizedReason < b.normalizedReason
	})

	summary := &Summary{
		OriginalEntries: len(doc.ExpectedFailures),
		Grouped:         len(grouped),
		Ungrouped:       len(ungrouped),
	}

	var out []json.RawMessage
	for _, key := range keys {
		entry := grouped[key]
		entry.Suites = dedupeSorted(entry.Suites)
		if len(entry.Suites) > 1 {
			summary.MultiSuite = append(summary.MultiSuite, entry.TestCaseID)
		}
		raw, err := json.Marshal(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal grouped entry %s: %w", entry.TestCaseID, err)
		}
		out = append(out, raw)
	}
	out = append(out, ungrouped...)

	result, err := json.MarshalIndent(document{ExpectedFailures: out}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal migrated document: %w", err)
	}
	if err := os.WriteFile(outputPath, result, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	return summary, nil
}

// dedupeSorted returns the unique values of in, sorted.
func dedupeSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
