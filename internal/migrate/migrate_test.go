package migrate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTestCaseID(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"positive case", "P_XXX_0420_01.3mf", "0420_01"},
		{"negative case", "N_XPM_0313_01.3mf", "0313_01"},
		{"extra prefix parts", "P_A_B_0420_02.3mf", "0420_02"},
		{"too few parts", "P_0420.3mf", ""},
		{"no underscores", "crash.3mf", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTestCaseID(tt.filename))
		})
	}
}

func writeInput(t *testing.T, entries string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "expected_failures.json")
	content := `{"expected_failures": [` + entries + `]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readOutput(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		ExpectedFailures []map[string]interface{} `json:"expected_failures"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc.ExpectedFailures
}

func TestMigrate_GroupsAcrossSuites(t *testing.T) {
	input := writeInput(t, `
		{"file": "P_XXX_0420_01.3mf", "suite": "suite1", "test_type": "positive",
		 "reason": "short", "date_added": "2024-02-01"},
		{"file": "P_YYY_0420_01.3mf", "suite": "suite3", "test_type": "positive",
		 "reason": "short", "date_added": "2024-01-15", "issue_url": "https://example.com/42"},
		{"file": "P_YYY_0420_01.3mf", "suite": "suite3", "test_type": "positive",
		 "reason": "short", "date_added": "2024-03-01"}`)
	output := filepath.Join(t.TempDir(), "out.json")

	summary, err := Migrate(input, output)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.OriginalEntries)
	assert.Equal(t, 1, summary.Grouped)
	assert.Equal(t, 0, summary.Ungrouped)
	assert.Equal(t, []string{"0420_01"}, summary.MultiSuite)

	entries := readOutput(t, output)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "0420_01", entry["test_case_id"])
	assert.Equal(t, []interface{}{"suite1", "suite3"}, entry["suites"])
	assert.Equal(t, "2024-01-15", entry["date_added"])
	assert.Equal(t, "https://example.com/42", entry["issue_url"])
}

func TestMigrate_KeepsLongestReason(t *testing.T) {
	input := writeInput(t, `
		{"file": "N_XXX_0326_03.3mf", "suite": "suite1", "test_type": "negative",
		 "reason": "zero determinant"},
		{"file": "N_YYY_0326_03.3mf", "suite": "suite2", "test_type": "negative",
		 "reason": "Build item transform matrix with zero determinant is rejected"}`)
	output := filepath.Join(t.TempDir(), "out.json")

	summary, err := Migrate(input, output)
	require.NoError(t, err)
	// Both wordings normalize to the same reason and group together.
	assert.Equal(t, 1, summary.Grouped)

	entries := readOutput(t, output)
	require.Len(t, entries, 1)
	assert.Equal(t, "Build item transform matrix with zero determinant is rejected", entries[0]["reason"])
}

func TestMigrate_DistinctReasonsStaySeparate(t *testing.T) {
	input := writeInput(t, `
		{"file": "P_XXX_0100_01.3mf", "suite": "suite1", "test_type": "positive", "reason": "parser rejects it"},
		{"file": "P_XXX_0100_01.3mf", "suite": "suite2", "test_type": "positive", "reason": "thumbnail missing"}`)
	output := filepath.Join(t.TempDir(), "out.json")

	summary, err := Migrate(input, output)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Grouped)
}

func TestMigrate_UngroupablePassThrough(t *testing.T) {
	input := writeInput(t, `
		{"file": "weird.3mf", "suite": "suite1", "test_type": "negative", "reason": "odd name", "custom_field": true},
		{"file": "P_XXX_0420_01.3mf", "suite": "suite1", "test_type": "positive", "reason": "ok"}`)
	output := filepath.Join(t.TempDir(), "out.json")

	summary, err := Migrate(input, output)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Grouped)
	assert.Equal(t, 1, summary.Ungrouped)

	entries := readOutput(t, output)
	require.Len(t, entries, 2)
	// Grouped entries come first, pass-through entries keep their shape.
	last := entries[1]
	assert.Equal(t, "weird.3mf", last["file"])
	assert.Equal(t, true, last["custom_field"])
}

func TestMigrate_MissingInput(t *testing.T) {
	_, err := Migrate(filepath.Join(t.TempDir(), "nope.json"), filepath.Join(t.TempDir(), "out.json"))
	assert.Error(t, err)
}
