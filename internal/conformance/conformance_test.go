package conformance

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `
running 1 test
suite1_core_slice_prod   Positive:   5/  5  Negative:   3/  3
suite3_core              Positive:  40/ 45  Negative:  27/ 32
suite7_beam              Positive:   0/  2  Negative:   0/  0
TOTAL                     Positive:  45/ 52  Negative:  30/ 35
Overall conformance: 86.2% (75/87)
test summary ... ok
`

func TestParse(t *testing.T) {
	results := Parse(sampleOutput)

	require.Len(t, results.Suites, 3)

	s1 := results.Suites["suite1_core_slice_prod"]
	assert.Equal(t, Counts{Passed: 5, Total: 5}, s1.Positive)
	assert.Equal(t, Counts{Passed: 3, Total: 3}, s1.Negative)

	s3 := results.Suites["suite3_core"]
	assert.Equal(t, Counts{Passed: 40, Total: 45}, s3.Positive)

	require.NotNil(t, results.Total)
	assert.Equal(t, Counts{Passed: 45, Total: 52}, results.Total.Positive)
	assert.Equal(t, Counts{Passed: 30, Total: 35}, results.Total.Negative)

	require.NotNil(t, results.Overall)
	assert.InDelta(t, 86.2, results.Overall.Percentage, 0.001)
	assert.Equal(t, 75, results.Overall.Passed)
	assert.Equal(t, 87, results.Overall.Total)
}

func TestParse_TotalLineIsNotASuite(t *testing.T) {
	results := Parse(sampleOutput)
	_, found := results.Suites["TOTAL"]
	assert.False(t, found)
}

func TestParse_NoiseOnly(t *testing.T) {
	results := Parse("compiling...\nwarning: unused import\n")
	assert.Empty(t, results.Suites)
	assert.Nil(t, results.Total)
	assert.Nil(t, results.Overall)
}

func TestCounts_Rate(t *testing.T) {
	assert.Equal(t, 0.0, Counts{}.Rate())
	assert.Equal(t, 50.0, Counts{Passed: 1, Total: 2}.Rate())
	assert.Equal(t, 100.0, Counts{Passed: 4, Total: 4}.Rate())
}

func TestRender(t *testing.T) {
	results := Parse(sampleOutput)
	generatedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	report := Render(results, generatedAt)

	assert.Contains(t, report, "# 3MF Conformance Test Report")
	assert.Contains(t, report, "**Generated:** 2026-03-14 09:30:00 UTC")
	assert.Contains(t, report, "**Overall Conformance:** 86.2% (75/87 tests passed)")
	assert.Contains(t, report, "- **Positive Tests:** 45/52 passed (86.5%)")

	// Suite rows carry description and status markers.
	assert.Contains(t, report, "| suite1_core_slice_prod | Core + Production + Slice Extensions | ✅ 5/5 | ✅ 3/3 | ✅ 8/8 |")
	assert.Contains(t, report, "⚠️ 40/45")
	assert.Contains(t, report, "❌ 0/2")
	assert.Contains(t, report, "**Negative Tests:** No tests found")

	// Suites are listed in stable sorted order.
	i1 := strings.Index(report, "### suite1_core_slice_prod")
	i3 := strings.Index(report, "### suite3_core")
	i7 := strings.Index(report, "### suite7_beam")
	assert.True(t, i1 > 0 && i3 > i1 && i7 > i3)
}

func TestRender_Deterministic(t *testing.T) {
	results := Parse(sampleOutput)
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Render(results, at), Render(results, at))
}

func TestDescribeSuite_Fallback(t *testing.T) {
	assert.Equal(t, "Core Specification (Basic)", describeSuite("suite3_core"))
	assert.Equal(t, "suite99_unknown", describeSuite("suite99_unknown"))
}
