// Package conformance turns the raw output of the conformance test
// suite into a markdown report with per-suite statistics.
package conformance

import (
	"regexp"
	"strconv"
	"strings"
)

// Counts is a passed/total pair for one direction of testing.
type Counts struct {
	Passed int
	Total  int
}

// Rate returns the pass rate in percent, 0 for empty suites.
func (c Counts) Rate() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Passed) / float64(c.Total) * 100
}

// SuiteResult holds the positive and negative test counts of one suite.
type SuiteResult struct {
	Positive Counts
	Negative Counts
}

// Overall is the aggregated conformance figure printed by the suite.
type Overall struct {
	Percentage float64
	Passed     int
	Total      int
}

// Results is everything parsed out of one test run.
type Results struct {
	Suites  map[string]SuiteResult
	Total   *SuiteResult
	Overall *Overall
}

var (
	// Matches e.g. "suite1_core_slice_prod   Positive:   5/  5  Negative:   3/  3"
	suiteRe = regexp.MustCompile(`(\S+)\s+Positive:\s+(\d+)/\s*(\d+)\s+Negative:\s+(\d+)/\s*(\d+)`)
	// Matches e.g. "TOTAL   Positive:  45/ 50  Negative:  30/ 35"
	totalRe = regexp.MustCompile(`TOTAL\s+Positive:\s+(\d+)/\s*(\d+)\s+Negative:\s+(\d+)/\s*(\d+)`)
	// Matches e.g. "Overall conformance: 92.5% (74/80)"
	overallRe = regexp.MustCompile(`Overall conformance:\s+([\d.]+)%\s+\((\d+)/(\d+)\)`)
)

// Parse extracts suite statistics from raw test output. Lines that match
// nothing are ignored, so interleaved cargo noise is harmless.
func Parse(output string) *Results {
	results := &Results{Suites: make(map[string]SuiteResult)}

	for _, line := range strings.Split(output, "\n") {
		if m := totalRe.FindStringSubmatch(line); m != nil {
			results.Total = &SuiteResult{
				Positive: Counts{Passed: atoi(m[1]), Total: atoi(m[2])},
				Negative: Counts{Passed: atoi(m[3]), Total: atoi(m[4])},
			}
			continue
		}
		if m := suiteRe.FindStringSubmatch(line); m != nil {
			results.Suites[m[1]] = SuiteResult{
				Positive: Counts{Passed: atoi(m[2]), Total: atoi(m[3])},
				Negative: Counts{Passed: atoi(m[4]), Total: atoi(m[5])},
			}
			continue
		}
		if m := overallRe.FindStringSubmatch(line); m != nil {
			pct, _ := strconv.ParseFloat(m[1], 64)
			results.Overall = &Overall{
				Percentage: pct,
				Passed:     atoi(m[2]),
				Total:      atoi(m[3]),
			}
		}
	}

	return results
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
