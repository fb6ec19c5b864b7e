// Package testutil provides shared test infrastructure for the flowsim packages:
// locating the example scenarios, writing YAML fixtures and float assertions.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// ExampleScenarioPath returns the path of examples/<name>.
// The path is resolved relative to this source file: sim/internal/testutil/ → examples/.
func ExampleScenarioPath(t *testing.T, name string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "examples", name)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Example scenario %s not found: %v", name, err)
	}
	return path
}

// WriteScenario writes content to a fresh file in a test temp dir and returns its path.
func WriteScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scenario: %v", err)
	}
	return path
}

// TwoActivityScenario is the reference contention scenario: A admits one team
// for exactly 5 minutes, B is an unconstrained instantaneous finish, and two
// teams start together at t=0 with no walk to A.
const TwoActivityScenario = `
name: two-activity
runs: 1
seed: 7
horizon: 100
activities:
  - name: A
    capacity: 1
    min: 5
    max: 5
  - name: B
    capacity: 99
    min: 0
    max: 0
courses:
  main: [0, A, B]
categories:
  - name: X
    course: main
    teams: 2
    speed:
      model: uniform
      min: 4
      max: 4
    start:
      policy: waves
      first: 0
      per_wave: 2
      interval: 0
`

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
