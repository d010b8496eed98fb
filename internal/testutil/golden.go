package testutil

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/blockart/internal/canon"
)

// GoldenDir is where golden files live, relative to the test's package.
const GoldenDir = "testdata/golden"

// AssertGolden compares data against testdata/golden/<name>.golden.
//
// Run the test with -update to rewrite the file.
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

// AssertGoldenJSON compares the canonical JSON encoding of v against a
// golden file. v must be encodable by canon.Marshal.
func AssertGoldenJSON(t *testing.T, name string, v any) {
	t.Helper()

	data, err := canon.Marshal(v)
	if err != nil {
		t.Fatalf("canonical marshal for golden %q: %v", name, err)
	}
	AssertGolden(t, name, data)
}

// ActionTrace is the golden form of an ordered list of dispatched actions.
func ActionTrace(scenario string, actions []string) map[string]any {
	list := make([]any, len(actions))
	for i, a := range actions {
		list[i] = a
	}
	return map[string]any{
		"scenario": scenario,
		"actions":  list,
	}
}
