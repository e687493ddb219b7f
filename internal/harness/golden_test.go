package harness

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates a fixture file, failing the test on error.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGolden_Chain(t *testing.T) {
	_, err := RunWithGolden(t, loadScenario(t, "chain"))
	require.NoError(t, err)
}

func TestGolden_Cycle(t *testing.T) {
	_, err := RunWithGolden(t, loadScenario(t, "cycle"))
	require.NoError(t, err)
}

func TestGolden_Diamond(t *testing.T) {
	_, err := RunWithGolden(t, loadScenario(t, "diamond"))
	require.NoError(t, err)
}

func TestGolden_Disconnected(t *testing.T) {
	result, err := RunWithGolden(t, loadScenario(t, "disconnected"))
	require.NoError(t, err)

	// The isolated component never shows up in the trace.
	for _, ev := range result.Trace {
		require.Less(t, ev.Node, 4)
	}
}
