package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestCSV writes a trended monthly series and returns its path.
func writeTestCSV(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("y\n")
	for i := 0; i < 120; i++ {
		v := float64(i)*0.5 + 10*math.Sin(2*math.Pi*float64(i)/12)
		fmt.Fprintf(&b, "%.6f\n", v)
	}
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
}

func TestMSTLCommand(t *testing.T) {
	input := writeTestCSV(t)
	output := filepath.Join(t.TempDir(), "out.csv")

	runCommand(t, "mstl", "-i", input, "-o", output, "--periods", "12")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "index,data,trend,seasonal_12,remainder", lines[0])
	assert.Len(t, lines, 121)
}

func TestSTRCommand(t *testing.T) {
	input := writeTestCSV(t)
	output := filepath.Join(t.TempDir(), "out.csv")

	runCommand(t, "str", "-i", input, "-o", output, "--periods", "12")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "index,data,trend,seasonal_12,remainder", lines[0])
	assert.Len(t, lines, 121)
}

func TestClassicalCommand(t *testing.T) {
	input := writeTestCSV(t)
	output := filepath.Join(t.TempDir(), "out.csv")

	runCommand(t, "classical", "-i", input, "-o", output, "--period", "12")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "index,data,trend,seasonal,remainder", lines[0])
}

func TestPeriodsCommand(t *testing.T) {
	input := writeTestCSV(t)

	// Output goes to stdout; only check the command succeeds.
	runCommand(t, "periods", "-i", input, "--max-period", "30")
}

func TestMissingInput(t *testing.T) {
	rootCmd.SetArgs([]string{"mstl", "--periods", "12", "-i", ""})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input is required")
}

func TestClassicalBadPeriod(t *testing.T) {
	input := writeTestCSV(t)
	rootCmd.SetArgs([]string{"classical", "-i", input, "--period", "1"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--period must be at least 2")
}
