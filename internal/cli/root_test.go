package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltfishpr/retrier/retry"
)

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

// countingScript returns a shell snippet that records each run in a file and
// exits with code until it has run succeedAfter times.
func countingScript(t *testing.T, code, succeedAfter int) (string, func() int) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "runs")
	script := `echo run >> "` + file + `"; n=$(wc -l < "` + file + `"); ` +
		`if [ "$n" -ge ` + strconv.Itoa(succeedAfter) + ` ]; then echo done; exit 0; fi; exit ` + strconv.Itoa(code)
	count := func() int {
		data, err := os.ReadFile(file)
		if err != nil {
			return 0
		}
		return strings.Count(string(data), "run\n")
	}
	return script, count
}

func TestRoot_SucceedsAfterRetries(t *testing.T) {
	script, count := countingScript(t, 1, 3)
	out, err := execute(t, "--retry-delay", "1ms", "--", "sh", "-c", script)
	require.NoError(t, err)
	assert.Equal(t, 3, count())
	assert.Equal(t, "done\n", out)
}

func TestRoot_RetryLimit(t *testing.T) {
	script, count := countingScript(t, 3, 100)
	_, err := execute(t, "--retry-delay", "1ms", "--max-retry-count", "2", "--", "sh", "-c", script)
	require.Error(t, err)
	assert.True(t, retry.IsRetryLimitReached(err))
	assert.Equal(t, 2, count())
	assert.Equal(t, 3, ExitCode(err))
}

func TestRoot_AbortExitCode(t *testing.T) {
	script, count := countingScript(t, 2, 100)
	_, err := execute(t, "--retry-delay", "1ms", "--abort-exit-code", "2", "--", "sh", "-c", script)
	require.NoError(t, err)
	assert.Equal(t, 1, count())
}

func TestRoot_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retryDelay: 1ms\nmaxRetryCount: 5\n"), 0o600))

	t.Run("file values", func(t *testing.T) {
		script, count := countingScript(t, 1, 100)
		_, err := execute(t, "--config", path, "--", "sh", "-c", script)
		assert.True(t, retry.IsRetryLimitReached(err))
		assert.Equal(t, 5, count())
	})

	t.Run("flags override file", func(t *testing.T) {
		script, count := countingScript(t, 1, 100)
		_, err := execute(t, "--config", path, "--max-retry-count", "2", "--", "sh", "-c", script)
		assert.True(t, retry.IsRetryLimitReached(err))
		assert.Equal(t, 2, count())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "--", "true")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRoot_InvalidOptions(t *testing.T) {
	_, err := execute(t, "--backoff", "--factor", "0", "--", "true")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid options")
}

func TestRoot_RequiresCommand(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("plain")))
}
