package retry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_MatchesDefaultOptions(t *testing.T) {
	assert.Equal(t, defaultOptions(), withoutHooks(applyOptions(DefaultConfig().Options()...)))
}

// withoutHooks drops fields that Config does not describe.
func withoutHooks(o retryOptions) retryOptions {
	d := defaultOptions()
	o.clock, o.logger, o.observer = d.clock, d.logger, d.observer
	return o
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
maxRetryCount: 5
retryDelay: 10ms
timeout: 3s
backoff: true
factor: 1.5
minRetryDelay: 5ms
maxRetryDelay: 1s
jitter: true
minJitter: 1ms
maxJitter: 20ms
jitterRandomSeed: TOAD STROGANOFF
`)
	cfg, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, Config{
		MaxRetryCount:    5,
		RetryDelay:       10 * time.Millisecond,
		Timeout:          3 * time.Second,
		Backoff:          true,
		Factor:           1.5,
		MinRetryDelay:    5 * time.Millisecond,
		MaxRetryDelay:    time.Second,
		Jitter:           true,
		MinJitter:        time.Millisecond,
		MaxJitter:        20 * time.Millisecond,
		JitterRandomSeed: "TOAD STROGANOFF",
	}, cfg)

	opts := applyOptions(cfg.Options()...)
	assert.Equal(t, 5, opts.maxRetryCount)
	assert.True(t, opts.jitter)
	assert.Equal(t, "TOAD STROGANOFF", opts.jitterSeed)
}

func TestParseConfig_KeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("maxRetryCount: 2\n"))
	require.NoError(t, err)
	want := DefaultConfig()
	want.MaxRetryCount = 2
	assert.Equal(t, want, cfg)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		msg  string
	}{
		{"bad yaml", "retryDelay: [", "parse retry config"},
		{"bad duration", "retryDelay: soon", "parse retry config"},
		{"negative count", "maxRetryCount: -1", "maxRetryCount cannot be negative"},
		{"negative timeout", "timeout: -1s", "timeout cannot be negative"},
		{"zero factor", "backoff: true\nfactor: 0", "factor must be positive"},
		{"min above max", "minRetryDelay: 2s\nmaxRetryDelay: 1s", "exceeds maxRetryDelay"},
		{"jitter bounds", "jitter: true\nminJitter: 20ms\nmaxJitter: 10ms", "exceeds maxJitter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retryDelay: 1ms\nmaxRetryCount: 3\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	calls := 0
	clk := newTestClock()
	_, err = Do(context.Background(), alwaysFail(&calls), append(cfg.Options(), WithClock(clk))...)
	assert.True(t, IsRetryLimitReached(err))
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Millisecond, time.Millisecond}, clk.Sleeps())

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
