package retry

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the serializable form of the retry options. Durations are written
// as Go duration strings, e.g. "50ms" or "2m".
//
// Start from DefaultConfig: every field is applied as-is by Options, so a zero
// value means zero, not "use the default".
type Config struct {
	// MaxRetryCount caps the number of attempts. 0 means unbounded.
	MaxRetryCount int `yaml:"maxRetryCount"`
	// RetryDelay is the base delay between attempts.
	RetryDelay time.Duration `yaml:"retryDelay"`
	// Timeout is the budget for the whole session. 0 disables it.
	Timeout time.Duration `yaml:"timeout"`
	// Backoff enables exponential growth of the delay.
	Backoff bool `yaml:"backoff"`
	// Factor is the exponential base used when Backoff is set.
	Factor float64 `yaml:"factor"`
	// MinRetryDelay is the floor of the computed delay.
	MinRetryDelay time.Duration `yaml:"minRetryDelay"`
	// MaxRetryDelay is the ceiling of the computed delay. 0 means no ceiling.
	MaxRetryDelay time.Duration `yaml:"maxRetryDelay"`
	// Jitter enables a random addition in [MinJitter, MaxJitter].
	Jitter    bool          `yaml:"jitter"`
	MinJitter time.Duration `yaml:"minJitter"`
	MaxJitter time.Duration `yaml:"maxJitter"`
	// JitterRandomSeed makes the jitter sequence reproducible.
	JitterRandomSeed string `yaml:"jitterRandomSeed"`
}

func DefaultConfig() Config {
	return Config{
		RetryDelay:    defaultRetryDelay,
		Timeout:       defaultTimeout,
		Factor:        defaultFactor,
		MaxRetryDelay: defaultMaxRetryDelay,
		MaxJitter:     defaultMaxJitter,
	}
}

func (c Config) Validate() error {
	if c.MaxRetryCount < 0 {
		return errors.Errorf("maxRetryCount cannot be negative, got %d", c.MaxRetryCount)
	}
	if c.RetryDelay < 0 {
		return errors.Errorf("retryDelay cannot be negative, got %s", c.RetryDelay)
	}
	if c.Timeout < 0 {
		return errors.Errorf("timeout cannot be negative, got %s", c.Timeout)
	}
	if c.Backoff && c.Factor <= 0 {
		return errors.Errorf("factor must be positive when backoff is enabled, got %v", c.Factor)
	}
	if c.MinRetryDelay < 0 {
		return errors.Errorf("minRetryDelay cannot be negative, got %s", c.MinRetryDelay)
	}
	if c.MaxRetryDelay < 0 {
		return errors.Errorf("maxRetryDelay cannot be negative, got %s", c.MaxRetryDelay)
	}
	if c.MaxRetryDelay > 0 && c.MinRetryDelay > c.MaxRetryDelay {
		return errors.Errorf("minRetryDelay %s exceeds maxRetryDelay %s", c.MinRetryDelay, c.MaxRetryDelay)
	}
	if c.Jitter && c.MinJitter > c.MaxJitter {
		return errors.Errorf("minJitter %s exceeds maxJitter %s", c.MinJitter, c.MaxJitter)
	}
	return nil
}

// Options converts c into options for Do.
func (c Config) Options() []RetryOption {
	opts := []RetryOption{
		WithMaxRetryCount(c.MaxRetryCount),
		WithRetryDelay(c.RetryDelay),
		WithTimeout(c.Timeout),
		WithBackoff(c.Backoff),
		WithFactor(c.Factor),
		WithMinRetryDelay(c.MinRetryDelay),
		WithMaxRetryDelay(c.MaxRetryDelay),
		WithJitterSeed(c.JitterRandomSeed),
	}
	if c.Jitter {
		opts = append(opts, WithJitter(c.MinJitter, c.MaxJitter))
	}
	return opts
}

// ParseConfig decodes YAML data on top of DefaultConfig and validates the
// result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse retry config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid retry config")
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read retry config %s", path)
	}
	return ParseConfig(data)
}
