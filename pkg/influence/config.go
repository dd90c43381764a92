package influence

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gilchrisn/influence-maximization/pkg/diffusion"
)

// Config manages selection configuration using Viper
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults.
// Environment variables prefixed with INFMAX override any key,
// e.g. INFMAX_ALGORITHM_K=10.
func NewConfig() *Config {
	v := viper.New()

	// Algorithm parameters
	v.SetDefault("algorithm.model", diffusion.IndependentCascadeName)
	v.SetDefault("algorithm.k", 5)
	v.SetDefault("algorithm.num_simulations", 100)
	v.SetDefault("algorithm.random_seed", 42)
	v.SetDefault("algorithm.probability", diffusion.DefaultProbability)
	v.SetDefault("algorithm.weight_cap", diffusion.DefaultWeightCap)

	// Candidate pool
	v.SetDefault("candidates.strategy", StrategyAll)
	v.SetDefault("candidates.top_n", 50)
	v.SetDefault("candidates.nodes", []string{})

	// Performance parameters
	v.SetDefault("performance.parallel", true)
	v.SetDefault("performance.num_workers", runtime.NumCPU())
	v.SetDefault("performance.timeout", time.Duration(0))

	// Logging parameters
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.enable_progress", true)

	v.SetDefault("output.format", FormatJSON)
	v.SetDefault("metrics.addr", "")

	v.SetEnvPrefix("INFMAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// BindFlag lets a command-line flag override key when it is set
func (c *Config) BindFlag(key string, flag *pflag.Flag) error {
	return c.v.BindPFlag(key, flag)
}

// Getters for algorithm parameters
func (c *Config) Model() string { return c.v.GetString("algorithm.model") }
func (c *Config) K() int { return c.v.GetInt("algorithm.k") }
func (c *Config) NumSimulations() int { return c.v.GetInt("algorithm.num_simulations") }
func (c *Config) RandomSeed() int64 { return c.v.GetInt64("algorithm.random_seed") }
func (c *Config) Probability() float64 { return c.v.GetFloat64("algorithm.probability") }
func (c *Config) WeightCap() float64 { return c.v.GetFloat64("algorithm.weight_cap") }
func (c *Config) CandidateStrategy() string { return c.v.GetString("candidates.strategy") }
func (c *Config) CandidateTopN() int { return c.v.GetInt("candidates.top_n") }
func (c *Config) CandidateNodes() []string { return c.v.GetStringSlice("candidates.nodes") }

func (c *Config) Parallel() bool { return c.v.GetBool("performance.parallel") }
func (c *Config) NumWorkers() int { return c.v.GetInt("performance.num_workers") }
func (c *Config) Timeout() time.Duration { return c.v.GetDuration("performance.timeout") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }
func (c *Config) EnableProgress() bool { return c.v.GetBool("logging.enable_progress") }

func (c *Config) OutputFormat() string { return c.v.GetString("output.format") }
func (c *Config) MetricsAddr() string { return c.v.GetString("metrics.addr") }

// Workers returns the effective worker count
func (c *Config) Workers() int {
	if !c.Parallel() {
		return 1
	}
	if n := c.NumWorkers(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// Validate rejects invalid configuration before any simulation runs
func (c *Config) Validate() error {
	if _, err := diffusion.ModelByName(c.Model()); err != nil {
		return err
	}
	if c.K() < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidK, c.K())
	}
	if c.NumSimulations() <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSimulations, c.NumSimulations())
	}
	if p := c.Probability(); !(p >= 0 && p <= 1) {
		return fmt.Errorf("%w: %f", diffusion.ErrInvalidProbability, p)
	}
	if w := c.WeightCap(); !(w >= 0 && w <= 1) {
		return fmt.Errorf("%w: %f", diffusion.ErrInvalidWeightCap, w)
	}

	switch c.CandidateStrategy() {
	case StrategyAll:
	case StrategyCentrality:
		if c.CandidateTopN() <= 0 {
			return fmt.Errorf("%w: candidates.top_n must be positive, got %d", ErrInvalidConfig, c.CandidateTopN())
		}
	case StrategyList:
		if len(c.CandidateNodes()) == 0 {
			return fmt.Errorf("%w: candidates.nodes is empty", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.CandidateStrategy())
	}

	if c.Timeout() < 0 {
		return fmt.Errorf("%w: negative timeout %s", ErrInvalidConfig, c.Timeout())
	}
	if _, err := zerolog.ParseLevel(c.LogLevel()); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	return checkFormat(c.OutputFormat())
}

// CreateLogger creates a zerolog logger based on config
func (c *Config) CreateLogger() zerolog.Logger {
	return c.CreateLoggerTo(os.Stderr)
}

// CreateLoggerTo creates a console logger writing to w
func (c *Config) CreateLoggerTo(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "influence").Logger()
}
