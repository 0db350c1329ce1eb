package config

import (
	"flag"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const envPrefix = "COUNTERFOUR_"

type Config struct {
	Hash        int
	Seed        int
	FirstTurnMs int
	TurnMs      int
	LogLevel    string
	LogPretty   bool
}

func Default() Config {
	return Config{
		Hash:        16,
		FirstTurnMs: 1000,
		TurnMs:      100,
		LogLevel:    "info",
	}
}

// Load applies the env files and then the process environment on top of the defaults.
// Missing env files are skipped, an empty variable counts as unset.
func Load(envFiles ...string) (Config, error) {
	var fileValues = make(map[string]string)
	for _, envFile := range envFiles {
		var values, err = godotenv.Read(envFile)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, errors.Wrapf(err, "read %v", envFile)
		}
		for k, v := range values {
			if _, found := fileValues[k]; !found {
				fileValues[k] = v
			}
		}
	}
	var lookup = func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok
	}

	var cfg = Default()
	var err error
	if cfg.Hash, err = getInt(lookup, "HASH", cfg.Hash); err != nil {
		return Config{}, err
	}
	if cfg.Seed, err = getInt(lookup, "SEED", cfg.Seed); err != nil {
		return Config{}, err
	}
	if cfg.FirstTurnMs, err = getInt(lookup, "FIRST_TURN_MS", cfg.FirstTurnMs); err != nil {
		return Config{}, err
	}
	if cfg.TurnMs, err = getInt(lookup, "TURN_MS", cfg.TurnMs); err != nil {
		return Config{}, err
	}
	if cfg.LogPretty, err = getBool(lookup, "LOG_PRETTY", cfg.LogPretty); err != nil {
		return Config{}, err
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	return cfg, nil
}

func getInt(lookup func(string) (string, bool), name string, defaultValue int) (int, error) {
	var v, ok = lookup(envPrefix + name)
	if !ok || v == "" {
		return defaultValue, nil
	}
	var result, err = strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.Wrapf(err, "%v%v", envPrefix, name)
	}
	return result, nil
}

func getBool(lookup func(string) (string, bool), name string, defaultValue bool) (bool, error) {
	var v, ok = lookup(envPrefix + name)
	if !ok || v == "" {
		return defaultValue, nil
	}
	var result, err = strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, errors.Wrapf(err, "%v%v", envPrefix, name)
	}
	return result, nil
}

// RegisterFlags binds the command line flags to cfg; parsed flags override the environment.
func (cfg *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.IntVar(&cfg.Hash, "hash", cfg.Hash, "transposition table size in MB, 0 disables it")
	flags.IntVar(&cfg.Seed, "seed", cfg.Seed, "zobrist seed, 0 means random keys")
	flags.IntVar(&cfg.FirstTurnMs, "firstturn", cfg.FirstTurnMs, "default budget of the first turn in ms")
	flags.IntVar(&cfg.TurnMs, "turn", cfg.TurnMs, "default budget of a turn in ms")
	flags.StringVar(&cfg.LogLevel, "loglevel", cfg.LogLevel, "log level: trace, debug, info, warn, error")
	flags.BoolVar(&cfg.LogPretty, "logpretty", cfg.LogPretty, "human readable log")
}

func (cfg Config) Validate() error {
	if cfg.Hash < 0 || cfg.Hash > 1024 {
		return errors.Errorf("hash %v out of range [0, 1024]", cfg.Hash)
	}
	if cfg.Seed < 0 || cfg.Seed > math.MaxInt32 {
		return errors.Errorf("seed %v out of range", cfg.Seed)
	}
	if cfg.FirstTurnMs <= 0 {
		return errors.Errorf("first turn budget %v must be positive", cfg.FirstTurnMs)
	}
	if cfg.TurnMs <= 0 {
		return errors.Errorf("turn budget %v must be positive", cfg.TurnMs)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}
