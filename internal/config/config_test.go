package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

var envNames = []string{"HASH", "SEED", "FIRST_TURN_MS", "TURN_MS", "LOG_LEVEL", "LOG_PRETTY"}

func clearEnv(t *testing.T) {
	for _, name := range envNames {
		t.Setenv(envPrefix+name, "")
	}
}

func writeEnvFile(t *testing.T, content string) string {
	var path = filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	var cfg, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Error(cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
}

func TestPrecedence(t *testing.T) {
	clearEnv(t)
	var path = writeEnvFile(t, "COUNTERFOUR_HASH=32\nCOUNTERFOUR_SEED=5\nCOUNTERFOUR_LOG_LEVEL=debug\n")
	t.Setenv("COUNTERFOUR_SEED", "9")
	t.Setenv("COUNTERFOUR_TURN_MS", "50")

	var cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hash != 32 || cfg.Seed != 9 || cfg.TurnMs != 50 || cfg.LogLevel != "debug" {
		t.Error(cfg)
	}
	if cfg.FirstTurnMs != Default().FirstTurnMs {
		t.Error(cfg.FirstTurnMs)
	}

	var flags = flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(flags)
	if err := flags.Parse([]string{"-hash", "0", "-logpretty"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Hash != 0 || !cfg.LogPretty || cfg.Seed != 9 {
		t.Error(cfg)
	}
}

func TestBadEnvironment(t *testing.T) {
	var tests = []struct {
		name, value string
	}{
		{"HASH", "big"},
		{"TURN_MS", "1.5"},
		{"LOG_PRETTY", "maybe"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(envPrefix+test.name, test.value)
			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	var tests = []struct {
		name   string
		modify func(cfg *Config)
		ok     bool
	}{
		{"default", func(cfg *Config) {}, true},
		{"no hash", func(cfg *Config) { cfg.Hash = 0 }, true},
		{"hash too big", func(cfg *Config) { cfg.Hash = 2048 }, false},
		{"negative hash", func(cfg *Config) { cfg.Hash = -1 }, false},
		{"negative seed", func(cfg *Config) { cfg.Seed = -3 }, false},
		{"zero turn", func(cfg *Config) { cfg.TurnMs = 0 }, false},
		{"zero first turn", func(cfg *Config) { cfg.FirstTurnMs = 0 }, false},
		{"bad level", func(cfg *Config) { cfg.LogLevel = "loud" }, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var cfg = Default()
			test.modify(&cfg)
			if err := cfg.Validate(); (err == nil) != test.ok {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}
