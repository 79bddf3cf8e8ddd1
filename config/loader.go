package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Load merges the TOML file at path (skipped when path is empty) over
// Defaults, then applies MONACO_* overrides from the environment and an
// optional .env file. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, errors.Wrapf(err, "decode %s", path)
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.RPC.Endpoint, "MONACO_RPC_ENDPOINT")
	setStr(&cfg.RPC.WsEndpoint, "MONACO_RPC_WS_ENDPOINT")
	setStr(&cfg.RPC.Commitment, "MONACO_RPC_COMMITMENT")

	setStr(&cfg.Program.ProgramID, "MONACO_PROGRAM_ID")
	setBool(&cfg.Program.VerifyIndex, "MONACO_PROGRAM_VERIFY_INDEX")

	setStr(&cfg.Wallet.KeypairPath, "MONACO_WALLET_KEYPAIR_PATH")

	setStr(&cfg.Confirm.Mode, "MONACO_CONFIRM_MODE")
	setDuration(&cfg.Confirm.PollInterval, "MONACO_CONFIRM_POLL_INTERVAL")
	setDuration(&cfg.Confirm.Timeout, "MONACO_CONFIRM_TIMEOUT")

	setStr(&cfg.Log.Level, "MONACO_LOG_LEVEL")
	setStr(&cfg.Log.Format, "MONACO_LOG_FORMAT")
	setStr(&cfg.Log.File, "MONACO_LOG_FILE")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
