// Package config holds the settings of the monaco-outcomes CLI and the
// helpers to load them from TOML, .env and MONACO_* variables.
package config

import (
	"fmt"
	"strings"
	"time"

	monaco "github.com/krazyTry/monaco-go/gen/monaco_protocol"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type Config struct {
	RPC     RPCConfig     `toml:"rpc"`
	Program ProgramConfig `toml:"program"`
	Wallet  WalletConfig  `toml:"wallet"`
	Confirm ConfirmConfig `toml:"confirm"`
	Log     LogConfig     `toml:"log"`
}

type RPCConfig struct {
	Endpoint   string `toml:"endpoint"`
	WsEndpoint string `toml:"ws_endpoint"`
	Commitment string `toml:"commitment"`
}

type ProgramConfig struct {
	ProgramID   string `toml:"program_id"`
	VerifyIndex bool   `toml:"verify_index"`
}

// WalletConfig points at a solana-keygen JSON keypair of a MARKET operator.
type WalletConfig struct {
	KeypairPath string `toml:"keypair_path"`
}

type ConfirmConfig struct {
	Mode         string   `toml:"mode"` // poll or ws
	PollInterval duration `toml:"poll_interval"`
	Timeout      duration `toml:"timeout"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"`
	Compress   bool   `toml:"compress"`
}

// duration wraps time.Duration so TOML strings like "500ms" decode.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func Defaults() Config {
	return Config{
		RPC: RPCConfig{
			Endpoint:   rpc.MainNetBeta_RPC,
			WsEndpoint: rpc.MainNetBeta_WS,
			Commitment: string(rpc.CommitmentConfirmed),
		},
		Program: ProgramConfig{
			ProgramID: monaco.ProgramID.String(),
		},
		Wallet: WalletConfig{
			KeypairPath: "~/.config/solana/id.json",
		},
		Confirm: ConfirmConfig{
			Mode:         "poll",
			PollInterval: duration{500 * time.Millisecond},
			Timeout:      duration{90 * time.Second},
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

var (
	validCommitments = map[string]bool{
		string(rpc.CommitmentProcessed): true,
		string(rpc.CommitmentConfirmed): true,
		string(rpc.CommitmentFinalized): true,
	}
	validConfirmModes = map[string]bool{"poll": true, "ws": true}
	validLogLevels    = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats   = map[string]bool{"text": true, "json": true}
)

func (c *Config) Validate() error {
	var errs []string

	if c.RPC.Endpoint == "" {
		errs = append(errs, "rpc: endpoint must not be empty")
	}
	if !validCommitments[c.RPC.Commitment] {
		errs = append(errs, fmt.Sprintf("rpc: unknown commitment %q (valid: processed, confirmed, finalized)", c.RPC.Commitment))
	}
	if _, err := solana.PublicKeyFromBase58(c.Program.ProgramID); err != nil {
		errs = append(errs, fmt.Sprintf("program: invalid program_id %q: %v", c.Program.ProgramID, err))
	}
	if c.Wallet.KeypairPath == "" {
		errs = append(errs, "wallet: keypair_path must not be empty")
	}

	if !validConfirmModes[c.Confirm.Mode] {
		errs = append(errs, fmt.Sprintf("confirm: unknown mode %q (valid: poll, ws)", c.Confirm.Mode))
	}
	if c.Confirm.Mode == "ws" && c.RPC.WsEndpoint == "" {
		errs = append(errs, "confirm: mode ws requires rpc.ws_endpoint")
	}
	if c.Confirm.PollInterval.Duration <= 0 {
		errs = append(errs, "confirm: poll_interval must be positive")
	}
	if c.Confirm.Timeout.Duration < 0 {
		errs = append(errs, "confirm: timeout must not be negative")
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log: unknown level %q (valid: debug, info, warn, error)", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log: unknown format %q (valid: text, json)", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ProgramPublicKey returns the configured program id. Call after Validate.
func (c *Config) ProgramPublicKey() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(c.Program.ProgramID)
}

func (c *Config) CommitmentType() rpc.CommitmentType {
	return rpc.CommitmentType(c.RPC.Commitment)
}
