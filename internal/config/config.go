// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"errors"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

// minJWTSecretLen is the minimum byte length accepted for the token signing
// secret. Shorter secrets make HS256 tokens forgeable in practice.
const minJWTSecretLen = 32

var ErrJWTSecretTooShort = errors.New("jwt secret must be at least 32 bytes")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	MaxBodySize int // in MB
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

// AuthConfig holds everything the credential and recovery flows need.
type AuthConfig struct { //nolint:govet // fieldalignment not critical
	JWTSecret     string        // HS256 signing secret, >= 32 bytes
	TokenDuration time.Duration // session token lifetime
	ChallengeTTL  time.Duration // recovery challenge lifetime
	ResetTokenTTL time.Duration // recovery reset token lifetime
	DecoyLimit    int           // max decoy options per recovery question
}

// SMTPConfig configures the reset notification mailer. Host left empty
// disables outgoing mail entirely.
type SMTPConfig struct { //nolint:govet // fieldalignment not critical
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

func NewFromCLI(cmd *cli.Command) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			MaxBodySize: int(cmd.Int("max-body-size")),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		Auth: AuthConfig{
			JWTSecret:     cmd.String("jwt-secret"),
			TokenDuration: time.Duration(cmd.Int("token-duration")) * time.Hour,
			ChallengeTTL:  time.Duration(cmd.Int("challenge-ttl")) * time.Minute,
			ResetTokenTTL: time.Duration(cmd.Int("reset-token-ttl")) * time.Minute,
			DecoyLimit:    int(cmd.Int("decoy-limit")),
		},
		SMTP: SMTPConfig{
			Host:     cmd.String("smtp-host"),
			Port:     int(cmd.Int("smtp-port")),
			Username: cmd.String("smtp-username"),
			Password: cmd.String("smtp-password"),
			From:     cmd.String("smtp-from"),
			FromName: cmd.String("smtp-from-name"),
			TLS:      cmd.Bool("smtp-tls"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the startup invariants that must hold before the server
// can safely accept traffic.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < minJWTSecretLen {
		return ErrJWTSecretTooShort
	}
	if c.Auth.TokenDuration <= 0 {
		return errors.New("token duration must be positive")
	}
	if c.Auth.ChallengeTTL <= 0 {
		return errors.New("challenge ttl must be positive")
	}
	if c.Auth.ResetTokenTTL <= 0 {
		return errors.New("reset token ttl must be positive")
	}
	if c.Auth.DecoyLimit < 0 {
		return errors.New("decoy limit must not be negative")
	}
	return nil
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   1,
			Usage:   "Maximum request body size in MB",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MAX_BODY_SIZE"), toml.TOML("server.max_body_size", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/convocatoria.db",
			Usage:   "Database DSN",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DSN"), toml.TOML("database.dsn", configFile)),
		},
		&cli.StringFlag{
			Name:    "jwt-secret",
			Usage:   "Secret for signing session tokens (min 32 bytes)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("JWT_SECRET"), toml.TOML("auth.jwt_secret", configFile)),
		},
		&cli.IntFlag{
			Name:    "token-duration",
			Value:   8,
			Usage:   "Session token lifetime in hours",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TOKEN_DURATION"), toml.TOML("auth.token_duration", configFile)),
		},
		&cli.IntFlag{
			Name:    "challenge-ttl",
			Value:   15,
			Usage:   "Recovery challenge lifetime in minutes",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CHALLENGE_TTL"), toml.TOML("auth.challenge_ttl", configFile)),
		},
		&cli.IntFlag{
			Name:    "reset-token-ttl",
			Value:   30,
			Usage:   "Recovery reset token lifetime in minutes",
			Sources: cli.NewValueSourceChain(cli.EnvVar("RESET_TOKEN_TTL"), toml.TOML("auth.reset_token_ttl", configFile)),
		},
		&cli.IntFlag{
			Name:    "decoy-limit",
			Value:   10,
			Usage:   "Maximum decoy options per recovery question",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DECOY_LIMIT"), toml.TOML("auth.decoy_limit", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-host",
			Usage:   "SMTP host for reset notifications (empty disables mail)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_HOST"), toml.TOML("smtp.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "smtp-port",
			Value:   587,
			Usage:   "SMTP port",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PORT"), toml.TOML("smtp.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-username",
			Usage:   "SMTP username",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_USERNAME"), toml.TOML("smtp.username", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-password",
			Usage:   "SMTP password",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_PASSWORD"), toml.TOML("smtp.password", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from",
			Usage:   "Sender address for outgoing mail",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM"), toml.TOML("smtp.from", configFile)),
		},
		&cli.StringFlag{
			Name:    "smtp-from-name",
			Usage:   "Sender display name for outgoing mail",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_FROM_NAME"), toml.TOML("smtp.from_name", configFile)),
		},
		&cli.BoolFlag{
			Name:    "smtp-tls",
			Value:   true,
			Usage:   "Require TLS for SMTP connections",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SMTP_TLS"), toml.TOML("smtp.tls", configFile)),
		},
	}
}
