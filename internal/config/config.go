// Package config resolves server configuration from environment variables
// and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Transport selects how the MCP server is exposed.
type Transport string

const (
	// TransportStdio serves MCP over stdin/stdout for desktop assistants.
	TransportStdio Transport = "stdio"

	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP Transport = "http"
)

// AuthStrategy identifies how the server authenticates to Monarch Money.
type AuthStrategy string

const (
	// AuthToken uses a pre-issued API token.
	AuthToken AuthStrategy = "token"

	// AuthCredentials logs in with email and password.
	AuthCredentials AuthStrategy = "credentials"

	// AuthSession relies on a session persisted by a previous login
	// (for example via the login-setup helper).
	AuthSession AuthStrategy = "session"
)

// Defaults matching the container contract.
const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 8080
	DefaultPath = "/mcp"

	DefaultSessionFile = ".monarch/session.db"
)

// Environment variables read by Load.
const (
	EnvToken       = "MONARCH_TOKEN"
	EnvEmail       = "MONARCH_EMAIL"
	EnvPassword    = "MONARCH_PASSWORD"
	EnvMFASecret   = "MONARCH_MFA_SECRET"
	EnvBaseURL     = "MONARCH_BASE_URL"
	EnvSessionFile = "MONARCH_SESSION_FILE"
	EnvSentryDSN   = "SENTRY_DSN"
	EnvLogLevel    = "LOG_LEVEL"
)

// Config is the resolved server configuration.
type Config struct {
	Transport Transport
	Host      string
	Port      int
	Path      string

	Strategy  AuthStrategy
	Token     string
	Email     string
	Password  string
	MFASecret string

	BaseURL     string
	SessionFile string
	SentryDSN   string
	LogLevel    string
}

// Load resolves configuration from the environment. Flag values already
// parsed by the CLI are passed in and win over defaults.
func Load(transport, host string, port int, path string, sessionFile string) (*Config, error) {
	cfg := &Config{
		Host:        host,
		Port:        port,
		Path:        path,
		Token:       os.Getenv(EnvToken),
		Email:       os.Getenv(EnvEmail),
		Password:    os.Getenv(EnvPassword),
		MFASecret:   os.Getenv(EnvMFASecret),
		BaseURL:     os.Getenv(EnvBaseURL),
		SessionFile: sessionFile,
		SentryDSN:   os.Getenv(EnvSentryDSN),
		LogLevel:    os.Getenv(EnvLogLevel),
	}

	switch Transport(strings.ToLower(transport)) {
	case TransportStdio, "":
		cfg.Transport = TransportStdio
	case TransportHTTP:
		cfg.Transport = TransportHTTP
	default:
		return nil, errors.Errorf("unknown transport %q (expected %q or %q)", transport, TransportStdio, TransportHTTP)
	}

	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, errors.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		cfg.Path = "/" + cfg.Path
	}

	if cfg.SessionFile == "" {
		cfg.SessionFile = os.Getenv(EnvSessionFile)
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = DefaultSessionFile
	}

	strategy, err := resolveStrategy(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Strategy = strategy

	return cfg, nil
}

// resolveStrategy picks the authentication strategy from which credential
// variables are set. A token always wins over email/password. When neither
// is set the server falls back to a previously persisted session; whether
// one exists is only known once the session store is opened.
func resolveStrategy(cfg *Config) (AuthStrategy, error) {
	switch {
	case cfg.Token != "":
		return AuthToken, nil
	case cfg.Email != "" && cfg.Password != "":
		return AuthCredentials, nil
	case cfg.Email != "" || cfg.Password != "":
		return "", errors.Errorf("both %s and %s must be set for credential login", EnvEmail, EnvPassword)
	default:
		return AuthSession, nil
	}
}

// ListenAddr returns the host:port address for the HTTP transport.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
