// Command monarch-mcp-server exposes Monarch Money financial data to AI
// assistants over the Model Context Protocol.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/monarchmcp/monarch-mcp-server/internal/config"
	"github.com/monarchmcp/monarch-mcp-server/internal/logging"
	"github.com/monarchmcp/monarch-mcp-server/internal/server"
	"github.com/monarchmcp/monarch-mcp-server/internal/session"
	"github.com/monarchmcp/monarch-mcp-server/internal/types"
	"github.com/monarchmcp/monarch-mcp-server/pkg/monarch"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	flagTransport   string
	flagHost        string
	flagPort        int
	flagPath        string
	flagSessionFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "monarch-mcp-server",
		Short: "MCP server for Monarch Money",
		Long: `Serves Monarch Money accounts, transactions, budgets, cashflow and
recurring transactions as MCP tools, over stdio for desktop assistants or
over streamable HTTP for remote clients.

Authentication is resolved from the environment: MONARCH_TOKEN wins over
MONARCH_EMAIL/MONARCH_PASSWORD, which win over a session persisted by a
previous login (see login-setup).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	rootCmd.Flags().StringVar(&flagTransport, "transport", string(config.TransportStdio), "MCP transport (stdio or http)")
	rootCmd.Flags().StringVar(&flagHost, "host", config.DefaultHost, "Bind address for the http transport")
	rootCmd.Flags().IntVar(&flagPort, "port", config.DefaultPort, "Listen port for the http transport")
	rootCmd.Flags().StringVar(&flagPath, "path", config.DefaultPath, "URL path the MCP endpoint is mounted at")
	rootCmd.Flags().StringVar(&flagSessionFile, "session-file", "", "Path to the session database (default "+config.DefaultSessionFile+")")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(flagTransport, flagHost, flagPort, flagPath, flagSessionFile)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel)
	logger.Info("Starting monarch-mcp-server",
		"version", server.Version,
		"transport", string(cfg.Transport),
		"auth", string(cfg.Strategy))

	client, err := monarch.NewClient(&monarch.ClientOptions{
		BaseURL:   cfg.BaseURL,
		Token:     cfg.Token,
		Logger:    logger,
		SentryDSN: cfg.SentryDSN,
	})
	if err != nil {
		return errors.Wrap(err, "failed to initialize Monarch Money client")
	}
	defer client.Close()

	if err := authenticate(ctx, cfg, client, logger); err != nil {
		return err
	}

	return server.New(client, logger).Run(ctx, cfg)
}

// authenticate establishes a Monarch Money session according to the
// configured strategy.
func authenticate(ctx context.Context, cfg *config.Config, client *monarch.Client, logger *logging.Logger) error {
	switch cfg.Strategy {
	case config.AuthToken:
		// Token was installed by NewClient
		return nil

	case config.AuthCredentials:
		if cfg.MFASecret != "" {
			err := client.Auth.LoginWithTOTP(ctx, cfg.Email, cfg.Password, cfg.MFASecret)
			if err != nil {
				return errors.Wrap(err, "login with TOTP failed")
			}
		} else {
			if err := client.Auth.Login(ctx, cfg.Email, cfg.Password); err != nil {
				if errors.Is(err, types.ErrMFARequired) {
					return errors.New("account requires MFA: set MONARCH_MFA_SECRET or run login-setup")
				}
				return errors.Wrap(err, "login failed")
			}
		}
		persistSession(cfg, client, logger)
		return nil

	default:
		store, err := session.Open(cfg.SessionFile, logger)
		if err != nil {
			return errors.Wrap(err, "failed to open session store")
		}
		defer store.Close()

		sess, err := store.Resolve()
		if err != nil {
			if errors.Is(err, session.ErrNoSession) || errors.Is(err, types.ErrSessionExpired) {
				return errors.New("no credentials available: set MONARCH_TOKEN or MONARCH_EMAIL/MONARCH_PASSWORD, or run login-setup first")
			}
			return errors.Wrap(err, "failed to load stored session")
		}

		client.SetSession(&monarch.Session{
			Token:      sess.Token,
			UserID:     sess.UserID,
			Email:      sess.Email,
			ExpiresAt:  sess.ExpiresAt,
			DeviceUUID: sess.DeviceUUID,
		})
		return nil
	}
}

// persistSession saves the freshly established session so later runs can
// start without credentials. Best effort only.
func persistSession(cfg *config.Config, client *monarch.Client, logger *logging.Logger) {
	sess := client.GetSession()
	if sess == nil || sess.Token == "" {
		return
	}

	store, err := session.Open(cfg.SessionFile, logger)
	if err != nil {
		logger.Warn("Could not open session store, session not persisted", "error", err)
		return
	}
	defer store.Close()

	err = store.Save(&types.Session{
		Token:      sess.Token,
		UserID:     sess.UserID,
		Email:      sess.Email,
		ExpiresAt:  sess.ExpiresAt,
		DeviceUUID: sess.DeviceUUID,
	})
	if err != nil {
		logger.Warn("Could not persist session", "error", err)
	}
}
