// Command login-setup performs an interactive Monarch Money login and
// persists the resulting session so monarch-mcp-server can start without
// credentials in its environment.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/monarchmcp/monarch-mcp-server/internal/config"
	"github.com/monarchmcp/monarch-mcp-server/internal/logging"
	"github.com/monarchmcp/monarch-mcp-server/internal/session"
	"github.com/monarchmcp/monarch-mcp-server/internal/types"
	"github.com/monarchmcp/monarch-mcp-server/pkg/monarch"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var flagSessionFile string

func main() {
	rootCmd := &cobra.Command{
		Use:          "login-setup",
		Short:        "Log in to Monarch Money and save the session",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	rootCmd.Flags().StringVar(&flagSessionFile, "session-file", config.DefaultSessionFile, "Path to the session database")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	reader := bufio.NewReader(os.Stdin)

	email, err := prompt(reader, "Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return errors.New("email is required")
	}

	password, err := promptSecret("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password is required")
	}

	client, err := monarch.NewClient(&monarch.ClientOptions{
		BaseURL: os.Getenv(config.EnvBaseURL),
	})
	if err != nil {
		return errors.Wrap(err, "failed to initialize Monarch Money client")
	}
	defer client.Close()

	err = client.Auth.Login(ctx, email, password)
	if errors.Is(err, types.ErrMFARequired) {
		code, promptErr := prompt(reader, "MFA code: ")
		if promptErr != nil {
			return promptErr
		}
		err = client.Auth.LoginWithMFA(ctx, email, password, code)
	}
	if err != nil {
		return errors.Wrap(err, "login failed")
	}

	sess := client.GetSession()
	if sess == nil || sess.Token == "" {
		return errors.New("login succeeded but no session was returned")
	}

	logger := logging.New(os.Getenv(config.EnvLogLevel))
	store, err := session.Open(flagSessionFile, logger)
	if err != nil {
		return errors.Wrap(err, "failed to open session store")
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
		return errors.Wrap(err, "failed to save session")
	}

	fmt.Printf("Session saved to %s\n", flagSessionFile)
	fmt.Println("monarch-mcp-server will now start without credentials in its environment.")
	return nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "failed to read input")
	}
	return strings.TrimSpace(line), nil
}

func promptSecret(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", errors.Wrap(err, "failed to read input")
	}
	return strings.TrimSpace(string(raw)), nil
}
