// Package monarch is a service-oriented client for the Monarch Money
// GraphQL API.
package monarch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/monarchmcp/monarch-mcp-server/internal/graphql"
	"github.com/monarchmcp/monarch-mcp-server/internal/transport"
	internalTypes "github.com/monarchmcp/monarch-mcp-server/internal/types"
)

const (
	// DefaultBaseURL is the default Monarch Money API base URL
	DefaultBaseURL = internalTypes.DefaultBaseURL

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = internalTypes.DefaultTimeout
)

// Client is the Monarch Money API client
type Client struct {
	// Service interfaces
	Accounts     AccountService
	Transactions TransactionService
	Tags         TagService
	Budgets      BudgetService
	Cashflow     CashflowService
	Recurring    RecurringService
	Institutions InstitutionService
	Auth         AuthService

	// Internal fields
	baseURL     string
	httpClient  *http.Client
	transport   Transport
	options     *ClientOptions
	session     *Session
	queryLoader *graphql.QueryLoader
}

// ClientOptions configures the client
type ClientOptions struct {
	// BaseURL overrides the default API base URL
	BaseURL string

	// HTTPClient allows using a custom HTTP client
	HTTPClient *http.Client

	// Timeout sets the HTTP client timeout
	Timeout time.Duration

	// Token provides direct authentication token
	Token string

	// Logger for debug logging
	Logger Logger

	// RetryConfig configures retry behavior
	RetryConfig *internalTypes.RetryConfig

	// RateLimiter for rate limiting
	RateLimiter RateLimiter

	// Hooks for observability
	Hooks *internalTypes.Hooks

	// SentryDSN enables Sentry error tracking when set
	SentryDSN string
}

// Logger interface for logging
type Logger = internalTypes.Logger

// RateLimiter interface for rate limiting
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// Transport handles HTTP/GraphQL communication
type Transport interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error
	SetAuth(token string)
	SetSession(session *internalTypes.Session)
}

// NewClient creates a new Monarch Money client
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = &ClientOptions{}
	}

	if opts.SentryDSN != "" {
		sentryOpts := sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: "production",
		}
		if err := sentry.Init(sentryOpts); err != nil {
			// Error tracking is best effort, never fail client creation
			if opts.Logger != nil {
				opts.Logger.Error("Failed to initialize Sentry", "error", err)
			}
		}
	}

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if opts.Timeout > 0 {
		opts.HTTPClient.Timeout = opts.Timeout
	}

	trans := transport.NewGraphQLTransport(&transport.Options{
		BaseURL:     opts.BaseURL,
		HTTPClient:  opts.HTTPClient,
		RetryConfig: opts.RetryConfig,
		Logger:      opts.Logger,
		Hooks:       opts.Hooks,
	})

	if opts.Token != "" {
		trans.SetAuth(opts.Token)
	}

	c := &Client{
		baseURL:     opts.BaseURL,
		httpClient:  opts.HTTPClient,
		transport:   trans,
		options:     opts,
		queryLoader: graphql.NewQueryLoader(),
	}

	if opts.Token != "" {
		c.session = &Session{Token: opts.Token}
	}

	c.initServices()

	return c, nil
}

// NewClientWithToken creates a client with an auth token
func NewClientWithToken(token string) (*Client, error) {
	return NewClient(&ClientOptions{
		Token: token,
	})
}

// initServices initializes all service implementations
func (c *Client) initServices() {
	c.Accounts = &accountService{client: c}
	c.Transactions = newTransactionService(c)
	c.Tags = &tagService{client: c}
	c.Budgets = &budgetService{client: c}
	c.Cashflow = &cashflowService{client: c}
	c.Recurring = &recurringService{client: c}
	c.Institutions = &institutionService{client: c}
	c.Auth = newAuthService(c)
}

// SetToken sets the authentication token
func (c *Client) SetToken(token string) {
	c.transport.SetAuth(token)
	if c.session == nil {
		c.session = &Session{}
	}
	c.session.Token = token
}

// SetSession installs an existing session on the client and transport.
func (c *Client) SetSession(session *Session) {
	c.session = session
	c.transport.SetSession(&internalTypes.Session{
		Token:      session.Token,
		UserID:     session.UserID,
		Email:      session.Email,
		ExpiresAt:  session.ExpiresAt,
		DeviceUUID: session.DeviceUUID,
	})
}

// GetSession returns the current session
func (c *Client) GetSession() *Session {
	return c.session
}

// loadQuery loads a GraphQL query from the embedded filesystem
func (c *Client) loadQuery(queryPath string) string {
	query, err := c.queryLoader.Load(queryPath)
	if err != nil {
		// Queries are embedded, a missing one is a programming error
		panic(fmt.Sprintf("failed to load query %s: %v", queryPath, err))
	}
	return query
}

// executeGraphQL executes a GraphQL query with rate limiting, hooks and
// Sentry capture applied.
func (c *Client) executeGraphQL(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	if c.options.RateLimiter != nil {
		if err := c.options.RateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := time.Now()
	err := c.transport.Execute(ctx, query, variables, result)
	duration := time.Since(start)

	if err != nil && c.options.SentryDSN != "" {
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("graphql.operation", extractOperationName(query))
			scope.SetContext("graphql", map[string]interface{}{
				"variables": variables,
				"duration":  duration.String(),
			})
			sentry.CaptureException(err)
		})
	}

	if err != nil && c.options.Hooks != nil && c.options.Hooks.OnError != nil {
		c.options.Hooks.OnError(ctx, err)
	}

	return err
}

// Close flushes any pending Sentry events and performs cleanup
func (c *Client) Close() {
	if c.options.SentryDSN != "" {
		sentry.Flush(2 * time.Second)
	}
}

// extractOperationName extracts the GraphQL operation name from a query
// document ("query GetAccounts {" -> "GetAccounts").
func extractOperationName(query string) string {
	for _, prefix := range []string{"query ", "mutation ", "subscription "} {
		if name := operationNameAfter(query, prefix); name != "" {
			return name
		}
	}
	return "unknown"
}

func operationNameAfter(query, prefix string) string {
	for idx := 0; ; {
		pos := indexFrom(query, prefix, idx)
		if pos == -1 {
			return ""
		}

		start := pos + len(prefix)
		end := start
		for end < len(query) {
			ch := query[end]
			if ch == ' ' || ch == '(' || ch == '{' || ch == '\n' || ch == '\r' {
				break
			}
			end++
		}

		if end > start {
			name := query[start:end]
			if isLetter(name[0]) || name[0] == '_' {
				return name
			}
		}

		idx = pos + 1
	}
}

func indexFrom(s, substr string, start int) int {
	if start >= len(s) {
		return -1
	}
	for i := start; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
