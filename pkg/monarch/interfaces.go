package monarch

import (
	"context"
	"time"
)

// AccountService handles account-related operations
type AccountService interface {
	// List retrieves all accounts
	List(ctx context.Context) ([]*Account, error)

	// Get retrieves a single account by ID
	Get(ctx context.Context, accountID string) (*Account, error)

	// Refresh requests a data-provider refresh for the given accounts,
	// or all accounts when none are given
	Refresh(ctx context.Context, accountIDs ...string) error

	// IsRefreshComplete reports whether no sync is in progress for the
	// given accounts, or all accounts when none are given
	IsRefreshComplete(ctx context.Context, accountIDs ...string) (bool, error)
}

// TransactionService handles transaction-related operations
type TransactionService interface {
	// Query returns a transaction query builder
	Query() TransactionQueryBuilder

	// Get retrieves a single transaction
	Get(ctx context.Context, transactionID string) (*Transaction, error)

	// Categories returns the category sub-service
	Categories() CategoryService
}

// CategoryService handles transaction categories
type CategoryService interface {
	// List retrieves all categories
	List(ctx context.Context) ([]*Category, error)

	// GetGroups retrieves category groups
	GetGroups(ctx context.Context) ([]*CategoryGroup, error)
}

// TransactionQueryBuilder builds transaction queries
type TransactionQueryBuilder interface {
	Between(start, end time.Time) TransactionQueryBuilder
	WithAccounts(accountIDs ...string) TransactionQueryBuilder
	WithCategories(categoryIDs ...string) TransactionQueryBuilder
	WithTags(tagIDs ...string) TransactionQueryBuilder
	Search(query string) TransactionQueryBuilder
	Limit(limit int) TransactionQueryBuilder
	Offset(offset int) TransactionQueryBuilder

	// Execute runs the query
	Execute(ctx context.Context) (*TransactionList, error)
}

// TagService handles transaction tags
type TagService interface {
	// List retrieves all tags
	List(ctx context.Context) ([]*Tag, error)
}

// BudgetService handles budget operations
type BudgetService interface {
	// List retrieves budgets for a date range
	List(ctx context.Context, startDate, endDate time.Time) ([]*Budget, error)
}

// CashflowService handles cashflow analysis
type CashflowService interface {
	// Get retrieves cashflow data
	Get(ctx context.Context, params *CashflowParams) (*Cashflow, error)

	// GetSummary retrieves cashflow aggregated by interval
	GetSummary(ctx context.Context, params *CashflowSummaryParams) (*CashflowSummary, error)
}

// RecurringService handles recurring transactions
type RecurringService interface {
	// List retrieves recurring transactions for the next month
	List(ctx context.Context) ([]*RecurringTransaction, error)

	// ListWithDateRange retrieves recurring transactions for a date range
	ListWithDateRange(ctx context.Context, startDate, endDate time.Time) ([]*RecurringTransaction, error)
}

// InstitutionService handles financial institutions
type InstitutionService interface {
	// List retrieves connected institutions
	List(ctx context.Context) ([]*Institution, error)
}

// AuthService handles authentication
type AuthService interface {
	// Login performs email/password authentication
	Login(ctx context.Context, email, password string) error

	// LoginWithMFA performs login with a one-time MFA code
	LoginWithMFA(ctx context.Context, email, password, mfaCode string) error

	// LoginWithTOTP performs login deriving the MFA code from a TOTP secret
	LoginWithTOTP(ctx context.Context, email, password, totpSecret string) error

	// GetSession returns the current session
	GetSession() (*Session, error)
}
