package server

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/monarchmcp/monarch-mcp-server/pkg/monarch"
)

// monarchTools holds the Monarch Money client and implements all tool handlers
type monarchTools struct {
	client *monarch.Client
}

func registerTools(server *mcp.Server, client *monarch.Client) {
	tools := &monarchTools{client: client}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_accounts",
		Description: "Get all accounts with their current balances, types, and institution information.",
	}, tools.GetAccounts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transactions",
		Description: "Query transactions with optional filters for date range, account, category, and limit. Returns transaction details including date, amount, merchant, category, and notes.",
	}, tools.GetTransactions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_budget",
		Description: "Get budget information for a specific month, including rollover amounts. Returns budget entries with category names, budgeted amounts, actual spending, remaining amounts, and rollover data.",
	}, tools.GetBudget)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_categories",
		Description: "Get all available transaction categories organized by groups.",
	}, tools.GetCategories)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_tags",
		Description: "Get all available transaction tags.",
	}, tools.GetTags)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_cashflow",
		Description: "Get cashflow analysis for a date range, including total income, total expenses, net cashflow, and a per-category breakdown. Defaults to the last 30 days.",
	}, tools.GetCashflow)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_recurring",
		Description: "Get upcoming recurring transactions such as subscriptions and bills, with amounts, frequencies, and next charge dates.",
	}, tools.GetRecurring)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refresh_accounts",
		Description: "Request a data refresh from financial institutions for the given accounts, or all accounts when none are specified.",
	}, tools.RefreshAccounts)
}

// GetAccounts tool - retrieves all accounts
type GetAccountsInput struct {
	// No input parameters needed
}

type AccountEntry struct {
	ID                string  `json:"id" jsonschema:"Account ID"`
	Name              string  `json:"name" jsonschema:"Account display name"`
	Balance           float64 `json:"balance" jsonschema:"Current account balance"`
	Type              string  `json:"type" jsonschema:"Account type (e.g. checking, savings, credit)"`
	Subtype           string  `json:"subtype,omitempty" jsonschema:"Account subtype"`
	Institution       string  `json:"institution,omitempty" jsonschema:"Financial institution name"`
	IsHidden          bool    `json:"isHidden" jsonschema:"Whether account is hidden"`
	IncludeInNetWorth bool    `json:"includeInNetWorth" jsonschema:"Whether account is included in net worth calculation"`
}

type GetAccountsOutput struct {
	Accounts []AccountEntry `json:"accounts" jsonschema:"List of all accounts"`
	Count    int            `json:"count" jsonschema:"Number of accounts"`
}

func (t *monarchTools) GetAccounts(ctx context.Context, req *mcp.CallToolRequest, input GetAccountsInput) (*mcp.CallToolResult, GetAccountsOutput, error) {
	accounts, err := t.client.Accounts.List(ctx)
	if err != nil {
		return nil, GetAccountsOutput{}, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	var entries []AccountEntry
	for _, acc := range accounts {
		entry := AccountEntry{
			ID:                acc.ID,
			Name:              acc.DisplayName,
			Balance:           acc.DisplayBalance,
			IsHidden:          acc.IsHidden,
			IncludeInNetWorth: acc.IncludeInNetWorth,
		}

		if acc.Type != nil {
			entry.Type = acc.Type.Name
		}

		if acc.Subtype != nil {
			entry.Subtype = acc.Subtype.Name
		}

		if acc.Institution != nil {
			entry.Institution = acc.Institution.Name
		}

		entries = append(entries, entry)
	}

	return nil, GetAccountsOutput{
		Accounts: entries,
		Count:    len(entries),
	}, nil
}

// GetTransactions tool - queries transactions with optional filters
type GetTransactionsInput struct {
	StartDate string `json:"startDate,omitempty" jsonschema:"Start date in YYYY-MM-DD format (optional)"`
	EndDate   string `json:"endDate,omitempty" jsonschema:"End date in YYYY-MM-DD format (optional)"`
	AccountID string `json:"accountId,omitempty" jsonschema:"Filter by account ID (optional)"`
	Category  string `json:"category,omitempty" jsonschema:"Filter by category name (optional)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of transactions to return (default: 50)"`
}

type TransactionEntry struct {
	ID       string    `json:"id" jsonschema:"Transaction ID"`
	Date     time.Time `json:"date" jsonschema:"Transaction date"`
	Amount   float64   `json:"amount" jsonschema:"Transaction amount (negative for expenses)"`
	Merchant string    `json:"merchant" jsonschema:"Merchant name"`
	Category string    `json:"category,omitempty" jsonschema:"Transaction category"`
	Account  string    `json:"account" jsonschema:"Account name"`
	Notes    string    `json:"notes,omitempty" jsonschema:"Transaction notes"`
	Pending  bool      `json:"pending" jsonschema:"Whether transaction is pending"`
	Tags     []string  `json:"tags,omitempty" jsonschema:"Transaction tags"`
}

type GetTransactionsOutput struct {
	Transactions []TransactionEntry `json:"transactions" jsonschema:"List of transactions"`
	Count        int                `json:"count" jsonschema:"Number of transactions returned"`
	HasMore      bool               `json:"hasMore" jsonschema:"Whether more transactions are available beyond the limit"`
}

func (t *monarchTools) GetTransactions(ctx context.Context, req *mcp.CallToolRequest, input GetTransactionsInput) (*mcp.CallToolResult, GetTransactionsOutput, error) {
	query := t.client.Transactions.Query()

	if input.StartDate != "" || input.EndDate != "" {
		var startDate, endDate time.Time
		var err error

		if input.StartDate != "" {
			startDate, err = time.Parse("2006-01-02", input.StartDate)
			if err != nil {
				return nil, GetTransactionsOutput{}, fmt.Errorf("invalid startDate format (expected YYYY-MM-DD): %w", err)
			}
		}

		if input.EndDate != "" {
			endDate, err = time.Parse("2006-01-02", input.EndDate)
			if err != nil {
				return nil, GetTransactionsOutput{}, fmt.Errorf("invalid endDate format (expected YYYY-MM-DD): %w", err)
			}
		}

		switch {
		case !startDate.IsZero() && !endDate.IsZero():
			query = query.Between(startDate, endDate)
		case !startDate.IsZero():
			// Start date only - go to today
			query = query.Between(startDate, time.Now())
		case !endDate.IsZero():
			// End date only - go back 30 days
			query = query.Between(endDate.AddDate(0, 0, -30), endDate)
		}
	}

	if input.AccountID != "" {
		query = query.WithAccounts(input.AccountID)
	}

	// Apply limit (default to 50)
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}
	query = query.Limit(limit)

	result, err := query.Execute(ctx)
	if err != nil {
		return nil, GetTransactionsOutput{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	// The API filters by category ID only, so name filtering happens here
	var transactions []TransactionEntry
	for _, tx := range result.Transactions {
		if input.Category != "" {
			if tx.Category == nil || tx.Category.Name != input.Category {
				continue
			}
		}

		entry := TransactionEntry{
			ID:      tx.ID,
			Date:    tx.Date.Time,
			Amount:  tx.Amount,
			Pending: tx.Pending,
			Notes:   tx.Notes,
		}

		if tx.Merchant != nil {
			entry.Merchant = tx.Merchant.Name
		}

		if tx.Category != nil {
			entry.Category = tx.Category.Name
		}

		if tx.Account != nil {
			entry.Account = tx.Account.DisplayName
		}

		for _, tag := range tx.Tags {
			entry.Tags = append(entry.Tags, tag.Name)
		}

		transactions = append(transactions, entry)
	}

	return nil, GetTransactionsOutput{
		Transactions: transactions,
		Count:        len(transactions),
		HasMore:      result.HasMore,
	}, nil
}

// GetBudget tool - retrieves budget information for a specific month
type GetBudgetInput struct {
	Month string `json:"month" jsonschema:"Month in YYYY-MM format (e.g. 2025-10)"`
}

type BudgetEntry struct {
	Category       string  `json:"category" jsonschema:"Budget category name"`
	Group          string  `json:"group" jsonschema:"Budget category group"`
	Budgeted       float64 `json:"budgeted" jsonschema:"Budgeted amount for this category"`
	Spent          float64 `json:"spent" jsonschema:"Actual amount spent"`
	Remaining      float64 `json:"remaining" jsonschema:"Remaining budget amount"`
	RolloverAmount float64 `json:"rolloverAmount" jsonschema:"Amount rolled over from previous month"`
	RolloverType   string  `json:"rolloverType,omitempty" jsonschema:"Type of rollover (if applicable)"`
	Percentage     float64 `json:"percentage" jsonschema:"Percentage of budget spent"`
}

type GetBudgetOutput struct {
	Month   string        `json:"month" jsonschema:"Month of the budget data"`
	Budgets []BudgetEntry `json:"budgets" jsonschema:"List of budget entries for each category"`
}

func (t *monarchTools) GetBudget(ctx context.Context, req *mcp.CallToolRequest, input GetBudgetInput) (*mcp.CallToolResult, GetBudgetOutput, error) {
	startDate, err := time.Parse("2006-01", input.Month)
	if err != nil {
		return nil, GetBudgetOutput{}, fmt.Errorf("invalid month format (expected YYYY-MM): %w", err)
	}

	// Last day of the month
	endDate := startDate.AddDate(0, 1, -1)

	budgets, err := t.client.Budgets.List(ctx, startDate, endDate)
	if err != nil {
		return nil, GetBudgetOutput{}, fmt.Errorf("failed to fetch budgets: %w", err)
	}

	var entries []BudgetEntry
	for _, b := range budgets {
		entry := BudgetEntry{
			Budgeted:       b.Amount,
			Spent:          b.Spent,
			Remaining:      b.Remaining,
			RolloverAmount: b.RolloverAmount,
			RolloverType:   b.RolloverType,
			Percentage:     b.PercentageComplete,
		}

		if b.Category != nil {
			entry.Category = b.Category.Name
			if b.Category.Group != nil {
				entry.Group = b.Category.Group.Name
			}
		}

		entries = append(entries, entry)
	}

	return nil, GetBudgetOutput{
		Month:   input.Month,
		Budgets: entries,
	}, nil
}

// GetCategories tool - retrieves all transaction categories
type GetCategoriesInput struct {
	// No input parameters needed
}

type CategoryEntry struct {
	ID               string `json:"id" jsonschema:"Category ID"`
	Name             string `json:"name" jsonschema:"Category name"`
	Group            string `json:"group" jsonschema:"Category group name"`
	IsSystemCategory bool   `json:"isSystemCategory" jsonschema:"Whether this is a system category"`
	IsDisabled       bool   `json:"isDisabled" jsonschema:"Whether category is disabled"`
}

type GetCategoriesOutput struct {
	Categories []CategoryEntry `json:"categories" jsonschema:"List of all categories"`
	Count      int             `json:"count" jsonschema:"Number of categories"`
}

func (t *monarchTools) GetCategories(ctx context.Context, req *mcp.CallToolRequest, input GetCategoriesInput) (*mcp.CallToolResult, GetCategoriesOutput, error) {
	categories, err := t.client.Transactions.Categories().List(ctx)
	if err != nil {
		return nil, GetCategoriesOutput{}, fmt.Errorf("failed to fetch categories: %w", err)
	}

	var entries []CategoryEntry
	for _, cat := range categories {
		entry := CategoryEntry{
			ID:               cat.ID,
			Name:             cat.Name,
			IsSystemCategory: cat.IsSystemCategory,
			IsDisabled:       cat.IsDisabled,
		}

		if cat.Group != nil {
			entry.Group = cat.Group.Name
		}

		entries = append(entries, entry)
	}

	return nil, GetCategoriesOutput{
		Categories: entries,
		Count:      len(entries),
	}, nil
}

// GetTags tool - retrieves all tags
type GetTagsInput struct {
	// No input parameters needed
}

type TagEntry struct {
	ID    string `json:"id" jsonschema:"Tag ID"`
	Name  string `json:"name" jsonschema:"Tag name"`
	Color string `json:"color,omitempty" jsonschema:"Tag color (hex code)"`
	Order int    `json:"order" jsonschema:"Tag display order"`
}

type GetTagsOutput struct {
	Tags  []TagEntry `json:"tags" jsonschema:"List of all tags"`
	Count int        `json:"count" jsonschema:"Number of tags"`
}

func (t *monarchTools) GetTags(ctx context.Context, req *mcp.CallToolRequest, input GetTagsInput) (*mcp.CallToolResult, GetTagsOutput, error) {
	tags, err := t.client.Tags.List(ctx)
	if err != nil {
		return nil, GetTagsOutput{}, fmt.Errorf("failed to fetch tags: %w", err)
	}

	var entries []TagEntry
	for _, tag := range tags {
		entries = append(entries, TagEntry{
			ID:    tag.ID,
			Name:  tag.Name,
			Color: tag.Color,
			Order: tag.Order,
		})
	}

	return nil, GetTagsOutput{
		Tags:  entries,
		Count: len(entries),
	}, nil
}

// GetCashflow tool - retrieves cashflow analysis for a date range
type GetCashflowInput struct {
	StartDate string `json:"startDate,omitempty" jsonschema:"Start date in YYYY-MM-DD format (optional, defaults to 30 days ago)"`
	EndDate   string `json:"endDate,omitempty" jsonschema:"End date in YYYY-MM-DD format (optional, defaults to today)"`
}

type CashflowCategoryEntry struct {
	Category string  `json:"category" jsonschema:"Category name"`
	Group    string  `json:"group,omitempty" jsonschema:"Category group name"`
	Amount   float64 `json:"amount" jsonschema:"Total amount for this category"`
	Count    int     `json:"count" jsonschema:"Number of transactions in this category"`
}

type GetCashflowOutput struct {
	StartDate  string                  `json:"startDate" jsonschema:"Start of the analyzed period"`
	EndDate    string                  `json:"endDate" jsonschema:"End of the analyzed period"`
	Income     float64                 `json:"income" jsonschema:"Total income for the period"`
	Expenses   float64                 `json:"expenses" jsonschema:"Total expenses for the period"`
	Net        float64                 `json:"net" jsonschema:"Net cashflow (income minus expenses)"`
	ByCategory []CashflowCategoryEntry `json:"byCategory" jsonschema:"Cashflow broken down by category"`
}

func (t *monarchTools) GetCashflow(ctx context.Context, req *mcp.CallToolRequest, input GetCashflowInput) (*mcp.CallToolResult, GetCashflowOutput, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30)

	var err error
	if input.StartDate != "" {
		startDate, err = time.Parse("2006-01-02", input.StartDate)
		if err != nil {
			return nil, GetCashflowOutput{}, fmt.Errorf("invalid startDate format (expected YYYY-MM-DD): %w", err)
		}
	}

	if input.EndDate != "" {
		endDate, err = time.Parse("2006-01-02", input.EndDate)
		if err != nil {
			return nil, GetCashflowOutput{}, fmt.Errorf("invalid endDate format (expected YYYY-MM-DD): %w", err)
		}
	}

	cashflow, err := t.client.Cashflow.Get(ctx, &monarch.CashflowParams{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, GetCashflowOutput{}, fmt.Errorf("failed to fetch cashflow: %w", err)
	}

	var byCategory []CashflowCategoryEntry
	for _, c := range cashflow.ByCategory {
		entry := CashflowCategoryEntry{
			Amount: c.Amount,
			Count:  c.Count,
		}

		if c.Category != nil {
			entry.Category = c.Category.Name
			if c.Category.Group != nil {
				entry.Group = c.Category.Group.Name
			}
		}

		byCategory = append(byCategory, entry)
	}

	return nil, GetCashflowOutput{
		StartDate:  startDate.Format("2006-01-02"),
		EndDate:    endDate.Format("2006-01-02"),
		Income:     cashflow.Income,
		Expenses:   cashflow.Expenses,
		Net:        cashflow.NetCashflow,
		ByCategory: byCategory,
	}, nil
}

// GetRecurring tool - retrieves upcoming recurring transactions
type GetRecurringInput struct {
	Days int `json:"days,omitempty" jsonschema:"Number of days to look ahead (default: 30)"`
}

type RecurringEntry struct {
	ID        string  `json:"id" jsonschema:"Recurring transaction ID"`
	Merchant  string  `json:"merchant" jsonschema:"Merchant name"`
	Amount    float64 `json:"amount" jsonschema:"Expected amount (negative for expenses)"`
	Frequency string  `json:"frequency" jsonschema:"How often the transaction recurs"`
	NextDate  string  `json:"nextDate" jsonschema:"Next expected date in YYYY-MM-DD format"`
	Category  string  `json:"category,omitempty" jsonschema:"Transaction category"`
	Account   string  `json:"account,omitempty" jsonschema:"Account the transaction posts to"`
}

type GetRecurringOutput struct {
	Recurring []RecurringEntry `json:"recurring" jsonschema:"List of upcoming recurring transactions"`
	Count     int              `json:"count" jsonschema:"Number of recurring transactions"`
}

func (t *monarchTools) GetRecurring(ctx context.Context, req *mcp.CallToolRequest, input GetRecurringInput) (*mcp.CallToolResult, GetRecurringOutput, error) {
	days := input.Days
	if days <= 0 {
		days = 30
	}

	start := time.Now()
	recurring, err := t.client.Recurring.ListWithDateRange(ctx, start, start.AddDate(0, 0, days))
	if err != nil {
		return nil, GetRecurringOutput{}, fmt.Errorf("failed to fetch recurring transactions: %w", err)
	}

	var entries []RecurringEntry
	for _, r := range recurring {
		entry := RecurringEntry{
			ID:        r.ID,
			Amount:    r.Amount,
			Frequency: r.Frequency,
			NextDate:  r.NextDate.String(),
		}

		if r.Merchant != nil {
			entry.Merchant = r.Merchant.Name
		}

		if r.Category != nil {
			entry.Category = r.Category.Name
		}

		if r.Account != nil {
			entry.Account = r.Account.DisplayName
		}

		entries = append(entries, entry)
	}

	return nil, GetRecurringOutput{
		Recurring: entries,
		Count:     len(entries),
	}, nil
}

// RefreshAccounts tool - triggers a data-provider refresh
type RefreshAccountsInput struct {
	AccountIDs []string `json:"accountIds,omitempty" jsonschema:"Account IDs to refresh (optional, refreshes all accounts when empty)"`
}

type RefreshAccountsOutput struct {
	Requested int  `json:"requested" jsonschema:"Number of accounts the refresh was requested for"`
	Complete  bool `json:"complete" jsonschema:"Whether the refresh has already completed"`
}

func (t *monarchTools) RefreshAccounts(ctx context.Context, req *mcp.CallToolRequest, input RefreshAccountsInput) (*mcp.CallToolResult, RefreshAccountsOutput, error) {
	ids := input.AccountIDs
	if len(ids) == 0 {
		accounts, err := t.client.Accounts.List(ctx)
		if err != nil {
			return nil, RefreshAccountsOutput{}, fmt.Errorf("failed to fetch accounts: %w", err)
		}
		for _, acc := range accounts {
			ids = append(ids, acc.ID)
		}
	}

	if err := t.client.Accounts.Refresh(ctx, ids...); err != nil {
		return nil, RefreshAccountsOutput{}, fmt.Errorf("failed to request refresh: %w", err)
	}

	complete, err := t.client.Accounts.IsRefreshComplete(ctx, ids...)
	if err != nil {
		// Refresh was requested; completion status is best effort
		complete = false
	}

	return nil, RefreshAccountsOutput{
		Requested: len(ids),
		Complete:  complete,
	}, nil
}
