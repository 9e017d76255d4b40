package monarch

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// transactionService implements the TransactionService interface
type transactionService struct {
	client     *Client
	categories CategoryService
}

// newTransactionService creates a new transaction service
func newTransactionService(client *Client) *transactionService {
	return &transactionService{
		client:     client,
		categories: &categoryService{client: client},
	}
}

// Query returns a transaction query builder
func (s *transactionService) Query() TransactionQueryBuilder {
	return &transactionQueryBuilder{
		client:  s.client,
		filters: make(map[string]interface{}),
		limit:   100,
	}
}

// Get retrieves a single transaction
func (s *transactionService) Get(ctx context.Context, transactionID string) (*Transaction, error) {
	query := s.client.loadQuery("transactions/get.graphql")

	variables := map[string]interface{}{
		"id": transactionID,
	}

	var result struct {
		GetTransaction *Transaction `json:"getTransaction"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	if result.GetTransaction == nil {
		return nil, ErrNotFound
	}

	return result.GetTransaction, nil
}

// Categories returns the category sub-service
func (s *transactionService) Categories() CategoryService {
	return s.categories
}

// transactionQueryBuilder implements TransactionQueryBuilder
type transactionQueryBuilder struct {
	client  *Client
	filters map[string]interface{}
	limit   int
	offset  int
}

// Between sets date range filter
func (b *transactionQueryBuilder) Between(start, end time.Time) TransactionQueryBuilder {
	b.filters["startDate"] = start.Format("2006-01-02")
	b.filters["endDate"] = end.Format("2006-01-02")
	return b
}

// WithAccounts filters by account IDs
func (b *transactionQueryBuilder) WithAccounts(accountIDs ...string) TransactionQueryBuilder {
	b.filters["accounts"] = accountIDs
	return b
}

// WithCategories filters by category IDs
func (b *transactionQueryBuilder) WithCategories(categoryIDs ...string) TransactionQueryBuilder {
	b.filters["categories"] = categoryIDs
	return b
}

// WithTags filters by tag IDs
func (b *transactionQueryBuilder) WithTags(tagIDs ...string) TransactionQueryBuilder {
	b.filters["tags"] = tagIDs
	return b
}

// Search sets search filter
func (b *transactionQueryBuilder) Search(query string) TransactionQueryBuilder {
	b.filters["search"] = query
	return b
}

// Limit sets result limit
func (b *transactionQueryBuilder) Limit(limit int) TransactionQueryBuilder {
	b.limit = limit
	return b
}

// Offset sets result offset
func (b *transactionQueryBuilder) Offset(offset int) TransactionQueryBuilder {
	b.offset = offset
	return b
}

// Execute runs the query
func (b *transactionQueryBuilder) Execute(ctx context.Context) (*TransactionList, error) {
	query := b.client.loadQuery("transactions/list.graphql")

	variables := map[string]interface{}{
		"offset":  b.offset,
		"limit":   b.limit,
		"filters": b.filters,
		"orderBy": "date",
	}

	var result struct {
		AllTransactions struct {
			TotalCount int            `json:"totalCount"`
			Results    []*Transaction `json:"results"`
		} `json:"allTransactions"`
	}

	if err := b.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get transactions")
	}

	return &TransactionList{
		Transactions: result.AllTransactions.Results,
		TotalCount:   result.AllTransactions.TotalCount,
		HasMore:      (b.offset + b.limit) < result.AllTransactions.TotalCount,
		NextOffset:   b.offset + b.limit,
	}, nil
}

// categoryService implements CategoryService
type categoryService struct {
	client *Client
}

// List retrieves all categories
func (s *categoryService) List(ctx context.Context) ([]*Category, error) {
	query := s.client.loadQuery("transactions/categories.graphql")

	var result struct {
		Categories []*Category `json:"categories"`
	}

	if err := s.client.executeGraphQL(ctx, query, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get transaction categories")
	}

	return result.Categories, nil
}

// GetGroups retrieves category groups
func (s *categoryService) GetGroups(ctx context.Context) ([]*CategoryGroup, error) {
	query := s.client.loadQuery("transactions/category_groups.graphql")

	var result struct {
		CategoryGroups []*CategoryGroup `json:"categoryGroups"`
	}

	if err := s.client.executeGraphQL(ctx, query, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get category groups")
	}

	return result.CategoryGroups, nil
}
