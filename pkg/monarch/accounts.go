package monarch

import (
	"context"

	"github.com/pkg/errors"
)

// accountService implements the AccountService interface
type accountService struct {
	client *Client
}

// List retrieves all accounts
func (s *accountService) List(ctx context.Context) ([]*Account, error) {
	query := s.client.loadQuery("accounts/list.graphql")

	var result struct {
		Accounts []*Account `json:"accounts"`
	}

	if err := s.client.executeGraphQL(ctx, query, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get accounts")
	}

	return result.Accounts, nil
}

// Get retrieves a single account by ID
func (s *accountService) Get(ctx context.Context, accountID string) (*Account, error) {
	accounts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, account := range accounts {
		if account.ID == accountID {
			return account, nil
		}
	}

	return nil, ErrNotFound
}

// Refresh requests a data-provider refresh for the given accounts
func (s *accountService) Refresh(ctx context.Context, accountIDs ...string) error {
	query := s.client.loadQuery("accounts/refresh.graphql")

	// The mutation requires explicit account IDs
	if len(accountIDs) == 0 {
		accounts, err := s.List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to fetch accounts for refresh")
		}
		for _, acc := range accounts {
			accountIDs = append(accountIDs, acc.ID)
		}
	}

	variables := map[string]interface{}{
		"input": map[string]interface{}{
			"accountIds": accountIDs,
		},
	}

	var result struct {
		ForceRefreshAccounts struct {
			Success bool `json:"success"`
			Errors  []struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			} `json:"errors"`
		} `json:"forceRefreshAccounts"`
	}

	if err := s.client.executeGraphQL(ctx, query, variables, &result); err != nil {
		return errors.Wrap(err, "failed to request accounts refresh")
	}

	if len(result.ForceRefreshAccounts.Errors) > 0 {
		return &Error{
			Code:    result.ForceRefreshAccounts.Errors[0].Code,
			Message: result.ForceRefreshAccounts.Errors[0].Message,
		}
	}

	if !result.ForceRefreshAccounts.Success {
		return errors.New("refresh request was not accepted")
	}

	return nil
}

// IsRefreshComplete checks if refresh is complete for accounts
func (s *accountService) IsRefreshComplete(ctx context.Context, accountIDs ...string) (bool, error) {
	query := s.client.loadQuery("accounts/is_refresh_complete.graphql")

	var result struct {
		Accounts []struct {
			ID                string `json:"id"`
			HasSyncInProgress bool   `json:"hasSyncInProgress"`
		} `json:"accounts"`
	}

	if err := s.client.executeGraphQL(ctx, query, nil, &result); err != nil {
		return false, errors.Wrap(err, "failed to check refresh status")
	}

	wanted := make(map[string]bool, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = true
	}

	for _, account := range result.Accounts {
		if len(wanted) > 0 && !wanted[account.ID] {
			continue
		}
		if account.HasSyncInProgress {
			return false, nil
		}
	}

	return true, nil
}
