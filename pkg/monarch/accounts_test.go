package monarch

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/monarchmcp/monarch-mcp-server/internal/graphql"
	internalTypes "github.com/monarchmcp/monarch-mcp-server/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransport is a mock implementation of the Transport interface
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Execute(ctx context.Context, query string, variables map[string]interface{}, result interface{}) error {
	args := m.Called(ctx, query, variables, result)

	// If mock provides result data, unmarshal it
	if args.Get(0) != nil {
		resultJSON := args.Get(0).(string)
		if err := json.Unmarshal([]byte(resultJSON), result); err != nil {
			return err
		}
	}

	return args.Error(1)
}

func (m *MockTransport) SetAuth(token string) {
	m.Called(token)
}

func (m *MockTransport) SetSession(session *internalTypes.Session) {
	m.Called(session)
}

// newTestClient wires a client around a mock transport.
func newTestClient(t *testing.T, mockTransport *MockTransport) *Client {
	t.Helper()

	client := &Client{
		transport:   mockTransport,
		queryLoader: graphql.NewQueryLoader(),
		options:     &ClientOptions{},
		baseURL:     "https://api.test.com",
	}
	client.initServices()

	return client
}

func TestAccountService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"accounts": [
			{
				"id": "acc-123",
				"displayName": "Test Checking",
				"currentBalance": 1500.50,
				"displayBalance": 1500.50,
				"isAsset": true,
				"type": {
					"name": "depository",
					"display": "Depository"
				},
				"institution": {
					"id": "inst-1",
					"name": "Test Bank"
				}
			},
			{
				"id": "acc-456",
				"displayName": "Test Savings",
				"currentBalance": 5000.00,
				"isAsset": true,
				"type": {
					"name": "depository",
					"display": "Depository"
				}
			}
		]
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	accounts, err := client.Accounts.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Equal(t, "acc-123", accounts[0].ID)
	assert.Equal(t, "Test Checking", accounts[0].DisplayName)
	assert.Equal(t, 1500.50, accounts[0].CurrentBalance)
	assert.Equal(t, "Test Bank", accounts[0].Institution.Name)

	mockTransport.AssertExpectations(t)
}

func TestAccountService_Get(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"accounts": [
			{"id": "acc-123", "displayName": "Test Checking"},
			{"id": "acc-456", "displayName": "Test Savings"}
		]
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	account, err := client.Accounts.Get(context.Background(), "acc-456")
	require.NoError(t, err)
	assert.Equal(t, "Test Savings", account.DisplayName)

	_, err = client.Accounts.Get(context.Background(), "acc-999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountService_Refresh(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"forceRefreshAccounts": {
			"success": true,
			"errors": []
		}
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(variables map[string]interface{}) bool {
			input, ok := variables["input"].(map[string]interface{})
			if !ok {
				return false
			}
			ids, ok := input["accountIds"].([]string)
			return ok && len(ids) == 2
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	err := client.Accounts.Refresh(context.Background(), "acc-123", "acc-456")

	require.NoError(t, err)
	mockTransport.AssertExpectations(t)
}

func TestAccountService_Refresh_ReportsAPIErrors(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"forceRefreshAccounts": {
			"success": false,
			"errors": [{"message": "refresh already running", "code": "REFRESH_IN_PROGRESS"}]
		}
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	err := client.Accounts.Refresh(context.Background(), "acc-123")

	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "REFRESH_IN_PROGRESS", apiErr.Code)
}

func TestAccountService_IsRefreshComplete(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"accounts": [
			{"id": "acc-123", "hasSyncInProgress": false},
			{"id": "acc-456", "hasSyncInProgress": true}
		]
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	// acc-456 is still syncing
	complete, err := client.Accounts.IsRefreshComplete(context.Background())
	require.NoError(t, err)
	assert.False(t, complete)

	// but acc-123 alone is done
	complete, err = client.Accounts.IsRefreshComplete(context.Background(), "acc-123")
	require.NoError(t, err)
	assert.True(t, complete)
}
