package monarch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransactionQuery_Execute(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"allTransactions": {
			"totalCount": 2,
			"results": [
				{
					"id": "txn-1",
					"date": "2025-10-01",
					"amount": -42.50,
					"pending": false,
					"merchant": {"id": "m-1", "name": "Coffee Shop"},
					"category": {"id": "cat-1", "name": "Restaurants"},
					"account": {"id": "acc-123", "displayName": "Test Checking"},
					"tags": [{"id": "tag-1", "name": "work", "color": "#ff0000"}]
				},
				{
					"id": "txn-2",
					"date": "2025-10-02",
					"amount": 1000.00,
					"pending": true
				}
			]
		}
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(variables map[string]interface{}) bool {
			filters, ok := variables["filters"].(map[string]interface{})
			if !ok {
				return false
			}
			return filters["startDate"] == "2025-10-01" &&
				filters["endDate"] == "2025-10-31" &&
				variables["limit"] == 10
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)

	result, err := client.Transactions.Query().
		Between(start, end).
		Limit(10).
		Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCount)
	assert.False(t, result.HasMore)
	require.Len(t, result.Transactions, 2)

	txn := result.Transactions[0]
	assert.Equal(t, "txn-1", txn.ID)
	assert.Equal(t, "2025-10-01", txn.Date.String())
	assert.Equal(t, -42.50, txn.Amount)
	assert.Equal(t, "Coffee Shop", txn.Merchant.Name)
	assert.Equal(t, "Restaurants", txn.Category.Name)
	assert.Equal(t, "work", txn.Tags[0].Name)
}

func TestTransactionQuery_Pagination(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"allTransactions": {
			"totalCount": 250,
			"results": [{"id": "txn-1", "date": "2025-10-01", "amount": -1.00}]
		}
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	result, err := client.Transactions.Query().
		Limit(100).
		Offset(100).
		Execute(context.Background())

	require.NoError(t, err)
	assert.True(t, result.HasMore)
	assert.Equal(t, 200, result.NextOffset)
}

func TestTransactionService_Get(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"getTransaction": {
			"id": "txn-1",
			"date": "2025-10-01",
			"amount": -42.50,
			"notes": "team lunch"
		}
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(variables map[string]interface{}) bool {
			return variables["id"] == "txn-1"
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	txn, err := client.Transactions.Get(context.Background(), "txn-1")

	require.NoError(t, err)
	assert.Equal(t, "team lunch", txn.Notes)
}

func TestTransactionService_Get_NotFound(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(`{"getTransaction": null}`, nil)

	_, err := client.Transactions.Get(context.Background(), "txn-missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"categories": [
			{
				"id": "cat-1",
				"name": "Restaurants",
				"isSystemCategory": true,
				"group": {"id": "grp-1", "name": "Food & Dining", "type": "expense"}
			},
			{
				"id": "cat-2",
				"name": "Paychecks",
				"group": {"id": "grp-2", "name": "Income", "type": "income"}
			}
		]
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	categories, err := client.Transactions.Categories().List(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Restaurants", categories[0].Name)
	assert.Equal(t, "Food & Dining", categories[0].Group.Name)
	assert.True(t, categories[0].IsSystemCategory)
}
