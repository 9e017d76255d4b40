package monarch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBudgetService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"budgets": [
			{
				"id": "bud-1",
				"categoryId": "cat-1",
				"amount": 500.00,
				"rollover": true,
				"rolloverAmount": 120.50,
				"rolloverType": "monthly",
				"spent": 320.00,
				"remaining": 300.50,
				"percentageComplete": 64.0,
				"category": {
					"id": "cat-1",
					"name": "Groceries",
					"group": {"id": "grp-1", "name": "Food & Dining"}
				}
			}
		]
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.MatchedBy(func(variables map[string]interface{}) bool {
			return variables["startDate"] == "2025-10-01" &&
				variables["endDate"] == "2025-10-31" &&
				variables["useV2"] == true
		}),
		mock.Anything,
	).Return(mockResponse, nil)

	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC)

	budgets, err := client.Budgets.List(context.Background(), start, end)

	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, 500.00, budgets[0].Amount)
	assert.Equal(t, 120.50, budgets[0].RolloverAmount)
	assert.Equal(t, "Groceries", budgets[0].Category.Name)
	assert.Equal(t, "Food & Dining", budgets[0].Category.Group.Name)

	mockTransport.AssertExpectations(t)
}

func TestTagService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"householdTransactionTags": [
			{"id": "tag-1", "name": "work", "color": "#ff0000", "order": 1},
			{"id": "tag-2", "name": "vacation", "color": "#00ff00", "order": 2}
		]
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	tags, err := client.Tags.List(context.Background())

	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "work", tags[0].Name)
	assert.Equal(t, "#00ff00", tags[1].Color)
}

func TestCashflowService_Get(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"cashflow": {
			"startDate": "2025-10-01",
			"endDate": "2025-10-31",
			"income": 5000.00,
			"expenses": 3200.00,
			"netCashflow": 1800.00,
			"byCategory": [
				{"amount": -800.00, "count": 12, "category": {"id": "cat-1", "name": "Groceries"}}
			]
		}
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	cashflow, err := client.Cashflow.Get(context.Background(), &CashflowParams{
		StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, 1800.00, cashflow.NetCashflow)
	require.Len(t, cashflow.ByCategory, 1)
	assert.Equal(t, "Groceries", cashflow.ByCategory[0].Category.Name)
}

func TestRecurringService_ListWithDateRange(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(t, mockTransport)

	mockResponse := `{
		"recurringTransactionItems": [
			{
				"date": "2025-11-01",
				"isPast": false,
				"amount": -15.99,
				"stream": {
					"id": "stream-1",
					"frequency": "monthly",
					"amount": -15.99,
					"isApproximate": false,
					"merchant": {"id": "m-1", "name": "Netflix"}
				},
				"account": {"id": "acc-123", "displayName": "Test Checking"},
				"category": {"id": "cat-9", "name": "Subscriptions"}
			}
		]
	}`

	mockTransport.On("Execute",
		mock.Anything,
		mock.AnythingOfType("string"),
		mock.Anything,
		mock.Anything,
	).Return(mockResponse, nil)

	items, err := client.Recurring.ListWithDateRange(context.Background(),
		time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Netflix", items[0].Merchant.Name)
	assert.Equal(t, "monthly", items[0].Frequency)
	assert.Equal(t, "2025-11-01", items[0].NextDate.String())
	assert.True(t, items[0].IsActive)
}
