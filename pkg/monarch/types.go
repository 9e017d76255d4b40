package monarch

import (
	"time"
)

// Account represents a financial account
type Account struct {
	ID                          string              `json:"id"`
	DisplayName                 string              `json:"displayName"`
	SyncDisabled                bool                `json:"syncDisabled"`
	IsHidden                    bool                `json:"isHidden"`
	IsAsset                     bool                `json:"isAsset"`
	Mask                        string              `json:"mask"`
	CreatedAt                   time.Time           `json:"createdAt"`
	UpdatedAt                   time.Time           `json:"updatedAt"`
	DisplayLastUpdatedAt        time.Time           `json:"displayLastUpdatedAt"`
	CurrentBalance              float64             `json:"currentBalance"`
	DisplayBalance              float64             `json:"displayBalance"`
	IncludeInNetWorth           bool                `json:"includeInNetWorth"`
	HideFromList                bool                `json:"hideFromList"`
	HideTransactionsFromReports bool                `json:"hideTransactionsFromReports"`
	DataProvider                string              `json:"dataProvider"`
	IsManual                    bool                `json:"isManual"`
	TransactionsCount           int                 `json:"transactionsCount"`
	Order                       int                 `json:"order"`
	LogoURL                     string              `json:"logoUrl"`
	Type                        *AccountTypeInfo    `json:"type"`
	Subtype                     *AccountSubtypeInfo `json:"subtype"`
	Institution                 *Institution        `json:"institution"`
}

// AccountTypeInfo represents account type information
type AccountTypeInfo struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

// AccountSubtypeInfo represents account subtype information
type AccountSubtypeInfo struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

// Institution represents a financial institution
type Institution struct {
	ID                 string `json:"id"`
	PlaidInstitutionID string `json:"plaidInstitutionId"`
	Name               string `json:"name"`
	Status             string `json:"status"`
	PrimaryColor       string `json:"primaryColor"`
	URL                string `json:"url"`
}

// Merchant represents a merchant
type Merchant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Transaction represents a financial transaction
type Transaction struct {
	ID              string     `json:"id"`
	Date            Date       `json:"date"`
	Amount          float64    `json:"amount"`
	Pending         bool       `json:"pending"`
	HideFromReports bool       `json:"hideFromReports"`
	PlaidName       string     `json:"plaidName"`
	Merchant        *Merchant  `json:"merchant"`
	Notes           string     `json:"notes"`
	IsRecurring     bool       `json:"isRecurring"`
	NeedsReview     bool       `json:"needsReview"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	Account         *Account   `json:"account"`
	Category        *Category  `json:"category"`
	Tags            []*Tag     `json:"tags"`
}

// Category represents a transaction category
type Category struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Icon             string         `json:"icon"`
	Order            int            `json:"order"`
	SystemCategory   string         `json:"systemCategory"`
	IsSystemCategory bool           `json:"isSystemCategory"`
	IsDisabled       bool           `json:"isDisabled"`
	Group            *CategoryGroup `json:"group"`
	GroupID          string         `json:"groupId"`
}

// CategoryGroup represents a category group
type CategoryGroup struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Order int    `json:"order"`
}

// Tag represents a transaction tag
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// Budget represents a budget entry
type Budget struct {
	ID                 string    `json:"id"`
	CategoryID         string    `json:"categoryId"`
	Category           *Category `json:"category"`
	Amount             float64   `json:"amount"`
	Rollover           bool      `json:"rollover"`
	RolloverAmount     float64   `json:"rolloverAmount"`
	RolloverType       string    `json:"rolloverType"`
	StartDate          Date      `json:"startDate"`
	EndDate            Date      `json:"endDate"`
	Spent              float64   `json:"spent"`
	Remaining          float64   `json:"remaining"`
	PercentageComplete float64   `json:"percentageComplete"`
}

// Cashflow represents cashflow data
type Cashflow struct {
	StartDate   Date                `json:"startDate"`
	EndDate     Date                `json:"endDate"`
	Income      float64             `json:"income"`
	Expenses    float64             `json:"expenses"`
	NetCashflow float64             `json:"netCashflow"`
	ByCategory  []*CashflowCategory `json:"byCategory"`
}

// CashflowCategory represents cashflow by category
type CashflowCategory struct {
	Category *Category `json:"category"`
	Amount   float64   `json:"amount"`
	Count    int       `json:"count"`
}

// CashflowSummary represents cashflow summary
type CashflowSummary struct {
	Interval  string              `json:"interval"`
	Summaries []*CashflowInterval `json:"summaries"`
}

// CashflowInterval represents cashflow for an interval
type CashflowInterval struct {
	StartDate   Date    `json:"startDate"`
	EndDate     Date    `json:"endDate"`
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	NetCashflow float64 `json:"netCashflow"`
}

// RecurringTransaction represents an upcoming recurring transaction
type RecurringTransaction struct {
	ID            string    `json:"id"`
	Merchant      *Merchant `json:"merchant"`
	Amount        float64   `json:"amount"`
	Frequency     string    `json:"frequency"`
	NextDate      Date      `json:"nextDate"`
	Category      *Category `json:"category"`
	Account       *Account  `json:"account"`
	IsActive      bool      `json:"isActive"`
	IsApproximate bool      `json:"isApproximate"`
}

// TransactionList represents paginated transaction results
type TransactionList struct {
	Transactions []*Transaction `json:"transactions"`
	TotalCount   int            `json:"totalCount"`
	HasMore      bool           `json:"hasMore"`
	NextOffset   int            `json:"nextOffset"`
}

// Session represents an authenticated session
type Session struct {
	Token      string    `json:"token"`
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	ExpiresAt  time.Time `json:"expiresAt"`
	DeviceUUID string    `json:"deviceUuid"`
}

// CashflowParams for cashflow queries
type CashflowParams struct {
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Limit      int       `json:"limit,omitempty"`
	AccountIDs []string  `json:"accountIds,omitempty"`
}

// CashflowSummaryParams for cashflow summary
type CashflowSummaryParams struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Interval  string    `json:"interval"` // "day", "week", "month", "year"
}
