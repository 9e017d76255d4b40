package monarch

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"date only", `"2025-10-01"`, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)},
		{"RFC3339", `"2025-10-01T12:30:00Z"`, time.Date(2025, 10, 1, 12, 30, 0, 0, time.UTC)},
		{"naive timestamp", `"2025-10-01T12:30:00"`, time.Date(2025, 10, 1, 12, 30, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
		{"empty string", `""`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))
			assert.True(t, d.Time.Equal(tt.want), "got %v, want %v", d.Time, tt.want)
		})
	}
}

func TestDate_UnmarshalJSON_Invalid(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"10/01/2025"`), &d)
	assert.Error(t, err)
}

func TestDate_MarshalJSON(t *testing.T) {
	d := Date{Time: time.Date(2025, 10, 1, 15, 4, 5, 0, time.UTC)}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-10-01"`, string(data))

	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}

func TestExtractOperationName(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"query GetAccounts {\n  accounts { id }\n}", "GetAccounts"},
		{"mutation ForceRefreshAccounts($input: X!) { x }", "ForceRefreshAccounts"},
		{"{ accounts { id } }", "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractOperationName(tt.query))
	}
}
