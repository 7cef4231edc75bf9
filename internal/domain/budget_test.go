package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMonth(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr string
	}{
		{input: "2024-02", want: "2024-02"},
		{input: " 2024-12 ", want: "2024-12"},
		{input: "2000-01", want: "2000-01"},
		{input: "2100-12", want: "2100-12"},
		{input: "2024-13", wantErr: "Invalid month"},
		{input: "2024-00", wantErr: "Invalid month"},
		{input: "1999-05", wantErr: "Invalid year"},
		{input: "2101-05", wantErr: "Invalid year"},
		{input: "2024-1", wantErr: "Month must be in YYYY-MM format"},
		{input: "24-01", wantErr: "Month must be in YYYY-MM format"},
		{input: "2024/01", wantErr: "Month must be in YYYY-MM format"},
		{input: "2024-+1", wantErr: "Month must be in YYYY-MM format"},
		{input: "", wantErr: "Month must be in YYYY-MM format"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ValidateMonth(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewBudget(t *testing.T) {
	b, err := NewBudget(" User@Example.com ", "2024-06", "150", "  groceries cap ")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", b.UserEmail)
	assert.Equal(t, "2024-06", b.Month)
	assert.Equal(t, 150.0, b.Amount)
	assert.Equal(t, "groceries cap", b.Notes)
	assert.NotEmpty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestNewBudgetValidation(t *testing.T) {
	_, err := NewBudget("nope", "2024-06", 1, "")
	assert.EqualError(t, err, "User email is required")

	_, err = NewBudget("a@b.c", "2024-13", 1, "")
	assert.EqualError(t, err, "Invalid month")

	_, err = NewBudget("a@b.c", "2024-06", "x", "")
	assert.EqualError(t, err, "Amount must be a number")

	_, err = NewBudget("a@b.c", "2024-06", 0, "")
	assert.EqualError(t, err, "Amount must be > 0")
}
