package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"100", "100", true},
		{"0", "0", true},
		{"99.50", "99.5", true},
		{" 250 ", "250", true},
		{"-5", "", false},
		{"", "", false},
		{"   ", "", false},
		{"abc", "", false},
		{"10,5", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestIsValidSalaryDay(t *testing.T) {
	assert.True(t, IsValidSalaryDay(1))
	assert.True(t, IsValidSalaryDay(15))
	assert.True(t, IsValidSalaryDay(28))
	assert.False(t, IsValidSalaryDay(0))
	assert.False(t, IsValidSalaryDay(29))
	assert.False(t, IsValidSalaryDay(-3))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-08-15")
	require.True(t, ok)
	assert.Equal(t, 2026, date.Year())
	assert.Equal(t, 15, date.Day())

	_, ok = IsValidDate("15-08-2026")
	assert.False(t, ok)
	_, ok = IsValidDate("2026-13-01")
	assert.False(t, ok)
	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "amount", Message: "must be a non-negative number"},
		{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"},
	}

	assert.Equal(t, "amount: must be a non-negative number; date: must be a valid date (YYYY-MM-DD)", errs.Error())
	assert.Equal(t, map[string]string{
		"amount": "must be a non-negative number",
		"date":   "must be a valid date (YYYY-MM-DD)",
	}, errs.ToMap())
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}
