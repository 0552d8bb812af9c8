package contribution

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleBrackets() TaxBrackets {
	return TaxBrackets{
		{LowerBound: d("0"), Rate: d("0"), FixedDeduction: d("0")},
		{LowerBound: d("70000"), Rate: d("0.10"), FixedDeduction: d("3000")},
		{LowerBound: d("150000"), Rate: d("0.20"), FixedDeduction: d("18000")},
	}
}

func TestTaxBrackets_Tax(t *testing.T) {
	b := sampleBrackets()

	cases := []struct {
		base string
		want string
	}{
		{"0", "0"},
		{"50000", "0"},
		{"70000", "4000"},
		{"106700", "7670"},
		{"150000", "12000"},
		{"200000.55", "22000.11"},
		{"-10", "0"},
	}
	for _, tc := range cases {
		got := b.Tax(d(tc.base))
		assert.True(t, got.Equal(d(tc.want)), "base %s: got %s want %s", tc.base, got, tc.want)
	}
}

func TestTaxBrackets_TaxNeverNegative(t *testing.T) {
	b := TaxBrackets{
		{LowerBound: d("0"), Rate: d("0.01"), FixedDeduction: d("500")},
	}
	assert.True(t, b.Tax(d("1000")).IsZero())
}

func TestTaxBrackets_Validate(t *testing.T) {
	require.NoError(t, sampleBrackets().Validate())

	assert.ErrorIs(t, TaxBrackets{}.Validate(), ErrEmptyBrackets)
	assert.ErrorIs(t, TaxBrackets{{LowerBound: d("10"), Rate: d("0.1")}}.Validate(), ErrBracketsMustStartAtZero)
	assert.ErrorIs(t, TaxBrackets{
		{LowerBound: d("0"), Rate: d("0")},
		{LowerBound: d("0"), Rate: d("0.1")},
	}.Validate(), ErrBracketsNotAscending)
	assert.ErrorIs(t, TaxBrackets{{LowerBound: d("0"), Rate: d("1.2")}}.Validate(), ErrInvalidBracketRate)
	assert.ErrorIs(t, TaxBrackets{{LowerBound: d("0"), Rate: d("0.1"), FixedDeduction: d("-1")}}.Validate(), ErrInvalidBracketDeduction)
}

func TestTaxBrackets_JSONAcceptsNumbersAndStrings(t *testing.T) {
	var b TaxBrackets
	raw := `[{"lower_bound":0,"rate":"0","fixed_deduction":0},{"lower_bound":"70000","rate":0.1,"fixed_deduction":"3000"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	require.Len(t, b, 2)
	assert.True(t, b[1].Rate.Equal(d("0.1")))
	assert.True(t, b[1].FixedDeduction.Equal(d("3000")))
}

func TestUpsertConfigRequest_Defaults(t *testing.T) {
	req := UpsertConfigRequest{
		Month:        1,
		Year:         2025,
		MinimumWage:  d("32000"),
		EmployeeRate: d("0.03"),
		EmployerRate: d("0.08"),
		Brackets:     sampleBrackets(),
	}
	require.NoError(t, req.Validate())

	cfg := req.ToConfig()
	assert.True(t, cfg.StandardMonthlyHours.Equal(d("176")))
	assert.Equal(t, 22, cfg.StandardWorkingDays)
	assert.True(t, cfg.NightPremiumRate.Equal(d("0.25")))
}

func TestUpsertConfigRequest_ExplicitZeroNightPremiumIsKept(t *testing.T) {
	zero := decimal.Zero
	days := 20
	req := UpsertConfigRequest{
		Month:               1,
		Year:                2025,
		MinimumWage:         d("32000"),
		EmployeeRate:        d("0.03"),
		EmployerRate:        d("0.08"),
		Brackets:            sampleBrackets(),
		NightPremiumRate:    &zero,
		StandardWorkingDays: &days,
	}
	require.NoError(t, req.Validate())

	cfg := req.ToConfig()
	assert.True(t, cfg.NightPremiumRate.IsZero(), "got %s", cfg.NightPremiumRate)
	assert.Equal(t, 20, cfg.StandardWorkingDays)
	assert.True(t, cfg.StandardMonthlyHours.Equal(d("176")))
}

func TestUpsertConfigRequest_Validate(t *testing.T) {
	req := UpsertConfigRequest{
		Month:        13,
		Year:         2025,
		EmployeeRate: d("1.5"),
		EmployerRate: d("0.08"),
	}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "period")
	assert.Contains(t, err.Error(), "employee_rate")
	assert.Contains(t, err.Error(), "brackets")
}
