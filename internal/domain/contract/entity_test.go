package contract

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedTerm(start, end time.Time) Contract {
	return Contract{
		ID:         "c-1",
		EmployeeID: "e-1",
		Type:       TypeFixedTerm,
		StartDate:  start,
		EndDate:    &end,
		AutoRenew:  true,
		Status:     StatusActive,
		Terms:      Terms{BaseSalary: decimal.NewFromInt(110000), MealAllowance: decimal.NewFromInt(5000)},
	}
}

func TestSuccessor_PreservesDuration(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"calendar year", date(2024, 1, 1), date(2024, 12, 31)},
		{"leap february", date(2024, 2, 1), date(2024, 2, 29)},
		{"short internship", date(2025, 6, 15), date(2025, 9, 15)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := fixedTerm(tc.start, tc.end)
			next, err := c.Successor(date(2030, 1, 1))
			require.NoError(t, err)
			require.NotNil(t, next.EndDate)

			assert.Equal(t, tc.end, next.StartDate)
			assert.Equal(t, tc.end.Sub(tc.start), next.EndDate.Sub(next.StartDate))
			assert.Equal(t, StatusActive, next.Status)
			assert.True(t, next.Terms.BaseSalary.Equal(c.Terms.BaseSalary))
			assert.Equal(t, c.AutoRenew, next.AutoRenew)
			require.NotNil(t, next.RenewedFromID)
			assert.Equal(t, c.ID, *next.RenewedFromID)
		})
	}
}

func TestSuccessor_CalendarYearScenario(t *testing.T) {
	c := fixedTerm(date(2024, 1, 1), date(2024, 12, 31))
	next, err := c.Successor(date(2025, 1, 2))
	require.NoError(t, err)

	assert.Equal(t, date(2024, 12, 31), next.StartDate)
	// 2024 is a leap year: the original spans 365 days, so does the successor.
	assert.Equal(t, date(2025, 12, 31), *next.EndDate)
}

func TestSuccessor_OpenEndedStartsToday(t *testing.T) {
	c := Contract{ID: "c-2", Type: TypeOpenEnded, StartDate: date(2020, 1, 1), Status: StatusActive}
	next, err := c.Successor(time.Date(2025, 3, 10, 15, 4, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 3, 10), next.StartDate)
	assert.Nil(t, next.EndDate)
}

func TestSuccessor_RequiresActive(t *testing.T) {
	for _, status := range []Status{StatusExpired, StatusRenewed, StatusTerminated} {
		c := fixedTerm(date(2024, 1, 1), date(2024, 12, 31))
		c.Status = status
		_, err := c.Successor(date(2025, 1, 2))
		assert.ErrorIs(t, err, ErrInvalidState, status)
	}
}

func TestExpiredAsOf(t *testing.T) {
	c := fixedTerm(date(2024, 1, 1), date(2024, 12, 31))
	assert.False(t, c.ExpiredAsOf(date(2024, 12, 31)), "end date itself is still in force")
	assert.True(t, c.ExpiredAsOf(date(2025, 1, 1)))

	c.Status = StatusExpired
	assert.False(t, c.ExpiredAsOf(date(2025, 1, 1)))

	open := Contract{Type: TypeOpenEnded, Status: StatusActive, StartDate: date(2020, 1, 1)}
	assert.False(t, open.ExpiredAsOf(date(2099, 1, 1)))
}

func TestShouldAutoRenew(t *testing.T) {
	c := fixedTerm(date(2024, 1, 1), date(2024, 12, 31))
	assert.True(t, c.ShouldAutoRenew())

	c.AutoRenew = false
	assert.False(t, c.ShouldAutoRenew())

	c.AutoRenew = true
	c.Type = TypeOpenEnded
	assert.False(t, c.ShouldAutoRenew())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusActive, StatusExpired))
	assert.True(t, CanTransition(StatusActive, StatusRenewed))
	assert.True(t, CanTransition(StatusActive, StatusTerminated))
	assert.False(t, CanTransition(StatusActive, StatusActive))
	assert.False(t, CanTransition(StatusExpired, StatusRenewed))
	assert.False(t, CanTransition(StatusTerminated, StatusActive))
}

func TestAllowanceTotals(t *testing.T) {
	terms := Terms{
		MealAllowance:      decimal.NewFromInt(100),
		TransportAllowance: decimal.NewFromInt(200),
		HousingAllowance:   decimal.NewFromInt(300),
		OtherAllowance:     decimal.NewFromInt(400),
	}
	taxable, exempt := terms.AllowanceTotals()
	assert.True(t, taxable.Equal(decimal.NewFromInt(700)))
	assert.True(t, exempt.Equal(decimal.NewFromInt(300)))
}

func TestCreateContractRequest_Validate(t *testing.T) {
	end := "2024-12-31"
	valid := CreateContractRequest{
		EmployeeID: "e-1",
		Type:       string(TypeFixedTerm),
		StartDate:  "2024-01-01",
		EndDate:    &end,
		BaseSalary: decimal.NewFromInt(1000),
	}
	require.NoError(t, valid.Validate())
	assert.Equal(t, date(2024, 1, 1), valid.ParsedStartDate)
	require.NotNil(t, valid.ParsedEndDate)
	assert.Equal(t, date(2024, 12, 31), *valid.ParsedEndDate)

	missingEnd := valid
	missingEnd.EndDate = nil
	assert.Error(t, missingEnd.Validate())

	openEnded := valid
	openEnded.Type = string(TypeOpenEnded)
	openEnded.EndDate = nil
	require.NoError(t, openEnded.Validate())

	openEnded.AutoRenew = true
	assert.Error(t, openEnded.Validate())

	negative := valid
	negative.HousingAllowance = decimal.NewFromInt(-1)
	assert.Error(t, negative.Validate())

	before := "2023-12-31"
	backwards := valid
	backwards.EndDate = &before
	assert.Error(t, backwards.Validate())

	badType := valid
	badType.Type = "SEASONAL"
	assert.Error(t, badType.Validate())
}
