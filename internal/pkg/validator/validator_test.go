package validator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	statuses := []string{"PROCESSED", "PAID"}
	if !IsInSlice("PAID", statuses) {
		t.Error("IsInSlice(PAID) = false, want true")
	}
	for _, s := range []string{"paid", "DRAFT", ""} {
		if IsInSlice(s, statuses) {
			t.Errorf("IsInSlice(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-02-29", "2023/01/01", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidPeriod(t *testing.T) {
	if !IsValidPeriod(1, 2025) || !IsValidPeriod(12, 2025) {
		t.Error("expected January and December 2025 to be valid")
	}
	if IsValidPeriod(0, 2025) || IsValidPeriod(13, 2025) || IsValidPeriod(6, 1999) {
		t.Error("expected out of range periods to be invalid")
	}
}

func TestIsRate(t *testing.T) {
	if !IsRate(decimal.RequireFromString("0.03")) || !IsRate(decimal.Zero) || !IsRate(decimal.NewFromInt(1)) {
		t.Error("expected 0, 0.03 and 1 to be rates")
	}
	if IsRate(decimal.RequireFromString("-0.01")) || IsRate(decimal.RequireFromString("1.5")) {
		t.Error("expected -0.01 and 1.5 not to be rates")
	}
}

func TestIsValidIBAN(t *testing.T) {
	valid := []string{"GB82WEST12345698765432", "GB82 WEST 1234 5698 7654 32", "DE89370400440532013000"}
	invalid := []string{"GB82WEST12345698765433", "GB82", "1234WEST12345698765432", ""}
	for _, iban := range valid {
		if !IsValidIBAN(iban) {
			t.Errorf("IsValidIBAN(%q) = false, want true", iban)
		}
	}
	for _, iban := range invalid {
		if IsValidIBAN(iban) {
			t.Errorf("IsValidIBAN(%q) = true, want false", iban)
		}
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if got := DateOnly(in); !got.Equal(want) {
		t.Errorf("DateOnly(%v) = %v, want %v", in, got, want)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	errs.Add("month", "invalid")
	errs.Add("year", "required")
	got := errs.Error()
	want := "month: invalid; year: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_Err(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Error("empty ValidationErrors.Err() should be nil")
	}
	errs.Add("month", "invalid")
	if errs.Err() == nil {
		t.Error("non-empty ValidationErrors.Err() should not be nil")
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "invalid"},
		{Field: "year", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"month": "invalid", "year": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
