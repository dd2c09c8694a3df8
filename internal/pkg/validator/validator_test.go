package validator

import (
	"testing"

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
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"urn:uuid:123e4567-e89b-12d3-a456-426614174000",
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"0712345678", "0112 345 678", "+254712345678", "254712345678"}
	invalid := []string{"0812345678", "07123", "+25471234567a", ""}
	for _, p := range valid {
		if !IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", p)
		}
	}
}

func TestValidatePeriod(t *testing.T) {
	if errs := ValidatePeriod(6, 2025); len(errs) != 0 {
		t.Errorf("ValidatePeriod(6, 2025) = %v, want no errors", errs)
	}
	errs := ValidatePeriod(13, 1999)
	m := errs.ToMap()
	if _, ok := m["period_month"]; !ok {
		t.Errorf("expected period_month error, got %v", m)
	}
	if _, ok := m["period_year"]; !ok {
		t.Errorf("expected period_year error, got %v", m)
	}
}

type structSample struct {
	Title string          `json:"title" validate:"required"`
	Email string          `json:"email" validate:"omitempty,email"`
	Basic decimal.Decimal `json:"basic_salary" validate:"gte=0"`
	Ref   string          `json:"-" validate:"omitempty,uuid"`
}

func TestStruct(t *testing.T) {
	if err := Struct(structSample{Title: "Officer", Basic: decimal.NewFromInt(100)}); err != nil {
		t.Fatalf("Struct(valid) = %v, want nil", err)
	}

	err := Struct(structSample{Email: "nope", Basic: decimal.NewFromInt(-1)})
	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Struct(invalid) returned %T, want ValidationErrors", err)
	}
	m := errs.ToMap()
	if m["title"] != "is required" {
		t.Errorf("title message = %q", m["title"])
	}
	if m["email"] != "must be a valid email address" {
		t.Errorf("email message = %q", m["email"])
	}
	if _, ok := m["basic_salary"]; !ok {
		t.Errorf("expected basic_salary error, got %v", m)
	}
}
