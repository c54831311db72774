package validator

import (
	"testing"
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
		"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"0192e4a9-7e5b-7cc3-9275-6b9c0b6db421",
		"0192E4A9-7E5B-7CC3-9275-6B9C0B6DB421",
	}
	invalid := []string{"", "not-a-uuid", "6ba7b8109dad11d180b400c04fd430c8"}
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

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-03-14"); !ok {
		t.Error("expected 2025-03-14 to parse")
	}
	if _, ok := IsValidDate("14/03/2025"); ok {
		t.Error("expected 14/03/2025 to fail")
	}
	if _, ok := IsValidDate("2025-02-30"); ok {
		t.Error("expected 2025-02-30 to fail")
	}
}

func TestIsValidProvince(t *testing.T) {
	for _, code := range []string{"ON", "bc", "QC", "FED"} {
		if !IsValidProvince(code) {
			t.Errorf("IsValidProvince(%q) = false, want true", code)
		}
	}
	for _, code := range []string{"", "XX", "ONT"} {
		if IsValidProvince(code) {
			t.Errorf("IsValidProvince(%q) = true, want false", code)
		}
	}
}

func TestIsValidTaxYear(t *testing.T) {
	for _, y := range []int{2000, 2025, 2100} {
		if !IsValidTaxYear(y) {
			t.Errorf("IsValidTaxYear(%d) = false, want true", y)
		}
	}
	for _, y := range []int{0, 1999, 2101} {
		if IsValidTaxYear(y) {
			t.Errorf("IsValidTaxYear(%d) = true, want false", y)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "province", Message: "is required"},
		{Field: "tax_year", Message: "out of range"},
	}
	if errs.Error() != "province: is required; tax_year: out of range" {
		t.Errorf("unexpected message: %s", errs.Error())
	}
	m := errs.ToMap()
	if m["province"] != "is required" || len(m) != 2 {
		t.Errorf("unexpected map: %v", m)
	}
}
