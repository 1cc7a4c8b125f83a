package domain

import "testing"

func TestParseCents(t *testing.T) {
	cases := map[string]int64{
		"10.99":  1099,
		"3.99":   399,
		" 12 ":   1200,
		"0.005":  1,
		"11.044": 1104,
	}
	for in, want := range cases {
		got, err := ParseCents(in)
		if err != nil {
			t.Fatalf("ParseCents(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseCents(%q) = %d, want %d", in, got, want)
		}
	}
	if _, err := ParseCents("abc"); err == nil {
		t.Fatalf("expected error for non-numeric amount")
	}
	if _, err := ParseCents(""); err == nil {
		t.Fatalf("expected error for empty amount")
	}
}

func TestFormatCents(t *testing.T) {
	if got := FormatCents(1498); got != "14.98" {
		t.Fatalf("FormatCents(1498) = %q", got)
	}
	if got := FormatCents(5); got != "0.05" {
		t.Fatalf("FormatCents(5) = %q", got)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("empty cart")
	if !IsValidation(err) {
		t.Fatalf("expected validation error")
	}
	if err.Error() != "empty cart" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if IsValidation(ErrNotFound) {
		t.Fatalf("ErrNotFound is not a validation error")
	}
}
