package model

import "testing"

func TestContactLineOrdersLocationPhoneEmail(t *testing.T) {
	r := ParsedResume{
		Email:    "jordan@example.com",
		Phone:    "555-123-4567",
		Location: "Boston, MA",
	}
	want := "Boston, MA | 555-123-4567 | jordan@example.com"
	if got := r.ContactLine(); got != want {
		t.Fatalf("ContactLine() = %q, want %q", got, want)
	}
}

func TestContactLineSkipsEmptyFields(t *testing.T) {
	r := ParsedResume{Email: "jordan@example.com", Phone: "555-123-4567"}
	if got := r.ContactLine(); got != "555-123-4567 | jordan@example.com" {
		t.Fatalf("ContactLine() = %q", got)
	}
	if got := (ParsedResume{}).ContactLine(); got != "" {
		t.Fatalf("empty resume ContactLine() = %q", got)
	}
}

func TestNormalizeFillsSlicesAndTrims(t *testing.T) {
	r := (&ParsedResume{Name: "  Jordan  ", Summary: " text "}).Normalize()
	if r.Name != "Jordan" || r.Summary != "text" {
		t.Fatalf("scalar fields not trimmed: %+v", r)
	}
	if r.Experience == nil || r.Education == nil || r.Skills == nil || r.Certifications == nil {
		t.Fatal("nil slices should become empty slices")
	}
}
