package render

import (
	"testing"

	"github.com/csemotors/dealership/internal/core/domain"
)

func TestEchoFields_NeverEchoesPasswords(t *testing.T) {
	submitted := map[string]string{
		"account_firstname":        "Jo",
		"account_lastname":         "Doe",
		"account_email":            "jo@x.com",
		"account_password":         "Weak1!",
		"account_password_confirm": "Weak1!",
	}

	got := EchoFields(submitted)

	if _, ok := got["account_password"]; ok {
		t.Fatalf("password echoed back")
	}
	if _, ok := got["account_password_confirm"]; ok {
		t.Fatalf("password confirmation echoed back")
	}
	if got["account_firstname"] != "Jo" || got["account_lastname"] != "Doe" || got["account_email"] != "jo@x.com" {
		t.Fatalf("non-secret fields not echoed verbatim: %+v", got)
	}
}

func TestEchoFields_EmptySubmission(t *testing.T) {
	got := EchoFields(map[string]string{})
	if len(got) != 0 {
		t.Fatalf("expected empty echo map, got %+v", got)
	}
}

func TestNav_HomeFirstThenClassifications(t *testing.T) {
	nav := Nav([]domain.Classification{
		{ID: "c1", Name: "SUV"},
		{ID: "c2", Name: "Sedan"},
	})

	if len(nav) != 3 {
		t.Fatalf("expected 3 items, got %d", len(nav))
	}
	if nav[0].Href != "/" || nav[0].Label != "Home" {
		t.Fatalf("first item should be Home, got %+v", nav[0])
	}
	if nav[1].Href != "/inv/type/c1" || nav[1].Label != "SUV" {
		t.Fatalf("unexpected nav item: %+v", nav[1])
	}
}

func TestFormatCommas(t *testing.T) {
	cases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		25999:    "25,999",
		1234567:  "1,234,567",
		-4500:    "-4,500",
	}
	for in, want := range cases {
		if got := formatCommas(in); got != want {
			t.Errorf("formatCommas(%d) = %q, want %q", in, got, want)
		}
	}
}
