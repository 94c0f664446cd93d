package invoicenumber

import (
	"regexp"
	"testing"
)

func TestGenerateShapes(t *testing.T) {
	got := Generate("Acme Auto Repair", "", "")
	if got.BusinessAbbr != "ACM" {
		t.Fatalf("expected abbr ACM, got %q", got.BusinessAbbr)
	}
	if !regexp.MustCompile(`^\d{8}$`).MatchString(got.RandomDigits) {
		t.Fatalf("expected 8 random digits, got %q", got.RandomDigits)
	}
	if !regexp.MustCompile(`^[A-Z0-9]{8}$`).MatchString(got.PONumber) {
		t.Fatalf("expected 8-char PO suffix, got %q", got.PONumber)
	}
	if got.FullNumber != got.BaseNumber+"-"+got.PONumber {
		t.Fatalf("full number %q does not compose from base %q and po %q", got.FullNumber, got.BaseNumber, got.PONumber)
	}
	if !Validate(got.FullNumber) {
		t.Fatalf("generated number %q fails validation", got.FullNumber)
	}
}

func TestGenerateUsesSuppliedPO(t *testing.T) {
	got := Generate("Acme Auto Repair", "PO12TEST", "")
	if got.PONumber != "PO12TEST" {
		t.Fatalf("expected supplied PO, got %q", got.PONumber)
	}
	if !Validate(got.FullNumber) {
		t.Fatalf("number %q with supplied PO fails validation", got.FullNumber)
	}
}

func TestGenerateIdempotentOnExisting(t *testing.T) {
	first := Generate("Acme Auto Repair", "", "")
	second := Generate("Completely Different Name", "OTHERPO1", first.FullNumber)
	if second != first {
		t.Fatalf("regeneration changed components: %+v vs %+v", second, first)
	}
}

func TestGenerateIgnoresMalformedExisting(t *testing.T) {
	got := Generate("Acme Auto Repair", "", "garbage")
	if got.BusinessAbbr != "ACM" {
		t.Fatalf("malformed existing number was reused: %+v", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	generated := Generate("Midtown Garage", "", "")
	parsed := Parse(generated.FullNumber)
	if parsed == nil {
		t.Fatalf("generated number %q did not parse", generated.FullNumber)
	}
	if *parsed != generated {
		t.Fatalf("round trip mismatch: %+v vs %+v", *parsed, generated)
	}
}

func TestParseTwoSegments(t *testing.T) {
	parsed := Parse("ACM-12345678")
	if parsed == nil {
		t.Fatalf("base number did not parse")
	}
	if parsed.BusinessAbbr != "ACM" || parsed.RandomDigits != "12345678" || parsed.PONumber != "" {
		t.Fatalf("unexpected components: %+v", parsed)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, input := range []string{"", "ACM", "no dashes here either"} {
		if got := Parse(input); got != nil {
			t.Fatalf("expected nil for %q, got %+v", input, got)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		number string
		want   bool
	}{
		{"ACM-12345678", true},
		{"ACM-12345678-AB12CD34", true},
		{"ACME-12345678", false},
		{"ac-12345678", false},
		{"ACM-1234567", false},
		{"ACM-12345678-short", false},
		{"ACM-12345678-AB12CD34X", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := Validate(tc.number); got != tc.want {
			t.Fatalf("Validate(%q) = %v, want %v", tc.number, got, tc.want)
		}
	}
}

func TestAbbreviate(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Acme Auto Repair", "ACM"},
		{"bob's garage", "BOB"},
		{"42 Motors & Co", "MOT"},
		{"A1", "BIZ"},
		{"", "BIZ"},
		{"  !!  ", "BIZ"},
	}
	for _, tc := range cases {
		if got := Abbreviate(tc.name); got != tc.want {
			t.Fatalf("Abbreviate(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRandomDigitsRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		digits := randomDigits()
		if len(digits) != 8 {
			t.Fatalf("expected 8 digits, got %q", digits)
		}
		if digits[0] == '0' {
			t.Fatalf("digits %q fall below 10000000", digits)
		}
	}
}
