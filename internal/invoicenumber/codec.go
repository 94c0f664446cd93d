// Package invoicenumber mints and parses structured invoice numbers.
//
// The grammar is <ABBR>-<DIGITS8> or <ABBR>-<DIGITS8>-<PO8>: a 3-letter
// abbreviation of the shop's business name, an 8-digit random component,
// and an optional 8-character purchase-order suffix. There is no central
// sequence counter and no uniqueness check; collisions in the 8-digit
// space are accepted.
package invoicenumber

import (
	"math/rand"
	"regexp"
	"strings"
	"unicode"
)

// FallbackAbbr is used when a business name yields fewer than 3 letters.
const FallbackAbbr = "BIZ"

const poAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var numberPattern = regexp.MustCompile(`^[A-Z]{3}-\d{8}(-[A-Z0-9]{8})?$`)

// Components are the parsed or generated parts of an invoice number.
type Components struct {
	FullNumber   string `json:"full_number"`
	BaseNumber   string `json:"base_number"`
	BusinessAbbr string `json:"business_abbr"`
	RandomDigits string `json:"random_digits"`
	PONumber     string `json:"po_number,omitempty"`
}

// Generate mints an invoice number for the given business name.
//
// When existingNumber parses, its components are reused verbatim so that
// edit flows regenerate idempotently. Otherwise a fresh abbreviation and
// random digits are computed; poNumber is embedded if given, else a fresh
// random PO suffix is generated.
func Generate(businessName, poNumber, existingNumber string) Components {
	if existingNumber != "" {
		if existing := Parse(existingNumber); existing != nil {
			return *existing
		}
	}

	abbr := Abbreviate(businessName)
	digits := randomDigits()
	po := strings.ToUpper(strings.TrimSpace(poNumber))
	if po == "" {
		po = randomPO()
	}

	base := abbr + "-" + digits
	return Components{
		FullNumber:   base + "-" + po,
		BaseNumber:   base,
		BusinessAbbr: abbr,
		RandomDigits: digits,
		PONumber:     po,
	}
}

// Parse splits an invoice number into its components. It returns nil on
// malformed input and never panics.
func Parse(invoiceNumber string) *Components {
	segments := strings.Split(strings.TrimSpace(invoiceNumber), "-")
	if len(segments) < 2 {
		return nil
	}

	components := Components{
		BusinessAbbr: segments[0],
		RandomDigits: segments[1],
		BaseNumber:   segments[0] + "-" + segments[1],
	}
	if len(segments) >= 3 {
		components.PONumber = segments[2]
	}
	components.FullNumber = components.BaseNumber
	if components.PONumber != "" {
		components.FullNumber += "-" + components.PONumber
	}
	return &components
}

// Validate reports whether the string matches the invoice number grammar.
func Validate(invoiceNumber string) bool {
	return numberPattern.MatchString(invoiceNumber)
}

// Abbreviate derives the 3-letter business abbreviation: strip everything
// but letters, take the first 3, uppercase. Names with fewer than 3
// letters fall back to FallbackAbbr.
func Abbreviate(businessName string) string {
	var letters []rune
	for _, r := range businessName {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
			if len(letters) == 3 {
				break
			}
		}
	}
	if len(letters) < 3 {
		return FallbackAbbr
	}
	return string(letters)
}

// randomDigits draws an 8-digit decimal string uniformly from
// [10000000, 99999999].
func randomDigits() string {
	n := 10000000 + rand.Intn(90000000)
	digits := make([]byte, 0, 8)
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func randomPO() string {
	po := make([]byte, 8)
	for i := range po {
		po[i] = poAlphabet[rand.Intn(len(poAlphabet))]
	}
	return string(po)
}
