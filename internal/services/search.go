package services

import (
	"regexp"
	"strings"

	"vypiska/internal/core"
)

// phonePattern matches Russian mobile numbers inside a description:
// +7 or a leading 8, a three digit code with optional parentheses, then
// 3-2-2 digit groups with optional space or hyphen separators.
var phonePattern = regexp.MustCompile(`(\+7|8)[\s-]?\(?\d{3}\)?[\s-]?\d{3}[\s-]?\d{2}[\s-]?\d{2}`)

// personPattern matches a capitalized surname followed by an initial,
// e.g. "Иванов И.".
var personPattern = regexp.MustCompile(`[А-Я][а-я]+\s[А-Я]\.`)

// SimpleSearch returns rows whose description or category contains the
// query, case-insensitively. The empty query matches everything. Relative
// input order is preserved.
func SimpleSearch(txs []core.Transaction, query string) []core.Transaction {
	q := strings.ToLower(query)
	var out []core.Transaction
	for _, t := range txs {
		if strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(strings.ToLower(t.Category), q) {
			out = append(out, t)
		}
	}
	return out
}

// SearchPhoneNumbers returns rows whose description mentions a Russian
// mobile number. Presence of a match is enough; the description does not
// have to be the number alone.
func SearchPhoneNumbers(txs []core.Transaction) []core.Transaction {
	var out []core.Transaction
	for _, t := range txs {
		if phonePattern.MatchString(t.Description) {
			out = append(out, t)
		}
	}
	return out
}

// SearchPersonTransfers returns transfers to private persons: the category
// must be exactly the transfers category and the description must name a
// person ("Иванов И."). Both conditions are required.
func SearchPersonTransfers(txs []core.Transaction) []core.Transaction {
	var out []core.Transaction
	for _, t := range txs {
		if t.Category == core.CategoryTransfers && personPattern.MatchString(t.Description) {
			out = append(out, t)
		}
	}
	return out
}
