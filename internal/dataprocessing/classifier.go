package dataprocessing

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Loan type labels produced by ClassifyLoanType. The set is closed: every
// filename maps to exactly one of these.
const (
	LoanTypeHutkopDagang    = "Hutkop Dagang"
	LoanTypeElektronikTopUp = "Elektronik Top Up"
	LoanTypeElektronikUang  = "Elektronik Uang"
	LoanTypeElektronik1     = "Elektronik 1"
	LoanTypeMotor10         = "Motor 10"
	LoanTypeMotor8          = "Motor 8"
	LoanTypeMotor1          = "Motor 1"
	LoanTypeTopUpUang       = "Top up uang"
	LoanTypePinjamanCash    = "Pinjaman cash"
	LoanTypePinjamanUang    = "Pinjaman uang"
	LoanTypeLainnya         = "Lainnya"
)

// Alias token sets per concept. Each set carries the misspellings observed
// in real upload filenames; membership is tested against separator-split
// tokens of the normalized name.
var (
	electronicsTokens = tokenSet("elektronik", "elektro", "electronik", "electronic", "elektronil", "elktronik")
	motorTokens       = tokenSet("motor", "mtr", "montor", "motr")
	topUpTokens       = tokenSet("topup", "topap")
	moneyTokens       = tokenSet("uang", "uamg", "unag")
	loanTokens        = tokenSet("pinjaman", "pinjman", "pinjam", "hutang", "utang")
	cashTokens        = tokenSet("cash", "kash", "tunai", "tunei")
	tradeTokens       = tokenSet("dagang", "dagan", "dagamg", "hutkop")
)

func tokenSet(tokens ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// classifierRule pairs a predicate over a tokenized filename with the label
// it assigns. Rules are evaluated top to bottom and the first match wins;
// token sets overlap ("uang" appears in both electronics-money and generic
// money programs), so specific combinations must stay above general ones.
type classifierRule struct {
	label string
	match func(n tokenizedName) bool
}

var classifierRules = []classifierRule{
	{LoanTypeHutkopDagang, func(n tokenizedName) bool { return n.has(tradeTokens) }},
	{LoanTypeElektronikTopUp, func(n tokenizedName) bool { return n.has(electronicsTokens) && n.hasTopUp() }},
	{LoanTypeElektronikUang, func(n tokenizedName) bool { return n.has(electronicsTokens) && n.has(moneyTokens) }},
	{LoanTypeElektronik1, func(n tokenizedName) bool { return n.has(electronicsTokens) && n.hasNumber(1) }},
	{LoanTypeMotor10, func(n tokenizedName) bool { return n.has(motorTokens) && n.hasNumber(10) }},
	{LoanTypeMotor8, func(n tokenizedName) bool { return n.has(motorTokens) && n.hasNumber(8) }},
	{LoanTypeMotor1, func(n tokenizedName) bool { return n.has(motorTokens) && n.hasNumber(1) }},
	{LoanTypeTopUpUang, func(n tokenizedName) bool { return !n.has(electronicsTokens) && n.hasTopUp() && n.has(moneyTokens) }},
	{LoanTypePinjamanCash, func(n tokenizedName) bool { return n.has(cashTokens) }},
	{LoanTypePinjamanUang, func(n tokenizedName) bool { return !n.has(electronicsTokens) && n.has(loanTokens) && n.has(moneyTokens) }},
}

// ClassifyLoanType assigns a loan type label from the filename alone; the
// file contents are never consulted. Unrecognizable names classify as
// Lainnya, which is a normal outcome rather than an error.
func ClassifyLoanType(filename string) string {
	n := tokenizeFilename(filename)
	for _, rule := range classifierRules {
		if rule.match(n) {
			return rule.label
		}
	}
	return LoanTypeLainnya
}

// tokenizedName is a filename reduced to lower-case separator-delimited
// tokens plus the joined normalized form for adjacency checks.
type tokenizedName struct {
	normalized string
	tokens     []string
}

func tokenizeFilename(filename string) tokenizedName {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(base)

	base = strings.NewReplacer("_", "-", " ", "-", ".", "-").Replace(base)
	for strings.Contains(base, "--") {
		base = strings.ReplaceAll(base, "--", "-")
	}
	base = strings.Trim(base, "-")

	var tokens []string
	if base != "" {
		tokens = strings.Split(base, "-")
	}
	return tokenizedName{normalized: base, tokens: tokens}
}

// has tests alias set membership. A program number glued onto the token
// ("mtr10", "elektronik1") still counts as that token.
func (n tokenizedName) has(set map[string]struct{}) bool {
	for _, t := range n.tokens {
		if _, ok := set[t]; ok {
			return true
		}
		if trimmed := strings.TrimRight(t, "0123456789"); trimmed != t {
			if _, ok := set[trimmed]; ok {
				return true
			}
		}
	}
	return false
}

// hasTopUp detects the top-up concept, which survives separator
// normalization either as a single token ("topup") or as the adjacent pair
// "top"/"up".
func (n tokenizedName) hasTopUp() bool {
	if n.has(topUpTokens) {
		return true
	}
	for i := 0; i+1 < len(n.tokens); i++ {
		if n.tokens[i] == "top" && n.tokens[i+1] == "up" {
			return true
		}
	}
	return false
}

// hasNumber reports whether num appears as its own separator-delimited
// token (which covers separator adjacency and the end of the name) or glued
// to the tail of a motor abbreviation, as in "mtr10".
func (n tokenizedName) hasNumber(num int) bool {
	digits := strconv.Itoa(num)
	for _, t := range n.tokens {
		if t == digits {
			return true
		}
		if rest, ok := strings.CutSuffix(t, digits); ok {
			if _, motor := motorTokens[rest]; motor {
				return true
			}
		}
	}
	return strings.HasSuffix(n.normalized, digits) && len(n.tokens) > 0 &&
		endsWithBareNumber(n.tokens[len(n.tokens)-1], digits)
}

// endsWithBareNumber accepts a trailing number only when the digits are not
// part of a longer number, so "motor-110" does not register as 10.
func endsWithBareNumber(token, digits string) bool {
	rest, ok := strings.CutSuffix(token, digits)
	if !ok {
		return false
	}
	if rest == "" {
		return true
	}
	last := rest[len(rest)-1]
	return last < '0' || last > '9'
}
