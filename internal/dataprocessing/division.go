package dataprocessing

import (
	"strings"
	"unicode"
)

// marketingPrefix reclassifies any sales-labelled division ("penjualan",
// "penj.", and every variant in between) as Marketing before the alias
// table is consulted.
const marketingPrefix = "penj"

// divisionAliases maps known misspellings and abbreviations of division
// labels, lower-cased, to their canonical form. Loaded once; never mutated.
var divisionAliases = map[string]string{
	"adm & k":    "Adm & K",
	"adm & keu":  "Adm & K",
	"adm & acct": "Adm & K",
	"f & a":      "Adm & K",
	"moa":        "MOA",
	"m o a":      "MOA",
	"logistik":   "Logistik",
	"logistic":   "Logistik",
	"teknik":     "Teknik",
	"tehnik":     "Teknik",
	"busdev":     "Bus-Dev",
	"bus-dev":    "Bus-Dev",
	"gdg o. jad": "Gdg O. Jad",
	"g o j":      "Gdg O. Jad",
	"pema-mutu":  "Pem-Mutu",
	"pem-mutu":   "Pem-Mutu",
	"pemasmutu":  "Pem-Mutu",
	"pros-dev":   "Pros-Dev",
	"prosdev":    "Pros-Dev",
	"prod":       "Produksi",
	"produksi":   "Produksi",
	"gbb":        "Gdg B. Bak",
	"gdg b. bak": "Gdg B. Bak",
}

// CanonicalDivision maps a noisy free-text division label to its canonical
// name. Unknown labels fall back to a title-cased form of the trimmed input,
// so the result is never empty unless the input was.
func CanonicalDivision(name string) string {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)

	if strings.HasPrefix(lower, marketingPrefix) {
		return "Marketing"
	}
	if canonical, ok := divisionAliases[lower]; ok {
		return canonical
	}
	return titleCase(trimmed)
}

// titleCase upper-cases every letter that follows a non-letter and
// lower-cases the rest, so "gdg b. bak" becomes "Gdg B. Bak" and "bus-dev"
// becomes "Bus-Dev". The alias table was built around this formatting.
func titleCase(s string) string {
	out := []rune(strings.ToLower(s))
	prevLetter := false
	for i, r := range out {
		if unicode.IsLetter(r) {
			if !prevLetter {
				out[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(out)
}
