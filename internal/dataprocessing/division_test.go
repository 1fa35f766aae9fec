package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalDivision(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"known alias", "adm & keu", "Adm & K"},
		{"alias mixed case", "ADM & ACCT", "Adm & K"},
		{"alias with padding", "  logistik  ", "Logistik"},
		{"misspelled teknik", "tehnik", "Teknik"},
		{"abbreviation", "gbb", "Gdg B. Bak"},
		{"spaced abbreviation", "m o a", "MOA"},
		{"production short form", "prod", "Produksi"},
		{"sales prefix wins", "penjualan", "Marketing"},
		{"sales prefix abbreviated", "Penj. Luar", "Marketing"},
		{"sales prefix upper case", "PENJUALAN DALAM", "Marketing"},
		{"unknown falls back to title case", "warehouse timur", "Warehouse Timur"},
		{"unknown with punctuation", "gdg x. sel", "Gdg X. Sel"},
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalDivision(tt.in))
		})
	}
}

// The marketing prefix rule must fire before the alias table is consulted,
// regardless of what the table contains.
func TestCanonicalDivisionMarketingPrefixPrecedence(t *testing.T) {
	for _, in := range []string{"penj", "penjualan", "penj-a", "Penjaga Gudang"} {
		assert.Equal(t, "Marketing", CanonicalDivision(in), "input %q", in)
	}
}
