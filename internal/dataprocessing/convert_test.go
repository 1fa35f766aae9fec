package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		def  float64
		want float64
	}{
		{"plain number text", "1500", 0, 1500},
		{"decimal text", "1500.75", 0, 1500.75},
		{"thousands separators", "1,500,000", 0, 1500000},
		{"surrounding whitespace", "  250  ", 0, 250},
		{"non-breaking spaces", "\u00a01\u00a0200\u00a0", 0, 1200},
		{"grouping spaces", "1 200 300", 0, 1200300},
		{"empty text", "", 42.5, 42.5},
		{"whitespace only", "   ", 7, 7},
		{"nil value", nil, 3.25, 3.25},
		{"garbage text", "abc", 1.5, 1.5},
		{"native float", 12.5, 0, 12.5},
		{"native int", 12, 0, 12},
		{"byte slice", []byte("99.5"), 0, 99.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFloat(tt.in, tt.def))
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		def  int
		want int
	}{
		{"plain integer text", "12", 0, 12},
		{"decimal text truncates", "12.9", 0, 12},
		{"whitespace trimmed", " 8 ", 0, 8},
		{"empty text", "", 5, 5},
		{"nil value", nil, 5, 5},
		{"garbage text", "x12", 3, 3},
		{"native int64", int64(20), 0, 20},
		{"native float truncates", 9.99, 0, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in, tt.def))
		})
	}
}

// Both converters are total: arbitrary input must produce a value, never a
// panic.
func TestConvertersNeverPanic(t *testing.T) {
	inputs := []any{nil, "", "  ", "1,2,3,4", []byte{0x00, 0xff}, struct{}{}, true, -1.5}
	for _, in := range inputs {
		assert.NotPanics(t, func() { ToFloat(in, 0) })
		assert.NotPanics(t, func() { ToInt(in, 0) })
	}
}
