// =============================================================================
// Budget CSV Cleaner - Value Normalization Tests
// =============================================================================

package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadCode(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		width    int
		expected string
	}{
		{"empty stays empty", "", 4, ""},
		{"whitespace only", "   ", 4, ""},
		{"ellipsis placeholder", "...", 4, ""},
		{"pads short code", "401", 4, "0401"},
		{"pads single digit", "2", 2, "02"},
		{"exact width untouched", "2059", 4, "2059"},
		{"longer than width never truncated", "12345", 4, "12345"},
		{"strips surrounding whitespace", " 41 ", 4, "0041"},
		{"stray glyph left for validation", "12a4", 4, "12a4"},
		{"float artifact left for validation", "2059.0", 4, "2059.0"},
		{"pure non-digits returned trimmed", " abc ", 4, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PadCode(tt.value, tt.width))
		})
	}
}

func TestPadCodeIdempotent(t *testing.T) {
	values := []string{"", "...", "4", "401", "2059", "12345", " 41 ", "12a4", "abc"}
	for _, v := range values {
		once := PadCode(v, 4)
		assert.Equal(t, once, PadCode(once, 4), "PadCode must be idempotent for %q", v)
	}
}

func TestCleanFinancialValue(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"ellipsis placeholder", "...", ""},
		{"plain integer", "12500", "12500"},
		{"plain decimal", "125.50", "125.50"},
		{"negative", "-125", "-125"},
		{"thousands separators", "1,25,000", "125000"},
		{"internal spaces", "1 25 000", "125000"},
		{"ascii dash blank", "-", ""},
		{"en dash blank", "–", ""},
		{"em dash blank", "—", ""},
		{"minus sign blank", "−", ""},
		{"double dash blank", "--", ""},
		{"stray currency glyph", "₹1200", "1200"},
		{"trailing glyph", "1200*", "1200"},
		{"no digits at all", "abc", ""},
		{"double minus keeps leading sign", "--5", "-5"},
		{"mid-value dash dropped", "12-3", "123"},
		{"second decimal point dropped", "1.2.3", "1.23"},
		{"trailing decimal point trimmed", "12.", "12"},
		{"leading decimal point zero-filled", ".5", "0.5"},
		{"negative leading decimal", "-.5", "-0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanFinancialValue(tt.value))
		})
	}
}

// Whatever goes in, the output is either blank or strictly numeric. The
// validation stage depends on this: a financial cell that survives cleaning
// non-numeric is a bug here, not a data defect there.
func TestCleanFinancialValueAlwaysCanonical(t *testing.T) {
	inputs := []string{
		"", " ", "...", "-", "–—", "12,500", "1.2.3", "12-3", "--5", "12.",
		".5", "-.5", "Rs. 1,200.75", "abc", "12a4", "(500)", "1 2 3", "0",
		"-0.00", "00123", "£999", "12..", "-..-", "5-", "-5-",
	}
	for _, in := range inputs {
		out := CleanFinancialValue(in)
		require.True(t, IsCanonicalNumber(out),
			"CleanFinancialValue(%q) = %q is neither blank nor canonical", in, out)
	}
}

func TestIsDigits(t *testing.T) {
	assert.True(t, IsDigits("0401"))
	assert.True(t, IsDigits("7"))
	assert.False(t, IsDigits(""))
	assert.False(t, IsDigits("40a1"))
	assert.False(t, IsDigits("-41"))
	assert.False(t, IsDigits("4 1"))
}

func TestIsCanonicalNumber(t *testing.T) {
	assert.True(t, IsCanonicalNumber(""))
	assert.True(t, IsCanonicalNumber("0"))
	assert.True(t, IsCanonicalNumber("-125"))
	assert.True(t, IsCanonicalNumber("125.50"))
	assert.False(t, IsCanonicalNumber("1,250"))
	assert.False(t, IsCanonicalNumber("12."))
	assert.False(t, IsCanonicalNumber(".5"))
	assert.False(t, IsCanonicalNumber("12a4"))
}
