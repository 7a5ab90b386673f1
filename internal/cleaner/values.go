// =============================================================================
// Budget CSV Cleaner - Value Normalization Helpers
// =============================================================================
//
// Pure string scrubbing for the two value families that the extraction step
// mangles most often:
//   - hierarchical codes, which lose their leading zeros ("401" for "0401")
//   - financial cells, which pick up thousands separators, stray glyphs and
//     typographic dashes
//
// Both helpers are conservative: they never truncate digits and they never
// invent data. Anything that cannot be normalized safely is left for the
// validation stage to flag.
//
// =============================================================================

package cleaner

import (
	"regexp"
	"strings"
	"unicode"
)

// NumericPattern is the strict shape of a cleaned financial value: an
// optionally signed decimal with no separators.
var NumericPattern = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)

// dashRunes are the dash-family glyphs that scanned tables use for a blank
// budget cell: ASCII hyphen, en dash, em dash, minus sign, hyphen, figure
// dash.
const dashRunes = "-–—−‐‒"

// PadCode left-pads a hierarchical code with zeros to the required width.
//
// The "..." placeholder and pure whitespace normalize to "". A value
// containing anything but digits is returned trimmed and otherwise
// untouched: stripping the stray characters would hide a data-quality
// defect that validation must report instead. Codes already at or beyond
// the required width are returned unchanged, padding never truncates.
//
// PadCode is idempotent: PadCode(PadCode(v, w), w) == PadCode(v, w).
func PadCode(value string, width int) string {
	if value == "" {
		return ""
	}

	stripped := strings.TrimSpace(value)
	if stripped == "..." {
		return ""
	}

	if !IsDigits(stripped) || len(stripped) >= width {
		return stripped
	}

	return strings.Repeat("0", width-len(stripped)) + stripped
}

// CleanFinancialValue normalizes a financial cell.
//
// The result is always either "" (blank budget cell) or a string matching
// NumericPattern. The cleaning steps, in order:
//   - trim; "..." and whitespace-only become ""
//   - strip internal whitespace and comma thousands separators
//   - a value made up solely of dash-family glyphs becomes "" (scanned
//     tables print a dash for an empty cell)
//   - a value that already matches NumericPattern is kept as-is
//   - otherwise everything except digits, '-' and '.' is stripped; if no
//     digit survives the result is ""
//   - multiple '-': all are dropped, then a single leading '-' is restored
//     only if the pre-filter value started with one
//   - multiple '.': only the first is kept, later digits are concatenated
func CleanFinancialValue(value string) string {
	if value == "" {
		return ""
	}

	stripped := strings.TrimSpace(value)
	if stripped == "" || stripped == "..." {
		return ""
	}

	var b strings.Builder
	for _, r := range stripped {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		b.WriteRune(r)
	}
	normalized := b.String()

	if normalized == "" || isDashOnly(normalized) {
		return ""
	}

	if NumericPattern.MatchString(normalized) {
		return normalized
	}

	filtered := keepNumericRunes(normalized)
	if !containsDigit(filtered) {
		return ""
	}

	if strings.Count(filtered, "-") > 1 {
		filtered = strings.ReplaceAll(filtered, "-", "")
		if strings.HasPrefix(normalized, "-") {
			filtered = "-" + filtered
		}
	}

	if strings.Count(filtered, ".") > 1 {
		first := strings.Index(filtered, ".")
		filtered = filtered[:first+1] + strings.ReplaceAll(filtered[first+1:], ".", "")
	}

	// A lone minus embedded mid-value ("12-3") carries no sign meaning.
	if strings.LastIndex(filtered, "-") > 0 {
		neg := strings.HasPrefix(filtered, "-")
		filtered = strings.ReplaceAll(filtered, "-", "")
		if neg {
			filtered = "-" + filtered
		}
	}

	// Bare decimal points: ".5" means 0.5, "12." means 12.
	filtered = strings.TrimSuffix(filtered, ".")
	if strings.HasPrefix(filtered, ".") {
		filtered = "0" + filtered
	} else if strings.HasPrefix(filtered, "-.") {
		filtered = "-0" + filtered[1:]
	}

	return filtered
}

// IsCanonicalNumber reports whether a cleaned value is empty or matches the
// strict numeric pattern. Validation uses this on financial cells.
func IsCanonicalNumber(value string) bool {
	return value == "" || NumericPattern.MatchString(value)
}

// IsDigits reports whether value is non-empty and all ASCII digits.
func IsDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func keepNumericRunes(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func isDashOnly(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(dashRunes, r) {
			return false
		}
	}
	return s != ""
}
