// Package phone canonicalizes free-form phone input.  Phone numbers are the
// only key the service has for deduplicating bookings and looking them up
// again, and visitors type them every way imaginable: with or without the
// +66 country code, with a leading trunk zero, with spaces, hyphens or
// parentheses.  Normalize produces one canonical representation used for
// storage and equality; Candidates produces every form that should match a
// stored value, so lookups also find records written under an older
// convention.
package phone

import (
	"regexp"
	"strings"
)

// validPattern accepts an optional leading + followed by 8 to 20 digits.
var validPattern = regexp.MustCompile(`^\+?\d{8,20}$`)

// nonDigit matches every rune that is not a decimal digit.
var nonDigit = regexp.MustCompile(`\D+`)

// Normalize canonicalizes raw phone input.  Thai numbers come out as
// +66 followed by the subscriber digits (country code folded in, trunk zero
// dropped); anything else keeps its digits, prefixed with + only when the
// input carried one.  Empty or digit-free input normalizes to "" and must be
// treated as invalid by callers.  Normalize is idempotent over its own
// outputs.
func Normalize(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return ""
	}
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	p = replacer.Replace(p)

	// International dialing prefix 00 is the same as +.
	if strings.HasPrefix(p, "00") {
		p = "+" + p[2:]
	}

	hasPlus := strings.HasPrefix(p, "+")
	digits := nonDigit.ReplaceAllString(p, "")
	if digits == "" {
		return ""
	}

	if strings.HasPrefix(digits, "66") {
		rest := digits[2:]
		// Some people write the trunk zero even after the country code.
		rest = strings.TrimPrefix(rest, "0")
		return "+66" + rest
	}

	// Local format: trunk zero plus 8 or 9 subscriber digits.
	if strings.HasPrefix(digits, "0") && (len(digits) == 9 || len(digits) == 10) {
		return "+66" + digits[1:]
	}

	if hasPlus {
		return "+" + digits
	}
	return digits
}

// IsValid reports whether a normalized value looks like a usable phone
// number: an optional leading + and 8-20 digits.
func IsValid(normalized string) bool {
	return normalized != "" && validPattern.MatchString(normalized)
}

// Candidates returns every representation of the input that a stored booking
// might have been written under: the canonical form, the raw digits-only
// form, and for +66 numbers the bare 66... and local 0... spellings.
// Duplicates and empty strings are removed; order is insertion order.
func Candidates(raw string) []string {
	input := strings.TrimSpace(raw)
	if input == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	norm := Normalize(input)
	add(norm)
	add(nonDigit.ReplaceAllString(input, ""))

	if rest, ok := strings.CutPrefix(norm, "+66"); ok && rest != "" {
		add("66" + rest)
		add("0" + rest)
	}
	return out
}
