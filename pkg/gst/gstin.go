// Package gst holds GSTIN structure rules and the state-code catalogue
// used to verify vendor registrations (CBIC GSTIN format, 15 characters).
package gst

import (
	"fmt"
	"strings"
)

// gstinLength is fixed: 2 state digits, 10 PAN chars, entity code, 'Z', checksum.
const gstinLength = 15

// checksumAlphabet is the base-36 alphabet used by the GSTIN check character.
const checksumAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Normalize uppercases and strips spaces, dots and dashes.
// "27 aapfu-0939f1zv" → "27AAPFU0939F1ZV"
func Normalize(gstin string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(gstin) {
		switch r {
		case ' ', '\t', '-', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Validate checks the structure, state code and check character of a GSTIN.
// The input is normalized first.
func Validate(gstin string) error {
	g := Normalize(gstin)
	if len(g) != gstinLength {
		return fmt.Errorf("gst: GSTIN must have %d characters, got %d", gstinLength, len(g))
	}
	if !isDigit(g[0]) || !isDigit(g[1]) {
		return fmt.Errorf("gst: GSTIN must start with a 2-digit state code")
	}
	if _, ok := StateName(g[:2]); !ok {
		return fmt.Errorf("gst: unknown state code %s", g[:2])
	}
	if err := validatePAN(g[2:12]); err != nil {
		return err
	}
	if !isAlnum(g[12]) {
		return fmt.Errorf("gst: invalid entity code %q", g[12])
	}
	if g[13] != 'Z' {
		return fmt.Errorf("gst: 14th character must be Z, got %q", g[13])
	}
	expected, err := ComputeCheckChar(g[:14])
	if err != nil {
		return err
	}
	if g[14] != expected {
		return fmt.Errorf("gst: invalid check character: expected %c, got %c", expected, g[14])
	}
	return nil
}

// ComputeCheckChar returns the check character for the first 14 characters.
// Odd positions (1-based) weigh 1, even positions weigh 2; each product
// contributes quotient + remainder by 36.
func ComputeCheckChar(first14 string) (byte, error) {
	if len(first14) != gstinLength-1 {
		return 0, fmt.Errorf("gst: need 14 characters to compute the check character, got %d", len(first14))
	}
	sum := 0
	for i := 0; i < len(first14); i++ {
		v := strings.IndexByte(checksumAlphabet, first14[i])
		if v < 0 {
			return 0, fmt.Errorf("gst: invalid character %q", first14[i])
		}
		factor := 1
		if i%2 == 1 {
			factor = 2
		}
		p := v * factor
		sum += p/36 + p%36
	}
	return checksumAlphabet[(36-sum%36)%36], nil
}

// StateCode returns the first two characters of a normalized GSTIN.
func StateCode(gstin string) string {
	g := Normalize(gstin)
	if len(g) < 2 {
		return ""
	}
	return g[:2]
}

// validatePAN checks the AAAAA9999A shape embedded in the GSTIN.
func validatePAN(pan string) error {
	for i := 0; i < len(pan); i++ {
		c := pan[i]
		wantDigit := i >= 5 && i <= 8
		if wantDigit && !isDigit(c) || !wantDigit && !isUpper(c) {
			return fmt.Errorf("gst: invalid PAN segment %s", pan)
		}
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isAlnum(c byte) bool { return isDigit(c) || isUpper(c) }
