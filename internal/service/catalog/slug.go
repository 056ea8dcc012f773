package catalog

import (
	"math/rand"
	"strings"
	"unicode"
)

// Slugify lowers the name and collapses anything non-alphanumeric into
// single dashes.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

const skuAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateSKU builds an admin-readable SKU from brand, name and size plus a
// short random suffix to keep it unique across re-created variants.
func GenerateSKU(brand, name, size string) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = skuAlphabet[rand.Intn(len(skuAlphabet))]
	}

	parts := []string{
		skuToken(brand, 3),
		skuToken(name, 3),
		skuToken(size, 4),
		string(suffix),
	}
	return strings.Join(parts, "-")
}

func skuToken(s string, max int) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			if b.Len() >= max {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}
