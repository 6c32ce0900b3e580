package customer

import (
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// NormalizeIDNumber lleva la cédula a su forma canónica: NFC, ancho normal, mayúsculas y sin
// espacios, puntos ni guiones. "v-12.345.678" -> "V12345678".
func NormalizeIDNumber(raw string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFC, width.Fold), raw)
	if err != nil {
		folded = raw
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(folded) {
		switch r {
		case ' ', '.', '-', '\t', '\n', '\r':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeName NFC y espacios colapsados, para que el mismo nombre no se guarde de dos formas.
func NormalizeName(raw string) string {
	return strings.Join(strings.Fields(norm.NFC.String(raw)), " ")
}
