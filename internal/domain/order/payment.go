package order

import (
	"strings"

	"github.com/zone-laptop/zone-store/internal/domain/entity"
)

// MinReferenceLength largo mínimo de la referencia de pago móvil.
const MinReferenceLength = 4

// ParsePaymentMethod acepta los valores canónicos y los que enviaba el checkout anterior.
func ParsePaymentMethod(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case entity.PaymentInStore, "store", "tienda":
		return entity.PaymentInStore, true
	case entity.PaymentMobileTransfer, "pago_movil", "pago-movil", "pagomovil":
		return entity.PaymentMobileTransfer, true
	}
	return "", false
}

// ValidReference al menos MinReferenceLength caracteres, solo letras y dígitos.
func ValidReference(ref string) bool {
	if len([]rune(ref)) < MinReferenceLength {
		return false
	}
	for _, r := range ref {
		isDigit := r >= '0' && r <= '9'
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isDigit && !isLetter {
			return false
		}
	}
	return true
}
