package order

import (
	"strings"

	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
)

// transitions aristas permitidas del diagrama de estados del pedido.
var transitions = map[string][]string{
	entity.OrderStatusPending: {entity.OrderStatusPaid, entity.OrderStatusCanceled},
	entity.OrderStatusPaid:    {entity.OrderStatusDelivered, entity.OrderStatusCanceled},
}

// Valores heredados del panel de caja en español.
var statusAliases = map[string]string{
	"pendiente": entity.OrderStatusPending,
	"pagado":    entity.OrderStatusPaid,
	"entregado": entity.OrderStatusDelivered,
	"cancelado": entity.OrderStatusCanceled,
	"cancelled": entity.OrderStatusCanceled,
}

// ParseStatus normaliza un estado recibido por la API. ok=false si no es un estado conocido.
func ParseStatus(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case entity.OrderStatusPending, entity.OrderStatusPaid, entity.OrderStatusDelivered, entity.OrderStatusCanceled:
		return s, true
	}
	if canon, ok := statusAliases[s]; ok {
		return canon, true
	}
	return "", false
}

// IsTerminal delivered y canceled no admiten más cambios.
func IsTerminal(status string) bool {
	return status == entity.OrderStatusDelivered || status == entity.OrderStatusCanceled
}

// CanTransition indica si from -> to es una arista del diagrama.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition devuelve *domain.IllegalTransitionError cuando from -> to no es alcanzable.
func CheckTransition(from, to string) error {
	if !CanTransition(from, to) {
		return &domain.IllegalTransitionError{From: from, To: to}
	}
	return nil
}

// NextStatuses estados alcanzables desde el actual (vacío si es terminal).
func NextStatuses(from string) []string {
	next := transitions[from]
	out := make([]string, len(next))
	copy(out, next)
	return out
}
