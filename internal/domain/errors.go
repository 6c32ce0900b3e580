package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidSecret      = errors.New("clave de autorización inválida")
	ErrIllegalTransition  = errors.New("transición de estado no permitida")
	ErrTransient          = errors.New("falla temporal de almacenamiento, intente de nuevo")
)

// ValidationError lista los campos rechazados antes de tocar la base de datos.
// Es ErrInvalidInput para errors.Is.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea un ValidationError vacío listo para acumular campos.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add registra el problema de un campo; conserva el primer mensaje por campo.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Empty indica si no se acumuló ningún campo.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "datos inválidos: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// StockShortage describe una línea del pedido que no pudo descontarse.
type StockShortage struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

// InsufficientStockError nombra todos los productos sin existencias suficientes.
type InsufficientStockError struct {
	Items []StockShortage
}

func (e *InsufficientStockError) Error() string {
	names := make([]string, 0, len(e.Items))
	for _, it := range e.Items {
		names = append(names, fmt.Sprintf("%s (pedido %d, disponible %d)", it.Name, it.Requested, it.Available))
	}
	return "stock insuficiente: " + strings.Join(names, ", ")
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// IllegalTransitionError indica un cambio de estado fuera del diagrama del pedido.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("no se puede pasar un pedido de %q a %q", e.From, e.To)
}

func (e *IllegalTransitionError) Is(target error) bool { return target == ErrIllegalTransition }
