package entity

import "time"

// Roles válidos para User.
const (
	RoleCliente = "cliente"
	RoleCajero  = "cajero"
	RoleAdmin   = "admin"
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleCliente, RoleCajero, RoleAdmin:
		return true
	}
	return false
}

// User representa una cuenta de la tienda (cliente registrado o personal de caja/administración).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	IDNumber     string
	Phone        string
	Address      string
	Role         string // cliente, cajero, admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
