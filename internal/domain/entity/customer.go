package entity

import "time"

// Customer representa un comprador identificado por su cédula (clave primaria).
// Se actualiza con los últimos datos de contacto en cada pedido.
type Customer struct {
	IDNumber  string
	FullName  string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
