package entity

import "time"

// User usuario del sistema (operadores y administradores).
// Los clientes no tienen fila aquí: se autentican por cédula.
type User struct {
	ID           int64
	Usuario      string
	PasswordHash string
	Nombre       string
	EsAdmin      bool
	CreatedAt    time.Time
}
