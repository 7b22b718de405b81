package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInsufficientBalance   = errors.New("saldo insuficiente")
	ErrInsufficientInventory = errors.New("inventario insuficiente")
	ErrServiceBlocked        = errors.New("servicio bloqueado temporalmente")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrTransient             = errors.New("error transitorio de almacenamiento")
)

// Transient envuelve un error inesperado de almacenamiento como ErrTransient,
// conservando el contexto para los logs. El caller puede reintentar la operación.
func Transient(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrTransient, op, err)
}

// IsBusinessError indica si err pertenece a la taxonomía esperada de negocio
// (resultados tipados que el caller debe manejar, no fallas de infraestructura).
func IsBusinessError(err error) bool {
	for _, e := range []error{
		ErrNotFound, ErrInvalidInput, ErrInsufficientBalance,
		ErrInsufficientInventory, ErrServiceBlocked, ErrConflict,
		ErrDuplicate, ErrUnauthorized, ErrForbidden,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
