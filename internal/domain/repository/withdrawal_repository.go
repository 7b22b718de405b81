package repository

import (
	"time"

	"github.com/jhoicas/combustible-api/internal/domain/entity"
)

// WithdrawalFilter filtros opcionales para el historial de retiros.
type WithdrawalFilter struct {
	ClienteID *int64
	Desde     *time.Time
	Hasta     *time.Time
}

// WithdrawalRepository puerto de persistencia para retiros (inmutables).
type WithdrawalRepository interface {
	Create(w *entity.Withdrawal) (int64, error)
	List(f WithdrawalFilter) ([]entity.Withdrawal, error)
}
