package repository

import (
	"time"

	"github.com/jhoicas/combustible-api/internal/domain/entity"
)

// ConfigRepository puerto de la fila única sistema_config.
type ConfigRepository interface {
	Get() (*entity.SystemConfig, error)
	// GetForUpdate bloquea la fila de configuración (SELECT FOR UPDATE).
	// El reset diario la usa para serializar evaluaciones concurrentes.
	GetForUpdate() (*entity.SystemConfig, error)
	SetFechaUltimoReset(fecha time.Time) error
	SetRetirosBloqueados(bloqueado bool) error
}
