package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

var _ repository.ConfigRepository = (*ConfigRepo)(nil)

// ConfigRepo fila única sistema_config sobre PostgreSQL (usable con pool o
// tx).
type ConfigRepo struct {
	q Querier
}

// NewConfigRepository construye el adaptador de la configuración del
// sistema. Pasar pool o tx (Querier).
func NewConfigRepository(q Querier) *ConfigRepo {
	return &ConfigRepo{q: q}
}

func (r *ConfigRepo) get(forUpdate bool) (*entity.SystemConfig, error) {
	query := `
		SELECT id, retiros_bloqueados, limite_diario_gasolina, fecha_ultimo_reset
		FROM sistema_config WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var cfg entity.SystemConfig
	err := r.q.QueryRow(context.Background(), query, entity.SystemConfigID).Scan(
		&cfg.ID, &cfg.RetirosBloqueados, &cfg.LimiteDiarioGasolina, &cfg.FechaUltimoReset,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sistema_config: %w", err)
	}
	return &cfg, nil
}

// Get lee la configuración; nil si la fila aún no existe.
func (r *ConfigRepo) Get() (*entity.SystemConfig, error) {
	return r.get(false)
}

// GetForUpdate lee la configuración bloqueando la fila. Serializa las
// evaluaciones concurrentes del reset diario.
func (r *ConfigRepo) GetForUpdate() (*entity.SystemConfig, error) {
	return r.get(true)
}

// SetFechaUltimoReset fija la fecha del último reset aplicado.
func (r *ConfigRepo) SetFechaUltimoReset(fecha time.Time) error {
	query := `
		UPDATE sistema_config
		SET fecha_ultimo_reset = $1, fecha_actualizacion = NOW()
		WHERE id = $2`
	tag, err := r.q.Exec(context.Background(), query, fecha, entity.SystemConfigID)
	if err != nil {
		return fmt.Errorf("update fecha_ultimo_reset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetRetirosBloqueados activa o desactiva el bloqueo global.
func (r *ConfigRepo) SetRetirosBloqueados(bloqueado bool) error {
	query := `
		UPDATE sistema_config
		SET retiros_bloqueados = $1, fecha_actualizacion = NOW()
		WHERE id = $2`
	tag, err := r.q.Exec(context.Background(), query, bloqueado, entity.SystemConfigID)
	if err != nil {
		return fmt.Errorf("update retiros_bloqueados: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
