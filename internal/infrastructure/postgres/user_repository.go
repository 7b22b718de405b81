package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/combustible-api/internal/domain"
	"github.com/jhoicas/combustible-api/internal/domain/entity"
	"github.com/jhoicas/combustible-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios operadores sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia de usuarios.
// Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// GetByUsuario obtiene un usuario por su nombre de login.
func (r *UserRepo) GetByUsuario(usuario string) (*entity.User, error) {
	query := `
		SELECT id, usuario, contrasena, nombre, es_admin, created_at
		FROM usuarios WHERE usuario = $1`
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, usuario).Scan(
		&u.ID, &u.Usuario, &u.PasswordHash, &u.Nombre, &u.EsAdmin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// Create persiste un usuario nuevo.
func (r *UserRepo) Create(u *entity.User) (int64, error) {
	query := `
		INSERT INTO usuarios (usuario, contrasena, nombre, es_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		u.Usuario, u.PasswordHash, u.Nombre, u.EsAdmin,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert usuario: %w", err)
	}
	return id, nil
}
