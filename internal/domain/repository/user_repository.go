package repository

import "github.com/jhoicas/combustible-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios del sistema.
type UserRepository interface {
	GetByUsuario(usuario string) (*entity.User, error)
	Create(u *entity.User) (int64, error)
}
