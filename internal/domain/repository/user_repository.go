package repository

import (
	"context"

	"github.com/jhoicas/resto-inventario/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para cuentas de usuario.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
}
