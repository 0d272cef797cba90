package repositories

import (
	"context"

	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/domain"
)

// RoleRepository хранит роли в коллекции roles. Только добавление и чтение.
type RoleRepository struct {
	store mongoStore[domain.Role]
}

var _ domain.RoleRepository = (*RoleRepository)(nil)

func NewRoleRepository(gateway *MongoGateway, logger *zap.Logger) *RoleRepository {
	return &RoleRepository{
		store: newMongoStore[domain.Role](gateway, RolesCollection, "Role", logger),
	}
}

func (r *RoleRepository) Create(ctx context.Context, payload domain.AddRole) (domain.Role, error) {
	if payload.Permissions == nil {
		payload.Permissions = []string{}
	}
	return r.store.create(ctx, payload)
}

func (r *RoleRepository) GetAll(ctx context.Context) ([]domain.Role, error) {
	return r.store.getAll(ctx)
}
