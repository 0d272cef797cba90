package usecases

import (
	"context"

	"github.com/your-org/catalog/internal/domain"
)

// AddRole создает роль. Изменять и удалять роли нельзя.
type AddRole struct {
	repo domain.RoleCreator
}

func NewAddRole(repo domain.RoleCreator) *AddRole {
	return &AddRole{repo: repo}
}

func (uc *AddRole) Create(ctx context.Context, payload domain.AddRole) (_ domain.Role, err error) {
	ctx, span := startSpan(ctx, "AddRole.Create")
	defer func() { endSpan(span, err) }()

	if err := payload.Validate(); err != nil {
		return domain.Role{}, err
	}
	return uc.repo.Create(ctx, payload)
}

// ListRoles возвращает все роли.
type ListRoles struct {
	repo domain.RoleLister
}

func NewListRoles(repo domain.RoleLister) *ListRoles {
	return &ListRoles{repo: repo}
}

func (uc *ListRoles) GetAll(ctx context.Context) (_ []domain.Role, err error) {
	ctx, span := startSpan(ctx, "ListRoles.GetAll")
	defer func() { endSpan(span, err) }()

	return uc.repo.GetAll(ctx)
}
