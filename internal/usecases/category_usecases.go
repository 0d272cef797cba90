package usecases

import (
	"context"
	"fmt"

	"github.com/your-org/catalog/internal/domain"
)

// AddCategory создает категорию.
// Это точка расширения для бизнес-правил; по умолчанию только делегирует в репозиторий.
type AddCategory struct {
	repo   domain.CategoryCreator
	titles domain.CategoryTitleChecker
}

// AddCategoryOption настраивает AddCategory.
type AddCategoryOption func(*AddCategory)

// WithUniqueTitles запрещает создавать категорию с уже существующим title.
func WithUniqueTitles(titles domain.CategoryTitleChecker) AddCategoryOption {
	return func(uc *AddCategory) {
		uc.titles = titles
	}
}

func NewAddCategory(repo domain.CategoryCreator, opts ...AddCategoryOption) *AddCategory {
	uc := &AddCategory{repo: repo}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *AddCategory) Create(ctx context.Context, payload domain.AddCategory) (_ domain.Category, err error) {
	ctx, span := startSpan(ctx, "AddCategory.Create")
	defer func() { endSpan(span, err) }()

	if err := payload.Validate(); err != nil {
		return domain.Category{}, err
	}

	if uc.titles != nil {
		exists, err := uc.titles.FindByTitle(ctx, payload.Title)
		if err != nil {
			return domain.Category{}, err
		}
		if exists {
			return domain.Category{}, domain.NewValidationError("AddCategory.Create",
				fmt.Sprintf("category with title %q already exists", payload.Title))
		}
	}

	return uc.repo.Create(ctx, payload)
}

// ListCategories возвращает все категории.
type ListCategories struct {
	repo domain.CategoryLister
}

func NewListCategories(repo domain.CategoryLister) *ListCategories {
	return &ListCategories{repo: repo}
}

func (uc *ListCategories) GetAll(ctx context.Context) (_ []domain.Category, err error) {
	ctx, span := startSpan(ctx, "ListCategories.GetAll")
	defer func() { endSpan(span, err) }()

	return uc.repo.GetAll(ctx)
}

// GetCategory возвращает одну категорию; пустая модель, если ее нет.
type GetCategory struct {
	repo domain.CategoryFinder
}

func NewGetCategory(repo domain.CategoryFinder) *GetCategory {
	return &GetCategory{repo: repo}
}

func (uc *GetCategory) FindByID(ctx context.Context, id string) (_ domain.Category, err error) {
	ctx, span := startSpan(ctx, "GetCategory.FindByID")
	defer func() { endSpan(span, err) }()

	return uc.repo.FindByID(ctx, id)
}

// UpdateCategory частично обновляет категорию.
type UpdateCategory struct {
	repo domain.CategoryUpdater
}

func NewUpdateCategory(repo domain.CategoryUpdater) *UpdateCategory {
	return &UpdateCategory{repo: repo}
}

func (uc *UpdateCategory) Update(ctx context.Context, id string, payload domain.UpdateCategory) (_ domain.Category, err error) {
	ctx, span := startSpan(ctx, "UpdateCategory.Update")
	defer func() { endSpan(span, err) }()

	if err := payload.Validate(); err != nil {
		return domain.Category{}, err
	}
	return uc.repo.Update(ctx, id, payload)
}

// DeleteCategory удаляет категорию.
type DeleteCategory struct {
	repo domain.CategoryDeleter
}

func NewDeleteCategory(repo domain.CategoryDeleter) *DeleteCategory {
	return &DeleteCategory{repo: repo}
}

func (uc *DeleteCategory) Delete(ctx context.Context, id string) (_ domain.Category, err error) {
	ctx, span := startSpan(ctx, "DeleteCategory.Delete")
	defer func() { endSpan(span, err) }()

	return uc.repo.Delete(ctx, id)
}
