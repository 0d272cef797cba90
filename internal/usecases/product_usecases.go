package usecases

import (
	"context"
	"fmt"

	"github.com/your-org/catalog/internal/domain"
)

// productRules - необязательные проверки, общие для создания и обновления товара.
type productRules struct {
	categories domain.CategoryFinder
}

// ProductOption настраивает use-case'ы товаров.
type ProductOption func(*productRules)

// WithCategoryCheck отклоняет товар, ссылающийся на несуществующую категорию.
// Проверка и запись не атомарны: транзакций между коллекциями нет.
func WithCategoryCheck(categories domain.CategoryFinder) ProductOption {
	return func(r *productRules) {
		r.categories = categories
	}
}

func newProductRules(opts []ProductOption) productRules {
	var r productRules
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r productRules) checkCategory(ctx context.Context, op, categoryID string) error {
	if r.categories == nil || categoryID == "" {
		return nil
	}
	category, err := r.categories.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category.IsEmpty() {
		return domain.NewValidationError(op, fmt.Sprintf("category %s does not exist", categoryID))
	}
	return nil
}

// AddProduct создает товар. categoryId проверяется до обращения к базе.
type AddProduct struct {
	repo  domain.ProductCreator
	rules productRules
}

func NewAddProduct(repo domain.ProductCreator, opts ...ProductOption) *AddProduct {
	return &AddProduct{repo: repo, rules: newProductRules(opts)}
}

func (uc *AddProduct) Create(ctx context.Context, payload domain.AddProduct) (_ domain.Product, err error) {
	ctx, span := startSpan(ctx, "AddProduct.Create")
	defer func() { endSpan(span, err) }()

	if err := payload.Validate(); err != nil {
		return domain.Product{}, err
	}
	if err := uc.rules.checkCategory(ctx, "AddProduct.Create", payload.CategoryID); err != nil {
		return domain.Product{}, err
	}
	return uc.repo.Create(ctx, payload)
}

// ListProducts возвращает все товары.
type ListProducts struct {
	repo domain.ProductLister
}

func NewListProducts(repo domain.ProductLister) *ListProducts {
	return &ListProducts{repo: repo}
}

func (uc *ListProducts) GetAll(ctx context.Context) (_ []domain.Product, err error) {
	ctx, span := startSpan(ctx, "ListProducts.GetAll")
	defer func() { endSpan(span, err) }()

	return uc.repo.GetAll(ctx)
}

// GetProduct возвращает один товар; пустая модель, если его нет.
type GetProduct struct {
	repo domain.ProductFinder
}

func NewGetProduct(repo domain.ProductFinder) *GetProduct {
	return &GetProduct{repo: repo}
}

func (uc *GetProduct) FindByID(ctx context.Context, id string) (_ domain.Product, err error) {
	ctx, span := startSpan(ctx, "GetProduct.FindByID")
	defer func() { endSpan(span, err) }()

	return uc.repo.FindByID(ctx, id)
}

// UpdateProduct частично обновляет товар.
type UpdateProduct struct {
	repo  domain.ProductUpdater
	rules productRules
}

func NewUpdateProduct(repo domain.ProductUpdater, opts ...ProductOption) *UpdateProduct {
	return &UpdateProduct{repo: repo, rules: newProductRules(opts)}
}

func (uc *UpdateProduct) Update(ctx context.Context, id string, payload domain.UpdateProduct) (_ domain.Product, err error) {
	ctx, span := startSpan(ctx, "UpdateProduct.Update")
	defer func() { endSpan(span, err) }()

	// Формат id проверяем до любых обращений к хранилищу, включая проверку категории.
	if !domain.IsValidID(id) {
		return domain.Product{}, domain.NewValidationError("UpdateProduct.Update", "invalid 'id' format")
	}
	if err := payload.Validate(); err != nil {
		return domain.Product{}, err
	}
	if err := uc.rules.checkCategory(ctx, "UpdateProduct.Update", payload.CategoryID); err != nil {
		return domain.Product{}, err
	}
	return uc.repo.Update(ctx, id, payload)
}

// DeleteProduct удаляет товар.
type DeleteProduct struct {
	repo domain.ProductDeleter
}

func NewDeleteProduct(repo domain.ProductDeleter) *DeleteProduct {
	return &DeleteProduct{repo: repo}
}

func (uc *DeleteProduct) Delete(ctx context.Context, id string) (_ domain.Product, err error) {
	ctx, span := startSpan(ctx, "DeleteProduct.Delete")
	defer func() { endSpan(span, err) }()

	return uc.repo.Delete(ctx, id)
}
