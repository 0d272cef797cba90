package repositories

import (
	"context"

	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/domain"
)

// ProductRepository хранит товары в коллекции products.
// Существование категории по categoryId здесь не проверяется.
type ProductRepository struct {
	store mongoStore[domain.Product]
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository создает репозиторий товаров.
func NewProductRepository(gateway *MongoGateway, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		store: newMongoStore[domain.Product](gateway, ProductsCollection, "Product", logger),
	}
}

func (r *ProductRepository) Create(ctx context.Context, payload domain.AddProduct) (domain.Product, error) {
	return r.store.create(ctx, payload)
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	return r.store.getAll(ctx)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	return r.store.findByID(ctx, id)
}

func (r *ProductRepository) Update(ctx context.Context, id string, payload domain.UpdateProduct) (domain.Product, error) {
	if !domain.IsValidID(id) {
		return domain.Product{}, domain.NewValidationError(r.store.op("Update"), "invalid 'id' format")
	}
	if err := payload.Validate(); err != nil {
		return domain.Product{}, err
	}
	return r.store.update(ctx, id, payload)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (domain.Product, error) {
	return r.store.delete(ctx, id)
}
