package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/domain"
)

// CategoryRepository хранит категории в коллекции categories.
type CategoryRepository struct {
	store mongoStore[domain.Category]
}

var _ domain.CategoryRepository = (*CategoryRepository)(nil)

// NewCategoryRepository создает репозиторий категорий поверх общего gateway.
func NewCategoryRepository(gateway *MongoGateway, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		store: newMongoStore[domain.Category](gateway, CategoriesCollection, "Category", logger),
	}
}

// Create сохраняет категорию и возвращает ее вместе с выданным id.
func (r *CategoryRepository) Create(ctx context.Context, payload domain.AddCategory) (domain.Category, error) {
	return r.store.create(ctx, payload)
}

// GetAll возвращает все категории.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	return r.store.getAll(ctx)
}

// FindByTitle сообщает, есть ли категория с точно таким title.
func (r *CategoryRepository) FindByTitle(ctx context.Context, title string) (bool, error) {
	return r.store.exists(ctx, r.store.op("FindByTitle"), bson.M{"title": title})
}

// FindByID возвращает категорию или пустую модель, если ее нет.
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (domain.Category, error) {
	return r.store.findByID(ctx, id)
}

// Update меняет title, description и price. ownerId не обновляется.
func (r *CategoryRepository) Update(ctx context.Context, id string, payload domain.UpdateCategory) (domain.Category, error) {
	if !domain.IsValidID(id) {
		return domain.Category{}, domain.NewValidationError(r.store.op("Update"), "invalid 'id' format")
	}
	if err := payload.Validate(); err != nil {
		return domain.Category{}, err
	}
	return r.store.update(ctx, id, payload)
}

// Delete удаляет категорию и возвращает ее последнее состояние.
func (r *CategoryRepository) Delete(ctx context.Context, id string) (domain.Category, error) {
	return r.store.delete(ctx, id)
}
