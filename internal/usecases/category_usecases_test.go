package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/your-org/catalog/internal/domain"
)

const categoryID = "507f1f77bcf86cd799439011"

func booksPayload() domain.AddCategory {
	return domain.AddCategory{Title: "Books", Description: "d", Price: 10, OwnerID: "u1"}
}

func TestAddCategory_Delegates(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := NewAddCategory(repo)
	ctx := context.Background()

	expected := domain.Category{ID: categoryID, Title: "Books", Description: "d", Price: 10, OwnerID: "u1"}
	repo.On("Create", mock.Anything, booksPayload()).Return(expected, nil).Once()

	category, err := uc.Create(ctx, booksPayload())
	require.NoError(t, err)
	assert.Equal(t, expected, category)

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "FindByTitle", mock.Anything, mock.Anything)
}

func TestAddCategory_PropagatesErrorUnchanged(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := NewAddCategory(repo)

	storageErr := domain.NewStorageError("CategoryRepository.Create", assert.AnError)
	repo.On("Create", mock.Anything, booksPayload()).Return(domain.Category{}, storageErr).Once()

	_, err := uc.Create(context.Background(), booksPayload())
	assert.Same(t, storageErr, err)
	repo.AssertExpectations(t)
}

func TestAddCategory_InvalidPayloadSkipsRepository(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := NewAddCategory(repo)

	_, err := uc.Create(context.Background(), domain.AddCategory{Description: "d", OwnerID: "u1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddCategory_UniqueTitles(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate rejected", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uc := NewAddCategory(repo, WithUniqueTitles(repo))

		repo.On("FindByTitle", mock.Anything, "Books").Return(true, nil).Once()

		_, err := uc.Create(ctx, booksPayload())
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("new title accepted", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uc := NewAddCategory(repo, WithUniqueTitles(repo))

		repo.On("FindByTitle", mock.Anything, "Books").Return(false, nil).Once()
		repo.On("Create", mock.Anything, booksPayload()).Return(domain.Category{ID: categoryID, Title: "Books"}, nil).Once()

		category, err := uc.Create(ctx, booksPayload())
		require.NoError(t, err)
		assert.Equal(t, categoryID, category.ID)
		repo.AssertExpectations(t)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uc := NewAddCategory(repo, WithUniqueTitles(repo))

		repo.On("FindByTitle", mock.Anything, "Books").Return(false, domain.NewStorageError("op", assert.AnError)).Once()

		_, err := uc.Create(ctx, booksPayload())
		assert.ErrorIs(t, err, domain.ErrStorage)
	})
}

func TestListCategories(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := NewListCategories(repo)

	categories := []domain.Category{{ID: categoryID, Title: "Books"}}
	repo.On("GetAll", mock.Anything).Return(categories, nil).Once()

	result, err := uc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, categories, result)
	repo.AssertExpectations(t)
}

func TestGetCategory(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := NewGetCategory(repo)

	repo.On("FindByID", mock.Anything, categoryID).Return(domain.Category{}, nil).Once()

	category, err := uc.FindByID(context.Background(), categoryID)
	require.NoError(t, err)
	assert.True(t, category.IsEmpty())
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()
	payload := domain.UpdateCategory{Title: "Comics", Description: "d"}

	t.Run("delegates", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uc := NewUpdateCategory(repo)

		repo.On("Update", mock.Anything, categoryID, payload).Return(domain.Category{ID: categoryID, Title: "Comics"}, nil).Once()

		category, err := uc.Update(ctx, categoryID, payload)
		require.NoError(t, err)
		assert.Equal(t, "Comics", category.Title)
		repo.AssertExpectations(t)
	})

	t.Run("not found propagates", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uc := NewUpdateCategory(repo)

		notFound := domain.NewNotFoundError("CategoryRepository.Update", "Category with aaaaaaaaaaaaaaaaaaaaaaaa id not found")
		repo.On("Update", mock.Anything, "aaaaaaaaaaaaaaaaaaaaaaaa", payload).Return(domain.Category{}, notFound).Once()

		_, err := uc.Update(ctx, "aaaaaaaaaaaaaaaaaaaaaaaa", payload)
		assert.Same(t, notFound, err)
	})

	t.Run("empty payload", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uc := NewUpdateCategory(repo)

		_, err := uc.Update(ctx, categoryID, domain.UpdateCategory{})
		assert.ErrorIs(t, err, domain.ErrValidation)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteCategory(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := NewDeleteCategory(repo)
	ctx := context.Background()

	validation := domain.NewValidationError("CategoryRepository.Delete", "invalid 'id' format")
	repo.On("Delete", mock.Anything, "not-24-hex").Return(domain.Category{}, validation).Once()
	repo.On("Delete", mock.Anything, categoryID).Return(domain.Category{ID: categoryID, Title: "Comics"}, nil).Once()

	_, err := uc.Delete(ctx, "not-24-hex")
	assert.Same(t, validation, err)

	category, err := uc.Delete(ctx, categoryID)
	require.NoError(t, err)
	assert.Equal(t, "Comics", category.Title)

	repo.AssertExpectations(t)
}
