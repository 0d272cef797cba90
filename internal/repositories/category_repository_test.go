package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap/zaptest"

	"github.com/your-org/catalog/internal/domain"
)

const categoriesNS = "catalog_test.categories"

func categoryDoc(oid primitive.ObjectID, title string) bson.D {
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "title", Value: title},
		{Key: "description", Value: "d"},
		{Key: "price", Value: 10.0},
		{Key: "ownerId", Value: "u1"},
	}
}

func storeFailure() bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{
		Code:    1,
		Message: "boom",
		Name:    "InternalError",
	})
}

func newCategoryRepo(mt *mtest.T) *CategoryRepository {
	logger := zaptest.NewLogger(mt)
	gateway := NewMongoGateway("", "catalog_test", logger, WithClient(mt.Client))
	return NewCategoryRepository(gateway, logger)
}

func TestCategoryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create returns stored model", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		oid := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch, categoryDoc(oid, "Books")),
		)

		category, err := repo.Create(ctx, domain.AddCategory{Title: "Books", Description: "d", Price: 10, OwnerID: "u1"})
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), category.ID)
		assert.Equal(mt, "Books", category.Title)
		assert.Equal(mt, 10.0, category.Price)
		assert.Equal(mt, "u1", category.OwnerID)
	})

	mt.Run("create storage failure", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		mt.AddMockResponses(storeFailure())

		_, err := repo.Create(ctx, domain.AddCategory{Title: "Books", Description: "d", OwnerID: "u1"})
		assert.ErrorIs(mt, err, domain.ErrStorage)
		assert.Contains(mt, err.Error(), "boom")
	})

	mt.Run("get all", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch,
			categoryDoc(first, "Books"),
			categoryDoc(second, "Comics"),
		))

		categories, err := repo.GetAll(ctx)
		require.NoError(mt, err)
		require.Len(mt, categories, 2)
		assert.Equal(mt, first.Hex(), categories[0].ID)
		assert.Equal(mt, "Comics", categories[1].Title)
	})

	mt.Run("get all empty", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch))

		categories, err := repo.GetAll(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, categories)
		assert.Empty(mt, categories)
	})

	mt.Run("get all storage failure", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		mt.AddMockResponses(storeFailure())

		_, err := repo.GetAll(ctx)
		assert.ErrorIs(mt, err, domain.ErrStorage)
	})

	mt.Run("find by title", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch, categoryDoc(primitive.NewObjectID(), "Books")))
		found, err := repo.FindByTitle(ctx, "Books")
		require.NoError(mt, err)
		assert.True(mt, found)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch))
		found, err = repo.FindByTitle(ctx, "Missing")
		require.NoError(mt, err)
		assert.False(mt, found)

		mt.AddMockResponses(storeFailure())
		_, err = repo.FindByTitle(ctx, "Books")
		assert.ErrorIs(mt, err, domain.ErrStorage)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		oid := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch, categoryDoc(oid, "Books")))
		category, err := repo.FindByID(ctx, oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "Books", category.Title)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch))
		category, err = repo.FindByID(ctx, primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.True(mt, category.IsEmpty())
	})

	mt.Run("find by malformed id is a storage error", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)

		_, err := repo.FindByID(ctx, "not-24-hex")
		assert.ErrorIs(mt, err, domain.ErrStorage)
		assert.NotErrorIs(mt, err, domain.ErrValidation)
	})

	mt.Run("update", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		oid := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch, categoryDoc(oid, "Comics")),
		)

		category, err := repo.Update(ctx, oid.Hex(), domain.UpdateCategory{Title: "Comics", Description: "d"})
		require.NoError(mt, err)
		assert.Equal(mt, "Comics", category.Title)
		assert.Equal(mt, oid.Hex(), category.ID)
	})

	mt.Run("update absent id", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		_, err := repo.Update(ctx, "aaaaaaaaaaaaaaaaaaaaaaaa", domain.UpdateCategory{Title: "Comics"})
		assert.ErrorIs(mt, err, domain.ErrNotFound)
		assert.Contains(mt, err.Error(), "Category with aaaaaaaaaaaaaaaaaaaaaaaa id not found")
	})

	mt.Run("update malformed id", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)

		_, err := repo.Update(ctx, "not-24-hex", domain.UpdateCategory{Title: "Comics"})
		assert.ErrorIs(mt, err, domain.ErrValidation)
	})

	mt.Run("update storage failure", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		mt.AddMockResponses(storeFailure())

		_, err := repo.Update(ctx, primitive.NewObjectID().Hex(), domain.UpdateCategory{Title: "Comics"})
		assert.ErrorIs(mt, err, domain.ErrStorage)
	})

	mt.Run("delete returns last known model", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		oid := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch, categoryDoc(oid, "Comics")),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		category, err := repo.Delete(ctx, oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "Comics", category.Title)
		assert.Equal(mt, oid.Hex(), category.ID)
	})

	mt.Run("delete absent id", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch))

		_, err := repo.Delete(ctx, "aaaaaaaaaaaaaaaaaaaaaaaa")
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("delete lost race", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		oid := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, categoriesNS, mtest.FirstBatch, categoryDoc(oid, "Comics")),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		_, err := repo.Delete(ctx, oid.Hex())
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("delete keeps storage failures", func(mt *mtest.T) {
		repo := newCategoryRepo(mt)
		mt.AddMockResponses(storeFailure())

		_, err := repo.Delete(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, domain.ErrStorage)
		assert.NotErrorIs(mt, err, domain.ErrNotFound)
	})
}

func TestCategoryRepository_DeleteMalformedIDSkipsStore(t *testing.T) {
	// The gateway is never connected: any store call would fail with ErrConnection.
	logger := zaptest.NewLogger(t)
	repo := NewCategoryRepository(NewMongoGateway("mongodb://localhost:27017", "catalog_test", logger), logger)

	_, err := repo.Delete(context.Background(), "not-24-hex")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrConnection)
}
