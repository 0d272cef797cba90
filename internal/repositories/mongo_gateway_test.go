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

func TestMapDocument(t *testing.T) {
	t.Run("nil document yields empty model", func(t *testing.T) {
		category, err := MapDocument[domain.Category](nil)
		require.NoError(t, err)
		assert.True(t, category.IsEmpty())
		assert.Equal(t, domain.Category{}, category)
	})

	t.Run("renames _id to id", func(t *testing.T) {
		oid := primitive.NewObjectID()
		raw, err := bson.Marshal(bson.D{
			{Key: "_id", Value: oid},
			{Key: "title", Value: "Books"},
			{Key: "description", Value: "d"},
			{Key: "price", Value: 10.0},
			{Key: "ownerId", Value: "u1"},
		})
		require.NoError(t, err)

		category, err := MapDocument[domain.Category](raw)
		require.NoError(t, err)
		assert.Equal(t, domain.Category{
			ID:          oid.Hex(),
			Title:       "Books",
			Description: "d",
			Price:       10,
			OwnerID:     "u1",
		}, category)
	})

	t.Run("integer price decodes as float", func(t *testing.T) {
		raw, err := bson.Marshal(bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "price", Value: int32(7)},
			{Key: "categoryId", Value: "507f1f77bcf86cd799439011"},
		})
		require.NoError(t, err)

		product, err := MapDocument[domain.Product](raw)
		require.NoError(t, err)
		assert.Equal(t, 7.0, product.Price)
		assert.Equal(t, "507f1f77bcf86cd799439011", product.CategoryID)
		assert.Nil(t, product.Category)
	})

	t.Run("role permissions", func(t *testing.T) {
		raw, err := bson.Marshal(bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "admin"},
			{Key: "permissions", Value: bson.A{"category:write", "product:write"}},
		})
		require.NoError(t, err)

		role, err := MapDocument[domain.Role](raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"category:write", "product:write"}, role.Permissions)
	})
}

func TestGatewayLifecycle(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	t.Run("collection before connect", func(t *testing.T) {
		gateway := NewMongoGateway("mongodb://localhost:27017", "catalog_test", logger)

		_, err := gateway.Collection(CategoriesCollection)
		assert.ErrorIs(t, err, domain.ErrConnection)
		assert.ErrorIs(t, err, domain.ErrStorage)
		assert.False(t, gateway.HealthStatus().IsHealthy)
	})

	t.Run("disconnect is safe to repeat", func(t *testing.T) {
		gateway := NewMongoGateway("mongodb://localhost:27017", "catalog_test", logger)

		assert.NoError(t, gateway.Disconnect(ctx))
		assert.NoError(t, gateway.Disconnect(ctx))
	})

	t.Run("check connection without client", func(t *testing.T) {
		gateway := NewMongoGateway("mongodb://localhost:27017", "catalog_test", logger)

		err := gateway.CheckConnection(ctx)
		assert.ErrorIs(t, err, domain.ErrConnection)
	})

	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("injected client", func(mt *mtest.T) {
		gateway := NewMongoGateway("", "catalog_test", logger, WithClient(mt.Client))
		assert.True(mt, gateway.HealthStatus().IsHealthy)

		// Connect on a live connection is a no-op.
		require.NoError(mt, gateway.Connect(ctx))

		coll, err := gateway.Collection(ProductsCollection)
		require.NoError(mt, err)
		assert.Equal(mt, ProductsCollection, coll.Name())

		require.NoError(mt, gateway.Disconnect(ctx))
		require.NoError(mt, gateway.Disconnect(ctx))

		_, err = gateway.Collection(ProductsCollection)
		assert.ErrorIs(mt, err, domain.ErrConnection)
	})

	mt.Run("check connection ping", func(mt *mtest.T) {
		gateway := NewMongoGateway("", "catalog_test", logger, WithClient(mt.Client))

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, gateway.CheckConnection(ctx))
		assert.True(mt, gateway.HealthStatus().IsHealthy)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    1,
			Message: "boom",
			Name:    "InternalError",
		}))
		err := gateway.CheckConnection(ctx)
		assert.ErrorIs(mt, err, domain.ErrConnection)
		assert.False(mt, gateway.HealthStatus().IsHealthy)
	})
}
