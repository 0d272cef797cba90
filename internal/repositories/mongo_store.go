package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/domain"
)

// mongoStore - общая CRUD-логика над одной коллекцией.
// Репозитории сущностей оборачивают ее и задают свои типы моделей и payload'ов.
type mongoStore[M any] struct {
	gateway    *MongoGateway
	collection string
	entity     string
	logger     *zap.Logger
}

func newMongoStore[M any](gateway *MongoGateway, collection, entity string, logger *zap.Logger) mongoStore[M] {
	return mongoStore[M]{
		gateway:    gateway,
		collection: collection,
		entity:     entity,
		logger:     logger,
	}
}

func (s mongoStore[M]) op(name string) string {
	return s.entity + "Repository." + name
}

func (s mongoStore[M]) coll() (*mongo.Collection, error) {
	return s.gateway.Collection(s.collection)
}

// create вставляет payload и перечитывает документ по выданному базой id.
func (s mongoStore[M]) create(ctx context.Context, payload interface{}) (M, error) {
	var zero M
	op := s.op("Create")

	coll, err := s.coll()
	if err != nil {
		return zero, err
	}

	ctx, cancel := s.gateway.withTimeout(ctx)
	defer cancel()

	res, err := coll.InsertOne(ctx, payload)
	if err != nil {
		s.logger.Error("ошибка создания документа",
			zap.String("collection", s.collection),
			zap.Error(err),
		)
		return zero, domain.NewStorageError(op, err)
	}

	raw, err := findOne(ctx, coll, bson.M{"_id": res.InsertedID})
	if err != nil {
		s.logger.Error("ошибка чтения созданного документа",
			zap.String("collection", s.collection),
			zap.Error(err),
		)
		return zero, domain.NewStorageError(op, err)
	}

	model, err := MapDocument[M](raw)
	if err != nil {
		return zero, domain.NewStorageError(op, err)
	}
	return model, nil
}

// getAll возвращает все документы коллекции в порядке базы. Пустая коллекция - пустой слайс.
func (s mongoStore[M]) getAll(ctx context.Context) ([]M, error) {
	op := s.op("GetAll")

	coll, err := s.coll()
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.gateway.withTimeout(ctx)
	defer cancel()

	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		s.logger.Error("ошибка получения списка", zap.String("collection", s.collection), zap.Error(err))
		return nil, domain.NewStorageError(op, err)
	}
	defer cursor.Close(ctx)

	result := make([]M, 0)
	for cursor.Next(ctx) {
		model, err := MapDocument[M](cursor.Current)
		if err != nil {
			return nil, domain.NewStorageError(op, err)
		}
		result = append(result, model)
	}
	if err := cursor.Err(); err != nil {
		s.logger.Error("ошибка чтения курсора", zap.String("collection", s.collection), zap.Error(err))
		return nil, domain.NewStorageError(op, err)
	}

	return result, nil
}

// exists проверяет наличие хотя бы одного документа по фильтру.
func (s mongoStore[M]) exists(ctx context.Context, op string, filter bson.M) (bool, error) {
	coll, err := s.coll()
	if err != nil {
		return false, err
	}

	ctx, cancel := s.gateway.withTimeout(ctx)
	defer cancel()

	raw, err := findOne(ctx, coll, filter)
	if err != nil {
		s.logger.Error("ошибка поиска документа", zap.String("collection", s.collection), zap.Error(err))
		return false, domain.NewStorageError(op, err)
	}
	return raw != nil, nil
}

// findByID не проверяет формат id сам: некорректный id падает на уровне хранилища (StorageError).
// Отсутствующий документ дает пустую модель.
func (s mongoStore[M]) findByID(ctx context.Context, id string) (M, error) {
	var zero M
	op := s.op("FindByID")

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return zero, domain.NewStorageError(op, err)
	}

	coll, err := s.coll()
	if err != nil {
		return zero, err
	}

	ctx, cancel := s.gateway.withTimeout(ctx)
	defer cancel()

	raw, err := findOne(ctx, coll, bson.M{"_id": oid})
	if err != nil {
		s.logger.Error("ошибка получения документа",
			zap.String("collection", s.collection),
			zap.String("id", id),
			zap.Error(err),
		)
		return zero, domain.NewStorageError(op, err)
	}

	model, err := MapDocument[M](raw)
	if err != nil {
		return zero, domain.NewStorageError(op, err)
	}
	return model, nil
}

// update применяет $set и перечитывает документ. Ноль совпадений - NotFoundError.
func (s mongoStore[M]) update(ctx context.Context, id string, payload interface{}) (M, error) {
	var zero M
	op := s.op("Update")

	oid, err := parseID(op, id)
	if err != nil {
		return zero, err
	}

	coll, err := s.coll()
	if err != nil {
		return zero, err
	}

	ctx, cancel := s.gateway.withTimeout(ctx)
	defer cancel()

	res, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": payload})
	if err != nil {
		s.logger.Error("ошибка обновления документа",
			zap.String("collection", s.collection),
			zap.String("id", id),
			zap.Error(err),
		)
		return zero, domain.NewStorageError(op, err)
	}
	if res.MatchedCount == 0 {
		return zero, s.notFound(op, id)
	}

	raw, err := findOne(ctx, coll, bson.M{"_id": oid})
	if err != nil {
		return zero, domain.NewStorageError(op, err)
	}
	if raw == nil {
		// Документ удалили между обновлением и чтением.
		return zero, s.notFound(op, id)
	}

	model, err := MapDocument[M](raw)
	if err != nil {
		return zero, domain.NewStorageError(op, err)
	}
	return model, nil
}

// delete сначала проверяет формат id, затем читает документ, удаляет его и возвращает прочитанное.
func (s mongoStore[M]) delete(ctx context.Context, id string) (M, error) {
	var zero M
	op := s.op("Delete")

	oid, err := parseID(op, id)
	if err != nil {
		return zero, err
	}

	coll, err := s.coll()
	if err != nil {
		return zero, err
	}

	ctx, cancel := s.gateway.withTimeout(ctx)
	defer cancel()

	raw, err := findOne(ctx, coll, bson.M{"_id": oid})
	if err != nil {
		s.logger.Error("ошибка чтения документа перед удалением",
			zap.String("collection", s.collection),
			zap.String("id", id),
			zap.Error(err),
		)
		return zero, domain.NewStorageError(op, err)
	}
	if raw == nil {
		return zero, s.notFound(op, id)
	}

	model, err := MapDocument[M](raw)
	if err != nil {
		return zero, domain.NewStorageError(op, err)
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		s.logger.Error("ошибка удаления документа",
			zap.String("collection", s.collection),
			zap.String("id", id),
			zap.Error(err),
		)
		return zero, domain.NewStorageError(op, err)
	}
	if res.DeletedCount == 0 {
		return zero, s.notFound(op, id)
	}

	s.logger.Debug("документ удален", zap.String("collection", s.collection), zap.String("id", id))
	return model, nil
}

func (s mongoStore[M]) notFound(op, id string) error {
	return domain.NewNotFoundError(op, fmt.Sprintf("%s with %s id not found", s.entity, id))
}

// parseID проверяет формат идентификатора до обращения к базе.
func parseID(op, id string) (primitive.ObjectID, error) {
	if !domain.IsValidID(id) {
		return primitive.NilObjectID, domain.NewValidationError(op, "invalid 'id' format")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.NewValidationError(op, "invalid 'id' format")
	}
	return oid, nil
}
