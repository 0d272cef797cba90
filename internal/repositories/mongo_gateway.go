package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/domain"
)

const (
	// Имена коллекций в базе.
	CategoriesCollection = "categories"
	ProductsCollection   = "products"
	RolesCollection      = "roles"

	defaultConnectTimeout = 10 * time.Second
)

// HealthStatus хранит текущее состояние подключения к базе.
// Используется health-check'ом, чтобы оркестратор знал, живы ли мы.
type HealthStatus struct {
	IsHealthy bool
	LastCheck time.Time
	LastError error
}

// MongoGateway владеет единственным подключением к MongoDB и раздает коллекции репозиториям.
// Создается явно в main и передается в репозитории, глобального состояния нет.
type MongoGateway struct {
	uri      string
	database string
	logger   *zap.Logger

	connectTimeout time.Duration
	queryTimeout   time.Duration

	mu         sync.RWMutex
	client     *mongo.Client
	db         *mongo.Database
	ownsClient bool

	// Атомарное хранилище статуса, health check читает его без блокировок.
	healthStatus atomic.Value // хранит *HealthStatus

	collectionsMu          sync.Mutex
	collectionsInitialized bool
}

// GatewayOption настраивает MongoGateway.
type GatewayOption func(*MongoGateway)

// WithClient подставляет уже подключенный клиент (тесты, mtest).
// Gateway не закрывает чужой клиент при Disconnect.
func WithClient(client *mongo.Client) GatewayOption {
	return func(g *MongoGateway) {
		g.client = client
		g.ownsClient = false
	}
}

// WithQueryTimeout ограничивает время каждого запроса репозитория. Ноль - без ограничения.
func WithQueryTimeout(d time.Duration) GatewayOption {
	return func(g *MongoGateway) {
		g.queryTimeout = d
	}
}

// WithConnectTimeout задает таймаут установки соединения.
func WithConnectTimeout(d time.Duration) GatewayOption {
	return func(g *MongoGateway) {
		if d > 0 {
			g.connectTimeout = d
		}
	}
}

// NewMongoGateway создает gateway, но не подключается.
// Подключение происходит в Connect(), чтобы main управлял стартом (и повторами).
func NewMongoGateway(uri, database string, logger *zap.Logger, opts ...GatewayOption) *MongoGateway {
	g := &MongoGateway{
		uri:            uri,
		database:       database,
		logger:         logger,
		connectTimeout: defaultConnectTimeout,
		ownsClient:     true,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.client != nil {
		g.db = g.client.Database(database)
		g.updateHealthStatus(true, nil)
	} else {
		g.updateHealthStatus(false, nil)
	}

	return g
}

// Connect устанавливает соединение. Повторный вызов на живом соединении ничего не делает.
// Параллельные вызовы сериализуются мьютексом.
func (g *MongoGateway) Connect(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(g.uri).
		SetConnectTimeout(g.connectTimeout).
		SetServerSelectionTimeout(g.connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		g.updateHealthStatus(false, err)
		return domain.NewConnectionError("MongoGateway.Connect", err)
	}

	// Проверяем, что база действительно отвечает.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		g.updateHealthStatus(false, err)
		return domain.NewConnectionError("MongoGateway.Connect", err)
	}

	g.client = client
	g.db = client.Database(g.database)
	g.ownsClient = true
	g.updateHealthStatus(true, nil)

	g.logger.Info("подключение к MongoDB установлено", zap.String("database", g.database))
	return nil
}

// Collection возвращает коллекцию по имени.
// До Connect или после Disconnect возвращает ConnectionError.
func (g *MongoGateway) Collection(name string) (*mongo.Collection, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.db == nil {
		return nil, domain.NewConnectionError("MongoGateway.Collection", nil)
	}
	return g.db.Collection(name), nil
}

// Disconnect закрывает соединение. Безопасен при повторном вызове.
func (g *MongoGateway) Disconnect(ctx context.Context) error {
	g.mu.Lock()
	if g.client == nil {
		g.mu.Unlock()
		return nil
	}

	var err error
	if g.ownsClient {
		err = g.client.Disconnect(ctx)
	}
	g.client = nil
	g.db = nil
	g.mu.Unlock()

	g.collectionsMu.Lock()
	g.collectionsInitialized = false
	g.collectionsMu.Unlock()
	g.updateHealthStatus(false, errors.New("соединение закрыто"))

	if err != nil {
		return fmt.Errorf("ошибка закрытия соединения: %w", err)
	}
	g.logger.Info("соединение с MongoDB закрыто")
	return nil
}

// CheckConnection проверяет связь с базой (для внешних health check'ов).
func (g *MongoGateway) CheckConnection(ctx context.Context) error {
	g.mu.RLock()
	client := g.client
	g.mu.RUnlock()

	if client == nil {
		err := domain.NewConnectionError("MongoGateway.CheckConnection", nil)
		g.updateHealthStatus(false, err)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, g.connectTimeout)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		g.updateHealthStatus(false, err)
		return domain.NewConnectionError("MongoGateway.CheckConnection", err)
	}

	g.updateHealthStatus(true, nil)
	return nil
}

// EnsureCollections создает отсутствующие коллекции и индекс по title у категорий.
func (g *MongoGateway) EnsureCollections(ctx context.Context) error {
	g.collectionsMu.Lock()
	defer g.collectionsMu.Unlock()

	if g.collectionsInitialized {
		return nil
	}

	g.mu.RLock()
	db := g.db
	g.mu.RUnlock()

	if db == nil {
		return domain.NewConnectionError("MongoGateway.EnsureCollections", nil)
	}

	existing, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("ошибка получения списка коллекций: %w", err)
	}

	present := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		present[name] = struct{}{}
	}

	for _, name := range []string{CategoriesCollection, ProductsCollection, RolesCollection} {
		if _, ok := present[name]; ok {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("ошибка создания коллекции %s: %w", name, err)
		}
	}

	// Уникальность title не гарантируется базой, индекс только ускоряет FindByTitle.
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetName("title_1"),
	}
	if _, err := db.Collection(CategoriesCollection).Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("ошибка создания индекса: %w", err)
	}

	g.collectionsInitialized = true
	g.logger.Info("коллекции инициализированы", zap.String("database", g.database))
	return nil
}

// HealthStatus возвращает последнее известное состояние подключения.
func (g *MongoGateway) HealthStatus() HealthStatus {
	status, ok := g.healthStatus.Load().(*HealthStatus)
	if !ok || status == nil {
		return HealthStatus{}
	}
	return *status
}

func (g *MongoGateway) updateHealthStatus(isHealthy bool, err error) {
	g.healthStatus.Store(&HealthStatus{
		IsHealthy: isHealthy,
		LastCheck: time.Now(),
		LastError: err,
	})
}

// withTimeout накладывает таймаут запроса, если он настроен.
func (g *MongoGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.queryTimeout)
}

// MapDocument превращает сырой документ в модель, переименовывая _id в id.
// nil-документ дает пустую модель без ошибки: вызывающий код проверяет модель на пустоту.
func MapDocument[M any](raw bson.Raw) (M, error) {
	var model M
	if len(raw) == 0 {
		return model, nil
	}

	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return model, fmt.Errorf("ошибка разбора документа: %w", err)
	}

	if id, ok := fields["_id"]; ok {
		switch v := id.(type) {
		case primitive.ObjectID:
			fields["id"] = v.Hex()
		default:
			fields["id"] = fmt.Sprint(v)
		}
		delete(fields, "_id")
	}

	data, err := bson.Marshal(fields)
	if err != nil {
		return model, fmt.Errorf("ошибка сериализации документа: %w", err)
	}
	if err := bson.Unmarshal(data, &model); err != nil {
		return model, fmt.Errorf("ошибка преобразования документа: %w", err)
	}
	return model, nil
}

// findOne возвращает сырой документ или nil, если ничего не найдено.
func findOne(ctx context.Context, coll *mongo.Collection, filter interface{}) (bson.Raw, error) {
	raw, err := coll.FindOne(ctx, filter).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}
