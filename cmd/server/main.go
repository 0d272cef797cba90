package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/adapters"
	"github.com/your-org/catalog/internal/cache"
	"github.com/your-org/catalog/internal/config"
	"github.com/your-org/catalog/internal/domain"
	"github.com/your-org/catalog/internal/handlers"
	"github.com/your-org/catalog/internal/middleware"
	"github.com/your-org/catalog/internal/processor"
	"github.com/your-org/catalog/internal/proxy"
	"github.com/your-org/catalog/internal/repositories"
	"github.com/your-org/catalog/internal/usecases"
	"github.com/your-org/catalog/pkg/logger"
	"github.com/your-org/catalog/pkg/telemetry"
)

// version подставляется при сборке через -ldflags.
var version = "dev"

const (
	// База может подниматься дольше приложения, поэтому даем ей несколько попыток.
	healthCheckRetries    = 5
	healthCheckRetryDelay = 2 * time.Second

	// Время на завершение текущих запросов при остановке.
	shutdownTimeout = 30 * time.Second

	enricherQueueSize = 100
	tokenTTL          = 24 * time.Hour
)

// App держит все зависимости приложения и управляет их жизненным циклом.
type App struct {
	config    *config.Config
	logger    *zap.Logger
	telemetry *telemetry.Telemetry
	gateway   *repositories.MongoGateway
	cache     *cache.CategoryCache
	enricher  *processor.OrderedEnricher
	server    *http.Server

	// Внешние коллабораторы, создаются только если настроены.
	// Ядро их не вызывает, внешние слои получают их через Collaborators().
	hasher    domain.Hasher
	tokens    domain.TokenIssuer
	uploader  domain.FileUploader
	publisher domain.Publisher

	initOnce sync.Once
	initErr  error

	// Контекст фоновых задач, отменяется при остановке.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	shutdownOnce sync.Once
}

// NewApp создает заготовку приложения, настройка происходит в Initialize().
func NewApp() *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Initialize настраивает все компоненты ровно один раз.
func (a *App) Initialize() error {
	a.initOnce.Do(func() {
		a.initErr = a.doInitialize()
	})
	return a.initErr
}

// doInitialize собирает приложение: конфиг и логгер, затем хранилище, кэш, бизнес-логика и API.
func (a *App) doInitialize() error {
	// 1. Переменные из .env (если файла нет, это не ошибка).
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("не удалось прочитать .env: %w", err)
	}

	// 2. Конфиг: сначала файл, при ошибке только defaults + ENV.
	configPath := os.Getenv("APP_CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	var fileErr error
	if err := config.Load(configPath); err != nil {
		fileErr = err
		if err := config.Load(""); err != nil {
			return fmt.Errorf("критическая ошибка конфигурации: %w", err)
		}
	}
	a.config = config.Get()

	// 3. Логгер с уровнем из конфига.
	if err := logger.Init(a.config.Log.Level, a.config.Log.Development); err != nil {
		return fmt.Errorf("не удалось инициализировать логгер: %w", err)
	}
	a.logger = logger.Get()

	if fileErr != nil {
		a.logger.Warn("не удалось загрузить конфиг-файл, используем значения по умолчанию и ENV",
			zap.String("path", configPath),
			zap.Error(fileErr),
		)
	}
	a.logger.Info("конфигурация загружена",
		zap.String("server_host", a.config.Server.Host),
		zap.Int("server_port", a.config.Server.Port),
		zap.String("database", a.config.Mongo.Database),
	)

	// 4. Трассировка. Пустой endpoint означает, что спаны никуда не экспортируются.
	tel, err := telemetry.Init(a.ctx, telemetry.Options{
		Endpoint:    a.config.Telemetry.OTLPEndpoint,
		ServiceName: a.config.Telemetry.ServiceName,
		Version:     version,
		Environment: a.config.Telemetry.Environment,
	}, a.logger)
	if err != nil {
		return fmt.Errorf("ошибка инициализации телеметрии: %w", err)
	}
	a.telemetry = tel

	// 5. Подключение к MongoDB.
	if err := a.initializeGateway(); err != nil {
		return fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}

	// 6. Репозитории поверх одного шлюза.
	categories := repositories.NewCategoryRepository(a.gateway, a.logger)
	products := repositories.NewProductRepository(a.gateway, a.logger)
	roles := repositories.NewRoleRepository(a.gateway, a.logger)

	// 7. Кэш категорий и фоновый обогатитель товаров.
	a.cache = cache.NewCategoryCache(a.config.Cache.Shards, a.config.Cache.TTL)
	a.cache.StartCleanupWorker()

	a.enricher = processor.NewOrderedEnricher(
		a.config.Concurrency.ProcessorWorkers,
		enricherQueueSize,
		categories,
		a.cache,
		a.logger,
	)
	a.enricher.Start()

	// 8. Бизнес-сценарии. Дополнительные правила включаются конфигом.
	var addCategoryOpts []usecases.AddCategoryOption
	if a.config.Catalog.UniqueTitles {
		addCategoryOpts = append(addCategoryOpts, usecases.WithUniqueTitles(categories))
	}
	var productOpts []usecases.ProductOption
	if a.config.Catalog.VerifyCategoryRefs {
		productOpts = append(productOpts, usecases.WithCategoryCheck(categories))
	}

	categoryHandler := handlers.NewCategoryHandler(handlers.CategoryUsecases{
		Add:    usecases.NewAddCategory(categories, addCategoryOpts...),
		List:   usecases.NewListCategories(categories),
		Get:    usecases.NewGetCategory(categories),
		Update: usecases.NewUpdateCategory(categories),
		Delete: usecases.NewDeleteCategory(categories),
	}, a.cache, a.logger)

	productHandler := handlers.NewProductHandler(handlers.ProductUsecases{
		Add:    usecases.NewAddProduct(products, productOpts...),
		List:   usecases.NewListProducts(products),
		Get:    usecases.NewGetProduct(products),
		Update: usecases.NewUpdateProduct(products, productOpts...),
		Delete: usecases.NewDeleteProduct(products),
	}, a.enricher, a.logger)

	roleHandler := handlers.NewRoleHandler(
		usecases.NewAddRole(roles),
		usecases.NewListRoles(roles),
		a.logger,
	)

	// 9. Внешние коллабораторы (bcrypt, JWT, S3, SNS).
	if err := a.initializeCollaborators(); err != nil {
		return fmt.Errorf("ошибка настройки коллабораторов: %w", err)
	}

	// 10. HTTP сервер.
	a.initializeServer(categoryHandler, productHandler, roleHandler)

	a.logger.Info("приложение готово к работе")
	return nil
}

// initializeGateway подключается к MongoDB с повторными попытками и проверяет коллекции.
func (a *App) initializeGateway() error {
	gateway := repositories.NewMongoGateway(
		a.config.Mongo.URI,
		a.config.Mongo.Database,
		a.logger,
		repositories.WithConnectTimeout(a.config.Mongo.ConnectTimeout),
		repositories.WithQueryTimeout(a.config.Mongo.QueryTimeout),
	)

	attemptTimeout := a.config.Mongo.ConnectTimeout + 5*time.Second
	if err := connectGateway(a.ctx, gateway, a.logger, healthCheckRetries, healthCheckRetryDelay, attemptTimeout); err != nil {
		return err
	}

	a.gateway = gateway
	a.logger.Info("хранилище инициализировано", zap.String("database", a.config.Mongo.Database))
	return nil
}

// connectGateway делает до retries попыток Connect + EnsureCollections.
// Если все попытки провалились, соединение закрывается: Connect мог пройти, а EnsureCollections нет.
func connectGateway(ctx context.Context, gateway *repositories.MongoGateway, log *zap.Logger, retries int, delay, attemptTimeout time.Duration) error {
	var err error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			log.Info("повторная попытка подключения к БД",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
			)
			time.Sleep(delay)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		if connErr := gateway.Connect(attemptCtx); connErr != nil {
			cancel()
			err = connErr
			log.Warn("нет связи с MongoDB",
				zap.Int("attempt", attempt+1),
				zap.Error(connErr),
			)
			continue
		}

		// Недостающие коллекции и индексы создаются автоматически.
		if ensureErr := gateway.EnsureCollections(attemptCtx); ensureErr != nil {
			cancel()
			err = ensureErr
			log.Warn("проблема с коллекциями",
				zap.Int("attempt", attempt+1),
				zap.Error(ensureErr),
			)
			continue
		}
		cancel()

		log.Debug("подключение установлено", zap.Int("attempts", attempt+1))
		return nil
	}

	discCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if discErr := gateway.Disconnect(discCtx); discErr != nil {
		log.Warn("ошибка при закрытии БД", zap.Error(discErr))
	}

	return fmt.Errorf("не удалось подключиться к БД после %d попыток: %w", retries, err)
}

// initializeCollaborators создает адаптеры, для которых есть настройки.
// Ядро их не вызывает, они доступны внешним слоям.
func (a *App) initializeCollaborators() error {
	a.hasher = adapters.NewBcryptHasher(a.config.Auth.SaltCost)

	if a.config.Auth.SecretKey != "" {
		tokens, err := adapters.NewJWTAdapter(a.config.Auth.SecretKey, tokenTTL)
		if err != nil {
			return err
		}
		a.tokens = tokens
	}

	if a.config.AWS.Bucket == "" && a.config.AWS.TopicARN == "" {
		a.logger.Debug("aws не настроен, загрузка файлов и уведомления отключены")
		return nil
	}

	awsCfg, err := proxy.LoadAWSConfig(a.ctx, a.config.AWS.Region)
	if err != nil {
		return err
	}
	if a.config.AWS.Bucket != "" {
		a.uploader = proxy.NewS3Storage(awsCfg, a.config.AWS.Bucket, a.logger)
	}
	if a.config.AWS.TopicARN != "" {
		a.publisher = proxy.NewSNSProxy(awsCfg, a.config.AWS.TopicARN, a.logger)
	}

	a.logger.Info("aws коллабораторы настроены",
		zap.Bool("uploader", a.uploader != nil),
		zap.Bool("publisher", a.publisher != nil),
	)
	return nil
}

// Collaborators хранит внешние адаптеры; nil означает, что адаптер не настроен.
type Collaborators struct {
	Hasher    domain.Hasher
	Tokens    domain.TokenIssuer
	Uploader  domain.FileUploader
	Publisher domain.Publisher
}

// Collaborators возвращает адаптеры, созданные при инициализации.
func (a *App) Collaborators() Collaborators {
	return Collaborators{
		Hasher:    a.hasher,
		Tokens:    a.tokens,
		Uploader:  a.uploader,
		Publisher: a.publisher,
	}
}

// initializeServer настраивает роутинг и middleware.
func (a *App) initializeServer(categories *handlers.CategoryHandler, products *handlers.ProductHandler, roles *handlers.RoleHandler) {
	r := chi.NewRouter()

	rateLimiter := middleware.NewRateLimiter(a.config.Concurrency.HTTPMaxWorkers, time.Minute)
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)

	// Служебные эндпоинты без middleware, чтобы отвечать быстро.
	r.Get("/health", a.healthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	// Порядок: логирование, recovery, таймаут, ограничение нагрузки, метрики.
	r.Group(func(r chi.Router) {
		r.Use(middleware.LoggingMiddleware(a.logger))
		r.Use(middleware.RecoveryMiddleware(a.logger))
		r.Use(middleware.TimeoutMiddleware(a.config.Server.RequestTimeout))
		r.Use(middleware.RateLimitMiddleware(rateLimiter, a.logger))
		r.Use(metrics.Middleware)

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/category", categories.Routes)
			r.Route("/product", products.Routes)
			r.Route("/role", roles.Routes)
		})
	})

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, a.config.Telemetry.ServiceName),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// healthCheckHandler отвечает 200, если есть связь с базой, иначе 503.
func (a *App) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	}
	status := http.StatusOK

	if err := a.gateway.CheckConnection(ctx); err != nil {
		status = http.StatusServiceUnavailable
		health["status"] = "unhealthy"
		health["error"] = err.Error()
	} else {
		health["database"] = "connected"
	}

	if a.cache != nil {
		health["cache"] = a.cache.GetStats()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(health)
}

// StartBackgroundJobs запускает фоновые процессы.
func (a *App) StartBackgroundJobs() {
	a.wg.Add(1)
	go a.periodicHealthCheck()
}

// periodicHealthCheck раз в 30 секунд пишет в лог состояние подключения к БД.
func (a *App) periodicHealthCheck() {
	defer a.wg.Done()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			a.logger.Info("фоновая проверка здоровья остановлена")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
			if err := a.gateway.CheckConnection(ctx); err != nil {
				a.logger.Warn("фоновая проверка: проблема с БД", zap.Error(err))
			} else {
				a.logger.Debug("фоновая проверка: полёт нормальный",
					zap.Time("last_check", a.gateway.HealthStatus().LastCheck),
				)
			}
			cancel()
		}
	}
}

// Start запускает сервер в отдельной горутине.
func (a *App) Start() error {
	if err := a.Initialize(); err != nil {
		return err
	}

	a.StartBackgroundJobs()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.logger.Info("запуск HTTP сервера", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("сервер упал с ошибкой", zap.Error(err))
		}
	}()

	return nil
}

// Shutdown останавливает приложение, дожидаясь текущих запросов.
func (a *App) Shutdown() error {
	var shutdownErr error

	a.shutdownOnce.Do(func() {
		a.logger.Info("начинаем остановку приложения...")

		// 1. Сигнал фоновым задачам.
		a.cancel()

		// 2. Перестаем принимать HTTP запросы.
		if a.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			if err := a.server.Shutdown(ctx); err != nil {
				a.logger.Error("ошибка при остановке сервера", zap.Error(err))
				shutdownErr = err
			}
			cancel()
		}

		// 3. Обогатитель и кэш.
		if a.enricher != nil {
			a.enricher.Stop()
		}
		if a.cache != nil {
			a.cache.StopCleanupWorker()
		}

		// 4. Соединение с БД.
		if a.gateway != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := a.gateway.Disconnect(ctx); err != nil {
				a.logger.Error("ошибка при закрытии БД", zap.Error(err))
				if shutdownErr == nil {
					shutdownErr = err
				}
			}
			cancel()
		}

		// 5. Дожидаемся фоновых горутин.
		done := make(chan struct{})
		go func() {
			a.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			a.logger.Info("все фоновые процессы завершены")
		case <-time.After(shutdownTimeout):
			a.logger.Warn("таймаут ожидания завершения процессов (принудительный выход)")
		}

		// 6. Выгружаем оставшиеся спаны.
		if a.telemetry != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := a.telemetry.Shutdown(ctx); err != nil {
				a.logger.Warn("ошибка при остановке телеметрии", zap.Error(err))
			}
			cancel()
		}

		a.logger.Info("приложение остановлено")
		_ = logger.Sync()
	})

	return shutdownErr
}

func main() {
	app := NewApp()

	if err := app.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Фатальная ошибка запуска: %v\n", err)
		os.Exit(1)
	}

	// Ждем Ctrl+C или docker stop.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := app.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка при остановке: %v\n", err)
		os.Exit(1)
	}
}
