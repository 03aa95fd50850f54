package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"example.com/cafe-admin/internal/config"
	domcontact "example.com/cafe-admin/internal/domain/contact"
	domgallery "example.com/cafe-admin/internal/domain/gallery"
	domorder "example.com/cafe-admin/internal/domain/order"
	domproduct "example.com/cafe-admin/internal/domain/product"
	domuser "example.com/cafe-admin/internal/domain/user"
	"example.com/cafe-admin/internal/infra/cache"
	"example.com/cafe-admin/internal/infra/events"
	"example.com/cafe-admin/internal/infra/persistence/mongodb"
	"example.com/cafe-admin/internal/infra/persistence/mysql"
	"example.com/cafe-admin/internal/infra/persistence/postgres"
	"example.com/cafe-admin/internal/infra/security"
	httpapi "example.com/cafe-admin/internal/interface/http"
	authuc "example.com/cafe-admin/internal/usecase/auth"
	contactuc "example.com/cafe-admin/internal/usecase/contact"
	galleryuc "example.com/cafe-admin/internal/usecase/gallery"
	orderuc "example.com/cafe-admin/internal/usecase/order"
	productuc "example.com/cafe-admin/internal/usecase/product"
	useruc "example.com/cafe-admin/internal/usecase/user"
)

// repositories is one storage backend's set of ports.
type repositories struct {
	products domproduct.Repository
	gallery  domgallery.Repository
	contact  domcontact.Repository
	orders   domorder.Repository
	users    domuser.Repository
	ping     func(ctx context.Context) error
	close    func(ctx context.Context) error
}

type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	closers []func(ctx context.Context) error
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}

	ctx := context.Background()

	logger := newLogger(cfg.App.LogLevel, cfg.App.Name)
	slog.SetDefault(logger)
	logger.Info("initialising",
		slog.String("service", cfg.App.Name),
		slog.String("storage", cfg.Storage.Driver))

	a := &App{cfg: cfg, logger: logger}

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app creation: %w", err)
	}
	a.closers = append(a.closers, repos.close)
	logger.Info("storage connected", slog.String("driver", cfg.Storage.Driver))

	orderOpts := []orderuc.Option{orderuc.WithLogger(logger)}
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		producer := events.NewProducer(brokers, cfg.Kafka.Topic)
		a.closers = append(a.closers, func(context.Context) error { return producer.Close() })
		orderOpts = append(orderOpts, orderuc.WithEventPublisher(producer))
		logger.Info("order events enabled", slog.String("topic", cfg.Kafka.Topic))
	}
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := client.Ping(ctx).Err(); err != nil {
			a.shutdown(ctx)
			return nil, fmt.Errorf("app creation: redis ping: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		orderOpts = append(orderOpts,
			orderuc.WithIdempotencyStore(cache.NewIdempotencyStore(client, cfg.App.Name, cfg.Redis.IdempotencyTTL)))
		logger.Info("order idempotency enabled", slog.String("redis", cfg.Redis.Addr))
	}

	hasher := security.NewBcryptService(cfg.Auth.BcryptCost)
	tokens := security.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	userSvc := useruc.NewService(repos.users, hasher)
	if err := userSvc.EnsureAdmin(ctx, cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		a.shutdown(ctx)
		return nil, fmt.Errorf("app creation: %w", err)
	}

	api := httpapi.NewAPI(httpapi.Dependencies{
		AuthService:    authuc.NewService(repos.users, hasher, tokens),
		UserService:    userSvc,
		ProductService: productuc.NewService(repos.products),
		GalleryService: galleryuc.NewService(repos.gallery),
		ContactService: contactuc.NewService(repos.contact),
		OrderService:   orderuc.NewService(repos.orders, repos.products, orderOpts...),
		TokenService:   tokens,
		PingDB:         repos.ping,
		Logger:         logger,
	})

	a.server = &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.HTTP.Port),
		Handler:      api.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return a, nil
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverMySQL:
		db, err := mysql.Open(ctx, mysql.Options{
			DSN:             cfg.MySQL.DSN,
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		return &repositories{
			products: mysql.NewProductRepository(db),
			gallery:  mysql.NewGalleryRepository(db),
			contact:  mysql.NewContactRepository(db),
			orders:   mysql.NewOrderRepository(db),
			users:    mysql.NewUserRepository(db),
			ping:     db.PingContext,
			close:    func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverPostgres:
		storage, err := postgres.NewStorage(ctx, &postgres.StorageConfig{
			DSN:             cfg.Postgres.DSN,
			MaxConns:        cfg.Postgres.MaxConns,
			MinConns:        cfg.Postgres.MinConns,
			MaxConnLife:     cfg.Postgres.MaxConnLifetime,
			MaxConnIdleTime: cfg.Postgres.MaxConnIdleTime,
		})
		if err != nil {
			return nil, err
		}
		return &repositories{
			products: postgres.NewProductRepository(storage),
			gallery:  postgres.NewGalleryRepository(storage),
			contact:  postgres.NewContactRepository(storage),
			orders:   postgres.NewOrderRepository(storage),
			users:    postgres.NewUserRepository(storage),
			ping:     storage.Ping,
			close: func(context.Context) error {
				storage.Close()
				return nil
			},
		}, nil

	case config.DriverMongoDB:
		store, err := mongodb.Open(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database)
		if err != nil {
			return nil, err
		}
		return &repositories{
			products: mongodb.NewProductRepository(store),
			gallery:  mongodb.NewGalleryRepository(store),
			contact:  mongodb.NewContactRepository(store),
			orders:   mongodb.NewOrderRepository(store),
			users:    mongodb.NewUserRepository(store),
			ping:     store.Ping,
			close:    store.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

// Run serves HTTP until SIGINT or SIGTERM, then drains in-flight requests
// and releases every backend.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown", slog.Any("error", err))
	}
	a.shutdown(shutdownCtx)

	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	return nil
}

func (a *App) shutdown(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Error("close resource", slog.Any("error", err))
		}
	}
	a.closers = nil
}

func newLogger(level, service string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "info":
		lvl = slog.LevelInfo
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})).
		With(slog.String("service", service))
}
