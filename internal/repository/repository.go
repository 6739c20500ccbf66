package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrSellerOrderNotFound = errors.New("seller order not found")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// OrderRepository covers the checkout transaction and order reads. Every
// method is transaction-aware: inside WithTx all statements run on the same
// *sql.Tx, so a failure anywhere rolls the whole checkout back.
type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetProductsForUpdate(ctx context.Context, ids []int64) (map[int64]domain.Product, error)
	GetStoresByIDs(ctx context.Context, ids []int64) (map[int64]domain.Store, error)
	CreateOrder(ctx context.Context, order *domain.Order) error
	CreateSellerOrder(ctx context.Context, so *domain.SellerOrder) error
	CreateSellerOrderItems(ctx context.Context, items []domain.SellerOrderItem) error
	UpdateProductQuantity(ctx context.Context, productID int64, newQuantity int) error
	DeleteCartItems(ctx context.Context, userID string) error
	InsertOutboxEvent(ctx context.Context, orderID uuid.UUID, payload []byte) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByBuyerID(ctx context.Context, buyerID string) ([]*domain.Order, error)
	GetSellerOrderByID(ctx context.Context, id uuid.UUID) (*domain.SellerOrder, error)
	ListSellerOrdersBySeller(ctx context.Context, sellerUserID string) ([]*domain.SellerOrder, error)
	UpdateSellerOrderStatus(ctx context.Context, id uuid.UUID, status domain.SellerOrderStatus) error
}

// CartRepository defines cart row operations. Consumers define this interface,
// not the postgres implementation.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, productID int64, quantity int) error
	UpdateItemQuantity(ctx context.Context, userID string, productID int64, quantity int) error
	RemoveItem(ctx context.Context, userID string, productID int64) error
	DeleteCart(ctx context.Context, userID string) error
}

type ProductRepository interface {
	ListActiveProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
}

// OutboxEvent is one unpublished order-placed event row.
type OutboxEvent struct {
	ID        int64
	OrderID   uuid.UUID
	Payload   []byte
	CreatedAt time.Time
}

type OutboxRepository interface {
	GetUnprocessedEvents(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, eventID int64) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "marketplace_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
