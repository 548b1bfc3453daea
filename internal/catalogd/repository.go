package catalogd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"

	"github.com/AntonZhuravskiy/web-larek/internal/catalog"
)

var ErrProductNotFound = errors.New("product not found")

// StoredOrder is an accepted order as persisted by the catalog server.
type StoredOrder struct {
	ID        string
	Payment   string
	Address   string
	Email     string
	Phone     string
	Total     float64
	Items     []string
	CreatedAt time.Time
}

type RepoInterface interface {
	GetAllProducts(ctx context.Context) ([]catalog.Product, error)
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
	SaveOrder(ctx context.Context, order StoredOrder) error
	Close() error
	RunMigrations(string) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) GetAllProducts(ctx context.Context) ([]catalog.Product, error) {
	query := `
		SELECT id, title, price, category, description, image
		FROM products
		ORDER BY rowid
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	query := `
		SELECT id, title, price, category, description, image
		FROM products
		WHERE id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("failed to query product: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return catalog.Product{}, fmt.Errorf("row iteration error: %w", err)
		}
		return catalog.Product{}, ErrProductNotFound
	}

	return scanProduct(rows)
}

// SaveOrder writes the order header and its item rows in one transaction.
func (r *Repository) SaveOrder(ctx context.Context, order StoredOrder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, payment, address, email, phone, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.ID, order.Payment, order.Address, order.Email, order.Phone, order.Total, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, productID := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id)
			VALUES ($1, $2)`,
			order.ID, productID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func scanProduct(rows *sql.Rows) (catalog.Product, error) {
	var p catalog.Product
	var price sql.NullFloat64
	err := rows.Scan(
		&p.ID,
		&p.Title,
		&price,
		&p.Category,
		&p.Description,
		&p.Image,
	)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("failed to scan product: %w", err)
	}
	if price.Valid {
		v := price.Float64
		p.Price = &v
	}
	return p, nil
}
