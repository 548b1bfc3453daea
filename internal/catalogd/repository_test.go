package catalogd_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	db "github.com/AntonZhuravskiy/web-larek/internal/catalogd"
)

func setupTestDB(t *testing.T) *db.Repository {
	repo, err := db.NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create test repository: %v", err)
	}

	if err := repo.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return repo
}

func TestGetAllProducts_Returns5AfterMigrations(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	products, err := repo.GetAllProducts(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 5) // the seed migration inserts 5 products
}

func TestGetAllProducts_PricelessProductHasNilPrice(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	products, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)

	var priceless int
	for _, p := range products {
		if !p.Sellable() {
			priceless++
		}
	}
	assert.Equal(t, 1, priceless, "exactly one seeded product is not for sale")
}

func TestGetProduct_ReturnsProduct(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	products, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, products)

	p, err := repo.GetProduct(context.Background(), products[0].ID)

	require.NoError(t, err)
	assert.Equal(t, products[0], p)
}

func TestGetProduct_UnknownID(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	_, err := repo.GetProduct(context.Background(), "no-such-id")

	require.ErrorIs(t, err, db.ErrProductNotFound)
}

func TestSaveOrder_PersistsHeaderAndItems(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	products, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)

	order := db.StoredOrder{
		ID:        uuid.New().String(),
		Payment:   "cash",
		Address:   "Main St 1",
		Email:     "u@x.com",
		Phone:     "+123456",
		Total:     2200,
		Items:     []string{products[0].ID, products[1].ID},
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, repo.SaveOrder(context.Background(), order))

	// Same id again must fail on the primary key.
	err = repo.SaveOrder(context.Background(), order)
	assert.Error(t, err)
}

func TestGetAllProducts_CancelledContext(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetAllProducts(ctx)
	require.Error(t, err)
}
