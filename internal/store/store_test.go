package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sweetlavka/storefront/internal/model"
	"github.com/sweetlavka/storefront/internal/store/config"
)

func newTestStore(t *testing.T) Store {
	t.Helper()

	dsn := os.Getenv("DATABASE_URI")
	if dsn == "" {
		t.Skip("DATABASE_URI не задан")
	}

	store, err := NewStore(config.Config{DBDsn: dsn})
	require.NoError(t, err)
	return store
}

func TestStoreProductGetAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	products, err := store.ProductGetAll(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(products), len(defaultCatalog))

	// начальное наполнение на месте
	byID := make(map[int]model.Product)
	for _, product := range products {
		byID[product.ID] = product
	}
	for _, seed := range defaultCatalog {
		require.Equal(t, seed, byID[seed.ID])
	}
}

func TestStoreProductGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	product, err := store.ProductGet(ctx, defaultCatalog[0].ID)
	require.NoError(t, err)
	require.Equal(t, defaultCatalog[0], product)

	_, err = store.ProductGet(ctx, 99999)
	require.ErrorIs(t, err, ErrNoRows)
}
