package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteRepository(t *testing.T) repositories.ProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return repositories.NewGORMProductRepository(db)
}

func repositoryFactories() map[string]func(t *testing.T) repositories.ProductRepository {
	return map[string]func(t *testing.T) repositories.ProductRepository{
		"gorm": newSQLiteRepository,
		"memory": func(*testing.T) repositories.ProductRepository {
			return repositories.NewMemoryProductRepository()
		},
	}
}

func TestProductRepository_CreateAndGet(t *testing.T) {
	for name, newRepo := range repositoryFactories() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			product := &models.Product{Name: "Monitor Curvo", Price: decimal.RequireFromString("300.50"), Availability: true}
			require.NoError(t, repo.Create(ctx, product))
			assert.NotZero(t, product.ID)

			fetched, err := repo.GetByID(ctx, product.ID)
			require.NoError(t, err)
			assert.Equal(t, "Monitor Curvo", fetched.Name)
			assert.True(t, product.Price.Equal(fetched.Price), "price %s != %s", product.Price, fetched.Price)
			assert.True(t, fetched.Availability)
		})
	}
}

func TestProductRepository_GetAllOrderedByID(t *testing.T) {
	for name, newRepo := range repositoryFactories() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			all, err := repo.GetAll(ctx)
			require.NoError(t, err)
			assert.NotNil(t, all)
			assert.Empty(t, all)

			for _, n := range []string{"Laptop", "Keyboard", "Mouse"} {
				require.NoError(t, repo.Create(ctx, &models.Product{Name: n, Price: decimal.NewFromInt(10), Availability: true}))
			}

			all, err = repo.GetAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "Laptop", all[0].Name)
			assert.Less(t, all[0].ID, all[1].ID)
			assert.Less(t, all[1].ID, all[2].ID)
		})
	}
}

func TestProductRepository_Update(t *testing.T) {
	for name, newRepo := range repositoryFactories() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			product := &models.Product{Name: "Mouse", Price: decimal.NewFromInt(50), Availability: true}
			require.NoError(t, repo.Create(ctx, product))

			err := repo.Update(ctx, product.ID, models.ProductAttributes{
				Name:         "Mouse Pro",
				Price:        decimal.RequireFromString("75.25"),
				Availability: false,
			})
			require.NoError(t, err)

			fetched, err := repo.GetByID(ctx, product.ID)
			require.NoError(t, err)
			assert.Equal(t, "Mouse Pro", fetched.Name)
			assert.True(t, decimal.RequireFromString("75.25").Equal(fetched.Price))
			assert.False(t, fetched.Availability)

			err = repo.Update(ctx, 9999, models.ProductAttributes{Name: "x", Price: decimal.NewFromInt(1)})
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)
		})
	}
}

func TestProductRepository_UpdateAvailability(t *testing.T) {
	for name, newRepo := range repositoryFactories() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			product := &models.Product{Name: "Teclado", Price: decimal.NewFromInt(20), Availability: true}
			require.NoError(t, repo.Create(ctx, product))

			require.NoError(t, repo.UpdateAvailability(ctx, product.ID, false))
			fetched, err := repo.GetByID(ctx, product.ID)
			require.NoError(t, err)
			assert.False(t, fetched.Availability)
			assert.Equal(t, "Teclado", fetched.Name)
			assert.True(t, decimal.NewFromInt(20).Equal(fetched.Price))

			assert.ErrorIs(t, repo.UpdateAvailability(ctx, 9999, true), repositories.ErrProductNotFound)
		})
	}
}

func TestProductRepository_Delete(t *testing.T) {
	for name, newRepo := range repositoryFactories() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			product := &models.Product{Name: "Audifonos", Price: decimal.NewFromInt(99), Availability: true}
			require.NoError(t, repo.Create(ctx, product))

			require.NoError(t, repo.Delete(ctx, product.ID))

			_, err := repo.GetByID(ctx, product.ID)
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, product.ID), repositories.ErrProductNotFound)
		})
	}
}
