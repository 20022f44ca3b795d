package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() { sqlDB.Close() })
	return &repo.GormRepo{DB: db}
}

func createProduct(t *testing.T, r *repo.GormRepo, name string, price float64) *models.Product {
	t.Helper()

	prod := &models.Product{Name: name, Price: price, Category: "test"}
	require.NoError(t, r.DB.Create(prod).Error)
	return prod
}
