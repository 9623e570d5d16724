package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmasrour/zanbil/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDBForRepos(t *testing.T) *gorm.DB {
	dBOject, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dBOject.AutoMigrate(&db.Token{}, &db.Product{}))
	return dBOject
}

func TestProductRepository_RoundTrip(t *testing.T) {
	repo := db.NewProductRepository(setupTestDBForRepos(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, db.Product{ID: "p1", Name: "Copper Kettle", Data: "{}"}))
	require.NoError(t, repo.Put(ctx, db.Product{ID: "p2", Name: "Clay Teapot", Data: "{}"}))

	product, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Copper Kettle", product.Name)

	missing, err := repo.GetByID(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	matches, err := repo.SearchByName(ctx, "Teapot")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "p2", matches[0].ID)

	require.NoError(t, repo.Clear(ctx))
	products, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestTokenRepository_SingleRecord(t *testing.T) {
	gormDB := setupTestDBForRepos(t)
	repo := db.NewTokenRepository(gormDB)
	ctx := context.Background()

	token, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, token)

	require.NoError(t, repo.Upsert(ctx, &db.Token{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, repo.Upsert(ctx, &db.Token{AccessToken: "a2", RefreshToken: "r2"}))

	var count int64
	require.NoError(t, gormDB.Model(&db.Token{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	token, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "a2", token.AccessToken)
	assert.Equal(t, "r2", token.RefreshToken)

	require.NoError(t, repo.Clear(ctx))
	token, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestTokenRepository_PersistsEmptyStrings(t *testing.T) {
	repo := db.NewTokenRepository(setupTestDBForRepos(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &db.Token{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, repo.Upsert(ctx, &db.Token{AccessToken: "", RefreshToken: ""}))

	token, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Empty(t, token.AccessToken)
	assert.Empty(t, token.RefreshToken)
}

func TestCredentialStore_TokenPairLifecycle(t *testing.T) {
	store := db.NewCredentialStore(db.NewTokenRepository(setupTestDBForRepos(t)))

	access, refresh, err := store.Tokens()
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	require.NoError(t, store.SetTokens("a1", "r1"))
	access, refresh, err = store.Tokens()
	require.NoError(t, err)
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)

	require.NoError(t, store.Clear())
	access, refresh, err = store.Tokens()
	require.NoError(t, err)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}
