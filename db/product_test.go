package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmasrour/zanbil/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDBForProduct sets up an in-memory SQLite database for testing purposes.
func setupTestDBForProduct(t *testing.T) *gorm.DB {
	dBOject, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, dBOject.AutoMigrate(&db.Product{}))
	return dBOject
}

func TestPutProduct_InsertsAndUpdates(t *testing.T) {
	db.Db = setupTestDBForProduct(t)

	require.NoError(t, db.PutProduct("p1", "Copper Kettle", `{"price":120}`))
	require.NoError(t, db.PutProduct("p1", "Copper Kettle v2", `{"price":110}`))

	product, err := db.GetProductByID("p1")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Copper Kettle v2", product.Name)
	assert.Equal(t, `{"price":110}`, product.Data)

	products, err := db.GetCatalogue()
	require.NoError(t, err)
	assert.Len(t, products, 1, "upsert must not duplicate the record")
}

func TestGetProductByID_ReturnsNilForMissingProduct(t *testing.T) {
	db.Db = setupTestDBForProduct(t)

	product, err := db.GetProductByID("ghost")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestSearchProductsByName_PartialMatch(t *testing.T) {
	db.Db = setupTestDBForProduct(t)

	require.NoError(t, db.PutProduct("p1", "Copper Kettle", "{}"))
	require.NoError(t, db.PutProduct("p2", "Steel Kettle", "{}"))
	require.NoError(t, db.PutProduct("p3", "Clay Teapot", "{}"))

	products, err := db.SearchProductsByName("Kettle")
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = db.SearchProductsByName("Samovar")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestEmptyCatalogue_RemovesAllProducts(t *testing.T) {
	db.Db = setupTestDBForProduct(t)

	require.NoError(t, db.PutProduct("p1", "Copper Kettle", "{}"))
	require.NoError(t, db.PutProduct("p2", "Steel Kettle", "{}"))
	require.NoError(t, db.EmptyCatalogue())

	products, err := db.GetCatalogue()
	require.NoError(t, err)
	assert.Empty(t, products)
}
