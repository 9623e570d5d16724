package db

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Product is a cached product record from the storefront catalogue. Data
// holds the raw JSON returned by the API so detail views and exports don't
// need another round-trip.
type Product struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `gorm:"index" json:"name"` // Indexed for faster queries
	Data string `json:"data"`
}

// PutProduct inserts or updates a product record in the catalogue cache.
func PutProduct(id, name, data string) error {
	product := Product{
		ID:   id,
		Name: name,
		Data: data,
	}

	return upsertProduct(product)
}

// upsertProduct performs an upsert operation on the product record.
func upsertProduct(product Product) error {
	if err := Db.Clauses(
		clause.OnConflict{
			UpdateAll: true, // Updates all fields if there's a conflict on the primary key (ID).
		},
	).Create(&product).Error; err != nil {
		log.Error().Err(err).Msgf("Failed to upsert product with ID %s", product.ID)
		return err
	}

	log.Debug().Str("id", product.ID).Str("name", product.Name).Msg("Product upserted")
	return nil
}

// EmptyCatalogue removes all records from the product catalogue cache.
func EmptyCatalogue() error {
	if err := Db.Unscoped().Where("1 = 1").Delete(&Product{}).Error; err != nil {
		log.Error().Err(err).Msg("Failed to empty product catalogue")
		return err
	}

	log.Info().Msg("Product catalogue emptied successfully")
	return nil
}

// GetCatalogue retrieves all products in the catalogue cache.
func GetCatalogue() ([]Product, error) {
	var products []Product
	if err := Db.Find(&products).Error; err != nil {
		log.Error().Err(err).Msg("Failed to fetch products from the database")
		return nil, err
	}

	log.Info().Msgf("Retrieved %d products from the catalogue", len(products))
	return products, nil
}

// GetProductByID retrieves a product from the catalogue cache by its ID.
// It returns nil without an error when the product is not cached.
func GetProductByID(id string) (*Product, error) {
	if Db == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var product Product
	if err := Db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Product not found
		}
		return nil, fmt.Errorf("failed to retrieve product with ID %s: %w", id, err)
	}

	return &product, nil
}

// SearchProductsByName searches the catalogue cache by product name.
// Matching is case-insensitive and partial.
func SearchProductsByName(name string) ([]Product, error) {
	if Db == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var products []Product
	if err := Db.Where("name LIKE ?", "%"+name+"%").Find(&products).Error; err != nil {
		log.Error().Err(err).Msgf("Failed to search products by name: %s", name)
		return nil, err
	}

	return products, nil
}
