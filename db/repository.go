package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository defines decoupled operations for catalogue-cache persistence.
type ProductRepository interface {
	Put(ctx context.Context, p Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	SearchByName(ctx context.Context, nameSubstr string) ([]Product, error)
	Clear(ctx context.Context) error
}

// TokenRepository defines decoupled operations for credential persistence.
type TokenRepository interface {
	Get(ctx context.Context) (*Token, error)
	Upsert(ctx context.Context, token *Token) error
	Clear(ctx context.Context) error
}

// gormProductRepo is a GORM-backed implementation of ProductRepository.
// Use constructor NewProductRepository to obtain an instance.
type gormProductRepo struct{ db *gorm.DB }

// gormTokenRepo is a GORM-backed implementation of TokenRepository.
// Use constructor NewTokenRepository to obtain an instance.
type gormTokenRepo struct{ db *gorm.DB }

// NewProductRepository creates a ProductRepository. Accepts *gorm.DB to avoid global access.
func NewProductRepository(db *gorm.DB) ProductRepository { return &gormProductRepo{db: db} }

// NewTokenRepository creates a TokenRepository. Accepts *gorm.DB to avoid global access.
func NewTokenRepository(db *gorm.DB) TokenRepository { return &gormTokenRepo{db: db} }

func (r *gormProductRepo) Put(ctx context.Context, p Product) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&p).Error
}

func (r *gormProductRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var product Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepo) List(ctx context.Context) ([]Product, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var products []Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *gormProductRepo) SearchByName(ctx context.Context, nameSubstr string) ([]Product, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var products []Product
	if err := r.db.WithContext(ctx).Where("name LIKE ?", "%"+nameSubstr+"%").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *gormProductRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Product{}).Error
}

func (r *gormTokenRepo) Get(ctx context.Context) (*Token, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var token Token
	err := r.db.WithContext(ctx).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormTokenRepo) Upsert(ctx context.Context, token *Token) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	token.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token"}),
	}).Create(token).Error
}

func (r *gormTokenRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Token{}).Error
}
