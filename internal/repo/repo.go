package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrInsufficientStock is returned from the order transaction when a stock
// decrement would drive a variant's counter negative. The whole transaction
// rolls back.
var ErrInsufficientStock = errors.New("insufficient stock")

type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
