package repositories

import (
	"context"
	"errors"
	"fmt"

	"produtos/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProdutoRepository is a GORM implementation of ProdutoRepository.
type GORMProdutoRepository struct {
	db *gorm.DB
}

// NewGORMProdutoRepository creates a new instance of GORMProdutoRepository.
func NewGORMProdutoRepository(db *gorm.DB) *GORMProdutoRepository {
	return &GORMProdutoRepository{
		db: db,
	}
}

// FindByID retrieves a single produto by its ID.
func (r *GORMProdutoRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Produto, error) {
	var produto models.Produto
	if err := r.db.WithContext(ctx).First(&produto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("produto with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get produto by ID %s: %w", id, err)
	}
	return &produto, nil
}

// FindAll retrieves every produto in the table.
func (r *GORMProdutoRepository) FindAll(ctx context.Context) ([]models.Produto, error) {
	var produtos []models.Produto
	if err := r.db.WithContext(ctx).Find(&produtos).Error; err != nil {
		return nil, fmt.Errorf("failed to get all produtos: %w", err)
	}
	return produtos, nil
}

// Save inserts or updates the produto. Save writes every column, including
// zero values.
func (r *GORMProdutoRepository) Save(ctx context.Context, produto *models.Produto) error {
	if produto.ID == uuid.Nil {
		return fmt.Errorf("failed to save produto: missing ID")
	}
	if err := r.db.WithContext(ctx).Save(produto).Error; err != nil {
		return fmt.Errorf("failed to save produto %s: %w", produto.ID, err)
	}
	return nil
}

// Delete removes the produto's row.
func (r *GORMProdutoRepository) Delete(ctx context.Context, produto *models.Produto) error {
	res := r.db.WithContext(ctx).Delete(&models.Produto{}, "id = ?", produto.ID.String())
	if res.Error != nil {
		return fmt.Errorf("failed to delete produto %s: %w", produto.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("produto with ID %s: %w", produto.ID, ErrNotFound)
	}
	return nil
}
