package repositories

import (
	"context"
	"errors"

	"produtos/internal/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("record not found")

// ProdutoRepository defines the data access needed by the produto service.
type ProdutoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Produto, error)
	FindAll(ctx context.Context) ([]models.Produto, error)
	// Save inserts the produto or overwrites the row with the same ID.
	Save(ctx context.Context, produto *models.Produto) error
	Delete(ctx context.Context, produto *models.Produto) error
}
