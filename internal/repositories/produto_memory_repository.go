package repositories

import (
	"context"
	"fmt"
	"sync"

	"produtos/internal/models"

	"github.com/google/uuid"
)

// InMemoryProdutoRepository is a map-backed ProdutoRepository used with the
// memory driver and in tests.
type InMemoryProdutoRepository struct {
	produtos map[uuid.UUID]models.Produto
	mu       sync.RWMutex
}

// NewInMemoryProdutoRepository creates an empty InMemoryProdutoRepository.
func NewInMemoryProdutoRepository() *InMemoryProdutoRepository {
	return &InMemoryProdutoRepository{
		produtos: make(map[uuid.UUID]models.Produto),
	}
}

// FindByID returns a copy of the stored produto.
func (r *InMemoryProdutoRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Produto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	produto, ok := r.produtos[id]
	if !ok {
		return nil, fmt.Errorf("produto with ID %s: %w", id, ErrNotFound)
	}
	return &produto, nil
}

// FindAll returns every produto in map iteration order.
func (r *InMemoryProdutoRepository) FindAll(_ context.Context) ([]models.Produto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Produto, 0, len(r.produtos))
	for _, p := range r.produtos {
		list = append(list, p)
	}
	return list, nil
}

// Save stores a copy of the produto under its ID.
func (r *InMemoryProdutoRepository) Save(_ context.Context, produto *models.Produto) error {
	if produto.ID == uuid.Nil {
		return fmt.Errorf("failed to save produto: missing ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.produtos[produto.ID] = *produto
	return nil
}

// Delete removes the produto with the same ID.
func (r *InMemoryProdutoRepository) Delete(_ context.Context, produto *models.Produto) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.produtos[produto.ID]; !ok {
		return fmt.Errorf("produto with ID %s: %w", produto.ID, ErrNotFound)
	}
	delete(r.produtos, produto.ID)
	return nil
}
