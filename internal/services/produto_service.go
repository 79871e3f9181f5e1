package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"produtos/internal/dtos"
	"produtos/internal/models"
	"produtos/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher sends an already encoded message under a routing key.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

// ProdutoService handles business logic related to produtos.
type ProdutoService struct {
	repo      repositories.ProdutoRepository
	publisher Publisher // optional
	logger    *zap.Logger
}

// NewProdutoService creates a new ProdutoService. publisher may be nil, in
// which case no events are sent.
func NewProdutoService(repo repositories.ProdutoRepository, publisher Publisher, logger *zap.Logger) *ProdutoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProdutoService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create stores a new produto with a freshly generated ID.
func (s *ProdutoService) Create(ctx context.Context, req dtos.ProdutoRequest) (*dtos.ProdutoResponse, error) {
	produto := dtos.NewProduto(req)
	produto.ID = uuid.New()

	if err := s.repo.Save(ctx, &produto); err != nil {
		return nil, fmt.Errorf("failed to create produto: %w", err)
	}

	s.logger.Info("Produto created",
		zap.String("produto_id", produto.ID.String()),
		zap.Int("quantidade", produto.Quantidade))

	return s.respond(dtos.EventoProdutoCriado, produto), nil
}

// Update overwrites nome, preco and quantidade of an existing produto.
func (s *ProdutoService) Update(ctx context.Context, id uuid.UUID, req dtos.ProdutoRequest) (*dtos.ProdutoResponse, error) {
	produto, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	dtos.ApplyRequest(produto, req)

	if err := s.repo.Save(ctx, produto); err != nil {
		return nil, fmt.Errorf("failed to update produto %s: %w", id, err)
	}

	s.logger.Info("Produto updated", zap.String("produto_id", id.String()))

	return s.respond(dtos.EventoProdutoAtualizado, *produto), nil
}

// Delete removes an existing produto and returns its last state.
func (s *ProdutoService) Delete(ctx context.Context, id uuid.UUID) (*dtos.ProdutoResponse, error) {
	produto, err := s.findExisting(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, produto); err != nil {
		return nil, fmt.Errorf("failed to delete produto %s: %w", id, err)
	}

	s.logger.Info("Produto deleted", zap.String("produto_id", id.String()))

	return s.respond(dtos.EventoProdutoExcluido, *produto), nil
}

// GetAll returns every produto in store order.
func (s *ProdutoService) GetAll(ctx context.Context) ([]dtos.ProdutoResponse, error) {
	produtos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list produtos: %w", err)
	}
	return dtos.NewProdutoResponseList(produtos), nil
}

// GetByID returns a single produto. A missing produto is reported with the
// store's error as is, not as an ArgumentError.
func (s *ProdutoService) GetByID(ctx context.Context, id uuid.UUID) (*dtos.ProdutoResponse, error) {
	produto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get produto %s: %w", id, err)
	}
	resp := dtos.NewProdutoResponse(*produto)
	return &resp, nil
}

func (s *ProdutoService) findExisting(ctx context.Context, id uuid.UUID) (*models.Produto, error) {
	produto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProdutoNaoEncontrado
		}
		return nil, fmt.Errorf("failed to look up produto %s: %w", id, err)
	}
	return produto, nil
}

// respond maps the produto and publishes the event for it.
func (s *ProdutoService) respond(evento string, produto models.Produto) *dtos.ProdutoResponse {
	resp := dtos.NewProdutoResponse(produto)
	s.publish(evento, resp)
	return &resp
}

func (s *ProdutoService) publish(evento string, resp dtos.ProdutoResponse) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(dtos.ProdutoEvent{
		Evento:     evento,
		Produto:    resp,
		OcorridoEm: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Failed to marshal produto event", zap.String("evento", evento), zap.Error(err))
		return
	}

	if err := s.publisher.Publish(evento, body); err != nil {
		s.logger.Warn("Failed to publish produto event",
			zap.String("evento", evento),
			zap.String("produto_id", resp.ID.String()),
			zap.Error(err))
	}
}
