package dtos

import (
	"produtos/internal/models"

	"github.com/shopspring/decimal"
)

// PrecoScale is the number of decimal places preco is stored with.
const PrecoScale = 2

// NewProduto builds an entity from a validated request. The ID is left
// for the caller to assign.
func NewProduto(req ProdutoRequest) models.Produto {
	var p models.Produto
	ApplyRequest(&p, req)
	return p
}

// ApplyRequest overwrites the mutable fields of p with the request values.
// The ID is never touched.
func ApplyRequest(p *models.Produto, req ProdutoRequest) {
	p.Nome = req.Nome
	if req.Preco != nil {
		p.Preco = NormalizePreco(*req.Preco)
	}
	if req.Quantidade != nil {
		p.Quantidade = *req.Quantidade
	}
}

// NormalizePreco converts a client price to fixed point with PrecoScale places.
func NormalizePreco(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(PrecoScale)
}

// NewProdutoResponse maps an entity to its response shape.
func NewProdutoResponse(p models.Produto) ProdutoResponse {
	return ProdutoResponse{
		ID:         p.ID,
		Nome:       p.Nome,
		Preco:      p.Preco.InexactFloat64(),
		Quantidade: p.Quantidade,
	}
}

// NewProdutoResponseList maps entities in order. It never returns nil.
func NewProdutoResponseList(produtos []models.Produto) []ProdutoResponse {
	out := make([]ProdutoResponse, 0, len(produtos))
	for _, p := range produtos {
		out = append(out, NewProdutoResponse(p))
	}
	return out
}
