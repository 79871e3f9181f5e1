// Package dtos holds the request and response shapes of the produtos API
// and the conversions between them and the persisted entity.
package dtos

import (
	"time"

	"github.com/google/uuid"
)

// ProdutoRequest is the body accepted by create and update. The preco and
// quantidade bounds are those of the stored columns: preco must survive
// rounding to decimal(10,2) as a positive value, quantidade fits 32 bits.
type ProdutoRequest struct {
	Nome       string   `json:"nome" validate:"required,notblank,min=8,max=150"`
	Preco      *float64 `json:"preco" validate:"required,gte=0.01,lte=99999999.99"`
	Quantidade *int     `json:"quantidade" validate:"required,min=1,max=2147483647"`
}

// ValidationMessages maps "<field>.<tag>" pairs to client messages.
func (ProdutoRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"nome.required":       "Por favor, informe o nome do produto.",
		"nome.notblank":       "Por favor, informe o nome do produto.",
		"nome.min":            "Por favor, informe o nome do produto de 8 a 150 caracteres.",
		"nome.max":            "Por favor, informe o nome do produto de 8 a 150 caracteres.",
		"preco.required":      "Por favor, informe o preço do produto.",
		"preco.gte":           "Por favor, informe um valor positivo para o preço do produto.",
		"preco.lte":           "Por favor, informe um preço menor ou igual a 99999999.99.",
		"quantidade.required": "Por favor, informe a quantidade do produto.",
		"quantidade.min":      "Por favor, informe a quantidade com valor maior ou igual a 1.",
		"quantidade.max":      "Por favor, informe a quantidade com valor menor ou igual a 2147483647.",
	}
}

// ProdutoResponse is returned by every produto endpoint.
type ProdutoResponse struct {
	ID         uuid.UUID `json:"id"`
	Nome       string    `json:"nome"`
	Preco      float64   `json:"preco"`
	Quantidade int       `json:"quantidade"`
}

// Event names published after a successful write.
const (
	EventoProdutoCriado     = "produto.criado"
	EventoProdutoAtualizado = "produto.atualizado"
	EventoProdutoExcluido   = "produto.excluido"
)

// ProdutoEvent is the message body published on the broker.
type ProdutoEvent struct {
	Evento     string          `json:"evento"`
	Produto    ProdutoResponse `json:"produto"`
	OcorridoEm time.Time       `json:"ocorrido_em"`
}
